package ndef

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrorPolicy decides how the decoder reacts to malformed messages.
type ErrorPolicy int

const (
	// Strict fails on any framing or decode error.
	Strict ErrorPolicy = iota
	// Relaxed tolerates framing errors and keeps decoding.
	Relaxed
	// Ignore also ends the record sequence quietly on decode errors.
	Ignore
)

func (p ErrorPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Relaxed:
		return "relaxed"
	case Ignore:
		return "ignore"
	default:
		return "invalid"
	}
}

func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "relaxed":
		return Relaxed, nil
	case "ignore":
		return Ignore, nil
	}
	return Strict, errors.Errorf("invalid error policy %q", s)
}

// DefaultMaxPayloadLen bounds memory use against hostile length fields. The
// wire format itself allows up to 2^32-1 octets.
const DefaultMaxPayloadLen = 1 << 20

type Options struct {
	Policy ErrorPolicy
	// MaxPayloadLen is the largest payload encoded or decoded. Zero selects
	// DefaultMaxPayloadLen.
	MaxPayloadLen int
	// Registry is consulted for record types with structured payloads. Nil
	// selects DefaultRegistry.
	Registry *Registry
}

func DefaultOptions() Options {
	return Options{
		Policy:        Strict,
		MaxPayloadLen: DefaultMaxPayloadLen,
		Registry:      DefaultRegistry,
	}
}

func (o *Options) withDefaults() Options {
	out := DefaultOptions()
	if o == nil {
		return out
	}
	out.Policy = o.Policy
	if o.MaxPayloadLen > 0 {
		out.MaxPayloadLen = o.MaxPayloadLen
	}
	if o.Registry != nil {
		out.Registry = o.Registry
	}
	return out
}

// WithRegistry returns a copy of o that uses reg. Record types with nested
// message payloads use it to decode with their own registry.
func (o *Options) WithRegistry(reg *Registry) *Options {
	out := o.withDefaults()
	out.Registry = reg
	return &out
}
