package ndef

import (
	"sort"

	"github.com/pkg/errors"
)

// DecodeFunc builds a record from the payload of a registered type. opts are
// the options of the running decode, which nested message payloads reuse.
type DecodeFunc func(payload []byte, opts *Options) (Record, error)

// Descriptor describes how a registered record type decodes its payload.
// Encoding goes through the record's own Payload method.
type Descriptor struct {
	MinPayloadLen int
	// MaxPayloadLen <= 0 means no bound other than Options.MaxPayloadLen.
	MaxPayloadLen int
	Decode        DecodeFunc
}

func (d *Descriptor) checkLen(n int) error {
	if n < d.MinPayloadLen {
		return errors.Errorf("%d octets, minimum is %d", n, d.MinPayloadLen)
	}
	if d.MaxPayloadLen > 0 && n > d.MaxPayloadLen {
		return errors.Errorf("%d octets, maximum is %d", n, d.MaxPayloadLen)
	}
	return nil
}

// Registry maps type strings to descriptors. A derived registry reads through
// to its parent until its first Register call, which gives it a private copy of
// everything then visible. Registries are not safe for concurrent
// registration; register types during start-up.
type Registry struct {
	parent  *Registry
	entries map[string]*Descriptor
}

// DefaultRegistry is consulted by decoders that are not given a registry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*Descriptor),
	}
}

// Derive returns a child registry of r.
func (r *Registry) Derive() *Registry {
	return &Registry{
		parent: r,
	}
}

// Register maps typ to d, replacing any previous mapping in r.
func (r *Registry) Register(typ string, d *Descriptor) error {
	if d == nil || d.Decode == nil {
		return errors.Errorf("ndef: descriptor for %q has no decode function", typ)
	}
	if _, _, err := ToWire(typ); err != nil {
		return err
	}
	if r.entries == nil {
		r.entries = make(map[string]*Descriptor)
		if r.parent != nil {
			r.entries = r.parent.snapshot()
		}
	}
	r.entries[typ] = d
	return nil
}

// MustRegister is like Register but panics on error. It is meant for init
// functions of record type packages.
func (r *Registry) MustRegister(typ string, d *Descriptor) {
	if err := r.Register(typ, d); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(typ string) (*Descriptor, bool) {
	if r.entries == nil {
		if r.parent == nil {
			return nil, false
		}
		return r.parent.Lookup(typ)
	}
	d, ok := r.entries[typ]
	return d, ok
}

// Types returns the registered type strings visible through r in sorted order.
func (r *Registry) Types() []string {
	visible := r.snapshot()
	types := make([]string, 0, len(visible))
	for typ := range visible {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

func (r *Registry) snapshot() map[string]*Descriptor {
	if r.entries == nil {
		if r.parent == nil {
			return make(map[string]*Descriptor)
		}
		return r.parent.snapshot()
	}
	out := make(map[string]*Descriptor, len(r.entries))
	for typ, d := range r.entries {
		out[typ] = d
	}
	return out
}

// Register adds typ to DefaultRegistry.
func Register(typ string, d *Descriptor) error {
	return DefaultRegistry.Register(typ, d)
}
