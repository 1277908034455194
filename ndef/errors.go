package ndef

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidTypeName         = errors.New("invalid type name")
	ErrTypeNameTooLong         = errors.New("type name too long")
	ErrInvalidCategory         = errors.New("invalid type name format")
	ErrInvalidHeader           = errors.New("invalid record header")
	ErrUnexpectedEOF           = errors.New("unexpected end of input")
	ErrRead                    = errors.New("read error")
	ErrPayloadTooLarge         = errors.New("payload too large")
	ErrPayloadLengthOutOfRange = errors.New("payload length out of range")
	ErrInvalidPayload          = errors.New("invalid payload")
	ErrNameTooLong             = errors.New("record name too long")
	ErrInvalidName             = errors.New("invalid record name")
	ErrInvalidRecord           = errors.New("invalid record")
	ErrMissingMessageBegin     = errors.New("message begin flag not set in first record")
	ErrUnexpectedMessageBegin  = errors.New("message begin flag set in middle record")
	ErrMissingMessageEnd       = errors.New("message end flag not set in last record")
	ErrChunkFlagOnLastRecord   = errors.New("chunk flag set in last record")
	ErrEncoderFailed           = errors.New("encoder already failed")
)

// DecodeError reports malformed or inconsistent input. Kind is one of the
// package's Err sentinels; errors.Is matches it as well as the wrapped cause.
type DecodeError struct {
	Component string
	Offset    int64
	Kind      error
	Err       error
}

func newDecodeError(component string, offset int64, kind error, cause error) *DecodeError {
	return &DecodeError{
		Component: component,
		Offset:    offset,
		Kind:      kind,
		Err:       cause,
	}
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("ndef: %s decode error at offset %d: %v", e.Component, e.Offset, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Kind
}

func (e *DecodeError) Cause() error {
	return e.Kind
}

func (e *DecodeError) Is(target error) bool {
	return e.Err != nil && errors.Is(e.Err, target)
}

// EncodeError reports a record whose state cannot be represented on the wire.
type EncodeError struct {
	Component string
	Kind      error
	Err       error
}

func newEncodeError(component string, kind error, cause error) *EncodeError {
	return &EncodeError{
		Component: component,
		Kind:      kind,
		Err:       cause,
	}
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("ndef: %s encode error: %v", e.Component, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Kind
}

func (e *EncodeError) Cause() error {
	return e.Kind
}

func (e *EncodeError) Is(target error) bool {
	return e.Err != nil && errors.Is(e.Err, target)
}
