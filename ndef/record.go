package ndef

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

const MaxNameLen = 255

// Record is one typed, optionally named payload. Type is fixed when the record
// is created. Payload is computed on every call for records with structured
// payloads, so it always reflects their current fields.
type Record interface {
	Type() string
	Name() string
	SetName(name string)
	Payload() ([]byte, error)
}

// RecordBase implements the type and name part of Record. Record types with
// structured payloads embed it and add a Payload method.
type RecordBase struct {
	typ  string
	name string
}

func NewRecordBase(typ string) RecordBase {
	return RecordBase{typ: typ}
}

func (b *RecordBase) Type() string {
	return b.typ
}

func (b *RecordBase) Name() string {
	return b.name
}

func (b *RecordBase) SetName(name string) {
	b.name = name
}

// GenericRecord holds its payload as opaque octets. The decoder produces it for
// every type that has no registered Descriptor.
type GenericRecord struct {
	RecordBase
	Data []byte
}

var _ Record = (*GenericRecord)(nil)

// NewRecord returns a GenericRecord after checking that typ is a valid type
// string.
func NewRecord(typ string, name string, data []byte) (*GenericRecord, error) {
	if _, _, err := ToWire(typ); err != nil {
		return nil, err
	}
	return &GenericRecord{
		RecordBase: RecordBase{typ: typ, name: name},
		Data:       data,
	}, nil
}

// MustNewRecord is like NewRecord but panics on an invalid type string.
func MustNewRecord(typ string, name string, data []byte) *GenericRecord {
	rec, err := NewRecord(typ, name, data)
	if err != nil {
		panic(err)
	}
	return rec
}

func (r *GenericRecord) Payload() ([]byte, error) {
	return r.Data, nil
}

func (r *GenericRecord) SetPayload(data []byte) {
	r.Data = data
}

func (r *GenericRecord) String() string {
	return Format(r)
}

// Equal reports whether two records have the same type, name and payload.
func Equal(a, b Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type() != b.Type() || a.Name() != b.Name() {
		return false
	}
	pa, err := a.Payload()
	if err != nil {
		return false
	}
	pb, err := b.Payload()
	if err != nil {
		return false
	}
	return bytes.Equal(pa, pb)
}

// Format returns a one line description of rec.
func Format(rec Record) string {
	payload, err := rec.Payload()
	if err != nil {
		return fmt.Sprintf("NDEF Record ID '%s' TYPE '%s' PAYLOAD error: %v", rec.Name(), rec.Type(), err)
	}
	return fmt.Sprintf("NDEF Record ID '%s' TYPE '%s' PAYLOAD %d byte '%s'",
		rec.Name(), rec.Type(), len(payload), hex.EncodeToString(payload))
}

// encodeName converts a record name to its ID octets. Names are limited to
// ISO-8859-1 so that every character is one octet.
func encodeName(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	id, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, newEncodeError("record name", ErrInvalidName, errors.Wrapf(err, "%q", name))
	}
	if len(id) > MaxNameLen {
		return nil, newEncodeError("record name", ErrNameTooLong, errors.Errorf("%d octets", len(id)))
	}
	return id, nil
}

func decodeName(id []byte) string {
	if len(id) == 0 {
		return ""
	}
	name, err := charmap.ISO8859_1.NewDecoder().Bytes(id)
	if err != nil {
		// every octet is a valid ISO-8859-1 character
		return string(id)
	}
	return string(name)
}
