package ndef

import (
	"bytes"
	"encoding/hex"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const testType = "urn:nfc:ext:ndefkit.test:counter"

// counterRecord has a payload derived from its field.
type counterRecord struct {
	RecordBase
	Value uint16
}

func newCounterRecord(v uint16) *counterRecord {
	return &counterRecord{
		RecordBase: NewRecordBase(testType),
		Value:      v,
	}
}

func (c *counterRecord) Payload() ([]byte, error) {
	return []byte{byte(c.Value >> 8), byte(c.Value)}, nil
}

func counterDescriptor() *Descriptor {
	return &Descriptor{
		MinPayloadLen: 2,
		MaxPayloadLen: 2,
		Decode: func(payload []byte, opts *Options) (Record, error) {
			return newCounterRecord(uint16(payload[0])<<8 | uint16(payload[1])), nil
		},
	}
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func decodeAll(t *testing.T, data []byte, opts *Options) ([]Record, error) {
	t.Helper()
	dec := NewDecoder(bytes.NewReader(data), opts)
	var out []Record
	for {
		rec, err := dec.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}

func requireRecordsEqual(t *testing.T, exp []Record, actual []Record) {
	t.Helper()
	if diff := cmp.Diff(exp, actual, cmp.Comparer(Equal)); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func recordFlags(t *testing.T, data []byte) []Flags {
	t.Helper()
	r := bytes.NewReader(data)
	opts := &Options{Registry: NewRegistry()}
	var out []Flags
	for {
		_, flags, err := DecodeRecord(r, opts)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, flags)
	}
}
