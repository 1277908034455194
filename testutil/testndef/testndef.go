package testndef

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"ndefkit/ndef"
)

// MustHex decodes a hex fixture. Spaces are ignored.
func MustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func RequireRecordsEqual(t *testing.T, exp []ndef.Record, actual []ndef.Record) {
	t.Helper()
	if diff := cmp.Diff(exp, actual, cmp.Comparer(ndef.Equal)); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

// RoundTrip encodes records as one message and decodes it again under the
// Strict policy.
func RoundTrip(t *testing.T, records []ndef.Record, reg *ndef.Registry) []ndef.Record {
	t.Helper()
	opts := &ndef.Options{
		Policy:   ndef.Strict,
		Registry: reg,
	}
	data, err := ndef.EncodeMessage(records, opts)
	require.NoError(t, err)
	out, err := ndef.DecodeMessage(data, opts)
	require.NoError(t, err)
	RequireRecordsEqual(t, records, out)
	return out
}
