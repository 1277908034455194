package records

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"ndefkit/ndef"
	"ndefkit/structfmt"
	"ndefkit/testutil/testndef"
)

func TestTextRecord_Payload(t *testing.T) {
	tests := []struct {
		name    string
		rec     *TextRecord
		payload string
	}{
		{
			"utf-8",
			NewTextRecord("Hello", "en"),
			"02 656e 48656c6c6f",
		},
		{
			"utf-16",
			&TextRecord{RecordBase: ndef.NewRecordBase(TextType), Text: "Hi", Language: "de", Encoding: UTF16},
			"82 6465 feff 0048 0069",
		},
		{
			"no language",
			NewTextRecord("x", ""),
			"00 78",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := tt.rec.Payload()
			require.NoError(t, err)
			require.Equal(t, testndef.MustHex(t, tt.payload), payload)

			rec, err := decodeText(payload, nil)
			require.NoError(t, err)
			require.Equal(t, tt.rec, rec)
		})
	}
}

func TestTextRecord_DecodeWithoutBOM(t *testing.T) {
	rec, err := decodeText(testndef.MustHex(t, "82 656e 0048 0069"), nil)
	require.NoError(t, err)
	require.Equal(t, "Hi", rec.(*TextRecord).Text)

	rec, err = decodeText(testndef.MustHex(t, "82 656e fffe 4800 6900"), nil)
	require.NoError(t, err)
	require.Equal(t, "Hi", rec.(*TextRecord).Text)
}

func TestTextRecord_Errors(t *testing.T) {
	long := NewTextRecord("x", "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyzabcdefghijkl")
	_, err := long.Payload()
	require.Error(t, err)

	_, err = NewTextRecord("x", "ü").Payload()
	require.Error(t, err)

	_, err = decodeText(testndef.MustHex(t, "05 656e"), nil)
	require.True(t, errors.Is(err, structfmt.ErrShortData))

	_, err = decodeText(testndef.MustHex(t, "00 ff"), nil)
	require.Error(t, err)

	// the registry wraps payload errors
	msg := testndef.MustHex(t, "d1 01 02 54 05 65")
	_, err = ndef.DecodeMessage(msg, nil)
	require.True(t, errors.Is(err, ndef.ErrInvalidPayload))
}

func TestTextRecord_Registered(t *testing.T) {
	rec := NewTextRecord("hello", "en")
	rec.SetName("greeting")
	out := testndef.RoundTrip(t, []ndef.Record{rec}, nil)
	decoded, ok := out[0].(*TextRecord)
	require.True(t, ok)
	require.Equal(t, "greeting", decoded.Name())
	require.Equal(t, "hello", decoded.Text)
}
