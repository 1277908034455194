package records

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"ndefkit/ndef"
	"ndefkit/testutil/testndef"
)

func TestSmartPoster_RoundTrip(t *testing.T) {
	sp := NewSmartPosterRecord("https://example.com")
	sp.AddTitle("Example", "en")
	sp.AddTitle("Beispiel", "de")
	sp.SetAction(ActionSave)
	sp.SetSize(1024)
	sp.Extra = []ndef.Record{ndef.MustNewRecord("image/png", "", []byte{0x89})}

	out := testndef.RoundTrip(t, []ndef.Record{sp}, nil)
	decoded, ok := out[0].(*SmartPosterRecord)
	require.True(t, ok)
	require.Equal(t, "https://example.com", decoded.URI)
	require.Equal(t, "Beispiel", decoded.Title("DE"))
	require.Equal(t, "Example", decoded.Title("fr"))
	require.Equal(t, ActionSave, *decoded.Action)
	require.EqualValues(t, 1024, *decoded.Size)
	testndef.RequireRecordsEqual(t, sp.Extra, decoded.Extra)
}

func TestSmartPoster_Payload(t *testing.T) {
	sp := NewSmartPosterRecord("http://a")
	payload, err := sp.Payload()
	require.NoError(t, err)
	require.Equal(t, testndef.MustHex(t, "d1 01 02 55 03 61"), payload)

	sp.SetAction(ActionDo)
	payload, err = sp.Payload()
	require.NoError(t, err)
	require.Equal(t, testndef.MustHex(t, "91 01 02 55 03 61 51 03 01 616374 00"), payload)
}

func TestSmartPoster_NestedTypesAreScoped(t *testing.T) {
	// Action records are only known inside a Smart Poster
	data, err := ndef.EncodeMessage([]ndef.Record{NewActionRecord(ActionEdit)}, nil)
	require.NoError(t, err)
	recs, err := ndef.DecodeMessage(data, nil)
	require.NoError(t, err)
	_, ok := recs[0].(*ndef.GenericRecord)
	require.True(t, ok)
	_, ok = ndef.DefaultRegistry.Lookup(ActionType)
	require.False(t, ok)
}

func TestSmartPoster_Errors(t *testing.T) {
	reg := ndef.NewRegistry()
	Register(reg)
	opts := &ndef.Options{Registry: reg}

	noURI := &SmartPosterRecord{RecordBase: ndef.NewRecordBase(SmartPosterType)}
	inner, err := ndef.EncodeMessage([]ndef.Record{NewTextRecord("t", "en")}, nil)
	require.NoError(t, err)
	data, err := ndef.EncodeMessage([]ndef.Record{ndef.MustNewRecord(SmartPosterType, "", inner)}, nil)
	require.NoError(t, err)
	_, err = ndef.DecodeMessage(data, opts)
	require.True(t, errors.Is(err, ndef.ErrInvalidPayload))

	// an empty URI is still one URI record
	out := testndef.RoundTrip(t, []ndef.Record{noURI}, reg)
	require.Equal(t, "", out[0].(*SmartPosterRecord).URI)

	data, err = ndef.EncodeMessage([]ndef.Record{ndef.MustNewRecord(SmartPosterType, "", []byte{0x51, 0x01})}, nil)
	require.NoError(t, err)
	_, err = ndef.DecodeMessage(data, opts)
	require.True(t, errors.Is(err, ndef.ErrInvalidPayload))
	require.True(t, errors.Is(err, ndef.ErrUnexpectedEOF))
}
