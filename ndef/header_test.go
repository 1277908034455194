package ndef

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecord(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03}
	tests := []struct {
		name  string
		rec   Record
		flags Flags
		exp   string
	}{
		{"well-known", MustNewRecord("urn:nfc:wkt:T", "", payload), FlagMB | FlagME, "d1010354010203"},
		{"with id", MustNewRecord("urn:nfc:wkt:T", "id", payload), FlagMB | FlagME, "d9010302546964010203"},
		{"middle record", MustNewRecord("urn:nfc:wkt:T", "", payload), 0, "11010354010203"},
		{"chunk flag", MustNewRecord("urn:nfc:wkt:T", "", payload), FlagMB | FlagCF, "b1010354010203"},
		{"empty", MustNewRecord("", "", nil), FlagMB | FlagME, "d00000"},
		{"media type", MustNewRecord("a/b", "", nil), FlagMB | FlagME, "d20300612f62"},
		{"unknown keeps id", MustNewRecord("unknown", "id", payload), FlagMB | FlagME, "dd0003026964010203"},
		{"unchanged drops id", MustNewRecord("unchanged", "id", payload), FlagME, "56000301" + "0203"},
		{"external", MustNewRecord("urn:nfc:ext:a:b", "", nil), FlagMB | FlagME, "d40300613a62"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := EncodeRecord(tt.rec, tt.flags, nil)
			require.NoError(t, err)
			require.Equal(t, tt.exp, hex.EncodeToString(b))
		})
	}
}

func TestEncodeRecord_IgnoresComputedFlags(t *testing.T) {
	rec := MustNewRecord("urn:nfc:wkt:T", "", make([]byte, 300))
	b, err := EncodeRecord(rec, FlagMB|FlagME|FlagSR|FlagIL, nil)
	require.NoError(t, err)
	require.Equal(t, byte(0xc1), b[0])
}

func TestEncodeRecord_ShortRecordBoundary(t *testing.T) {
	short := MustNewRecord("urn:nfc:wkt:x", "", bytes.Repeat([]byte{0xaa}, 255))
	b, err := EncodeRecord(short, FlagMB|FlagME, nil)
	require.NoError(t, err)
	require.True(t, Flags(b[0]).Short())
	require.Equal(t, byte(0xff), b[2])
	require.Len(t, b, 3+1+255)

	long := MustNewRecord("urn:nfc:wkt:x", "", bytes.Repeat([]byte{0xbb}, 256))
	b, err = EncodeRecord(long, FlagMB|FlagME, nil)
	require.NoError(t, err)
	require.False(t, Flags(b[0]).Short())
	require.Equal(t, []byte{0x00, 0x00, 0x01, 0x00}, b[2:6])
	require.Len(t, b, 6+1+256)

	for _, rec := range []*GenericRecord{short, long} {
		enc, err := EncodeRecord(rec, FlagMB|FlagME, nil)
		require.NoError(t, err)
		dec, flags, err := DecodeRecord(bytes.NewReader(enc), nil)
		require.NoError(t, err)
		require.Equal(t, len(rec.Data) < 256, flags.Short())
		require.True(t, Equal(rec, dec))
	}
}

func TestEncodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		opts *Options
		err  error
	}{
		{"payload above ceiling", MustNewRecord("urn:nfc:wkt:T", "", make([]byte, DefaultMaxPayloadLen+1)), nil, ErrPayloadTooLarge},
		{"payload above configured ceiling", MustNewRecord("urn:nfc:wkt:T", "", make([]byte, 11)), &Options{MaxPayloadLen: 10}, ErrPayloadTooLarge},
		{"long name", MustNewRecord("urn:nfc:wkt:T", strings.Repeat("n", 256), nil), nil, ErrNameTooLong},
		{"multi-byte name", MustNewRecord("urn:nfc:wkt:T", "€uro", nil), nil, ErrInvalidName},
		{"empty with payload", MustNewRecord("", "", []byte{0x01}), nil, ErrInvalidRecord},
		{"empty with name", MustNewRecord("", "id", nil), nil, ErrInvalidRecord},
		{"invalid type", &GenericRecord{RecordBase: NewRecordBase("not a type")}, nil, ErrInvalidTypeName},
		{"payload failure", &failingRecord{RecordBase: NewRecordBase("urn:nfc:wkt:T")}, nil, ErrInvalidPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := EncodeRecord(tt.rec, FlagMB|FlagME, tt.opts)
			require.Nil(t, b)
			require.True(t, errors.Is(err, tt.err), "got %v", err)
			_, ok := err.(*EncodeError)
			require.True(t, ok)
		})
	}

	b, err := EncodeRecord(MustNewRecord("urn:nfc:wkt:T", strings.Repeat("é", 255), nil), FlagMB|FlagME, nil)
	require.NoError(t, err)
	require.Len(t, b, 4+1+255)
}

type failingRecord struct {
	RecordBase
}

func (f *failingRecord) Payload() ([]byte, error) {
	return nil, errors.New("no payload")
}

func TestDecodeRecord(t *testing.T) {
	rec, flags, err := DecodeRecord(bytes.NewReader(mustHex(t, "d9010302546964010203")), nil)
	require.NoError(t, err)
	require.True(t, flags.Begin())
	require.True(t, flags.End())
	require.False(t, flags.Chunk())
	require.True(t, flags.HasID())
	require.Equal(t, "urn:nfc:wkt:T", rec.Type())
	require.Equal(t, "id", rec.Name())
	payload, err := rec.Payload()
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, payload)

	rec, _, err = DecodeRecord(bytes.NewReader(mustHex(t, "d90100"+"01"+"54"+"e9")), nil)
	require.NoError(t, err)
	require.Equal(t, "é", rec.Name())

	rec, _, err = DecodeRecord(bytes.NewReader(mustHex(t, "560003010203")), nil)
	require.NoError(t, err)
	require.Equal(t, TypeUnchanged, rec.Type())

	rec, _, err = DecodeRecord(bytes.NewReader(mustHex(t, "c1010000000354010203")), nil)
	require.NoError(t, err)
	require.Equal(t, "urn:nfc:wkt:T", rec.Type())

	_, _, err = DecodeRecord(bytes.NewReader(nil), nil)
	require.Equal(t, io.EOF, err)
}

func TestDecodeRecord_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts *Options
		err  error
	}{
		{"reserved category", "d7000000", nil, ErrInvalidCategory},
		{"empty with type", "d0010054", nil, ErrInvalidHeader},
		{"empty with payload", "d000010a", nil, ErrInvalidHeader},
		{"empty with id", "d8000001" + "61", nil, ErrInvalidHeader},
		{"unknown with type", "d5010054", nil, ErrInvalidHeader},
		{"unchanged with type", "d6010054", nil, ErrInvalidHeader},
		{"well-known without type", "d1000100", nil, ErrInvalidHeader},
		{"uri without type", "d3000100", nil, ErrInvalidHeader},
		{"truncated flags", "", nil, nil},
		{"truncated type length", "d1", nil, ErrUnexpectedEOF},
		{"truncated long length", "c10100", nil, ErrUnexpectedEOF},
		{"truncated id length", "d90103", nil, ErrUnexpectedEOF},
		{"truncated payload", "d10103540102", nil, ErrUnexpectedEOF},
		{"payload above ceiling", "c101" + "00100001" + "54", nil, ErrPayloadTooLarge},
		{"payload above configured ceiling", "d1010b54", &Options{MaxPayloadLen: 10}, ErrPayloadTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeRecord(bytes.NewReader(mustHex(t, tt.data)), tt.opts)
			if tt.err == nil {
				require.Equal(t, io.EOF, err)
				return
			}
			require.True(t, errors.Is(err, tt.err), "got %v", err)
			_, ok := err.(*DecodeError)
			require.True(t, ok)
		})
	}
}

func TestDecodeRecord_ReadError(t *testing.T) {
	boom := errors.New("boom")
	r := io.MultiReader(bytes.NewReader([]byte{0xd1}), &errReader{err: boom})
	_, _, err := DecodeRecord(r, nil)
	require.True(t, errors.Is(err, ErrRead))
	require.True(t, errors.Is(err, boom))
}

type errReader struct {
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	return 0, e.err
}

func TestDecodeRecord_Dispatch(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(testType, counterDescriptor())
	opts := &Options{Registry: reg}

	enc, err := EncodeRecord(MustNewRecord(testType, "c", []byte{0x01, 0x02}), FlagMB|FlagME, nil)
	require.NoError(t, err)
	rec, _, err := DecodeRecord(bytes.NewReader(enc), opts)
	require.NoError(t, err)
	counter, ok := rec.(*counterRecord)
	require.True(t, ok)
	require.EqualValues(t, 0x0102, counter.Value)
	require.Equal(t, "c", counter.Name())

	counter.Value = 7
	payload, err := counter.Payload()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x07}, payload)

	enc, err = EncodeRecord(MustNewRecord(testType, "", []byte{0x01, 0x02, 0x03}), FlagMB|FlagME, nil)
	require.NoError(t, err)
	_, _, err = DecodeRecord(bytes.NewReader(enc), opts)
	require.True(t, errors.Is(err, ErrPayloadLengthOutOfRange))

	enc, err = EncodeRecord(MustNewRecord(testType, "", []byte{0x01}), FlagMB|FlagME, nil)
	require.NoError(t, err)
	_, _, err = DecodeRecord(bytes.NewReader(enc), opts)
	require.True(t, errors.Is(err, ErrPayloadLengthOutOfRange))

	// chunks are never handed to a descriptor
	enc, err = EncodeRecord(MustNewRecord(testType, "", []byte{0x01}), FlagMB|FlagCF, nil)
	require.NoError(t, err)
	rec, flags, err := DecodeRecord(bytes.NewReader(enc), opts)
	require.NoError(t, err)
	require.True(t, flags.Chunk())
	_, ok = rec.(*GenericRecord)
	require.True(t, ok)
}

func TestDecodeRecord_DescriptorError(t *testing.T) {
	boom := errors.New("bad counter")
	reg := NewRegistry()
	reg.MustRegister(testType, &Descriptor{
		Decode: func(payload []byte, opts *Options) (Record, error) {
			return nil, boom
		},
	})
	enc, err := EncodeRecord(MustNewRecord(testType, "", []byte{0x01}), FlagMB|FlagME, nil)
	require.NoError(t, err)
	_, _, err = DecodeRecord(bytes.NewReader(enc), &Options{Registry: reg})
	require.True(t, errors.Is(err, ErrInvalidPayload))
	require.True(t, errors.Is(err, boom))
	require.Contains(t, err.Error(), testType)
}
