package structfmt

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	type pair struct {
		Tag   uint8
		Value []byte
	}

	var (
		lang    string
		flag    bool
		lengths []int
		pairs   []pair
		text    []byte
	)
	full := mustHex(t, "02656e"+"01"+"02"+"00030004"+"01"+"0501ca"+"68656c6c6f")
	require.NoError(t, Scan("B+?B+(H)B+(BB+)*", full, &lang, &flag, &lengths, &pairs, &text))
	require.Equal(t, "en", lang)
	require.True(t, flag)
	require.Equal(t, []int{3, 4}, lengths)
	require.Equal(t, []pair{{Tag: 5, Value: []byte{0xca}}}, pairs)
	require.Equal(t, []byte("hello"), text)

	err := Scan("B+?", full, &lang)
	require.True(t, errors.Is(err, ErrArgCount))
}

func TestScan_Conversions(t *testing.T) {
	var small uint8
	err := Scan("H", mustHex(t, "0100"), &small)
	require.True(t, errors.Is(err, ErrValueOutOfRange))

	var signed int16
	require.NoError(t, Scan("b", mustHex(t, "fe"), &signed))
	require.EqualValues(t, -2, signed)

	var unsigned uint32
	err = Scan("b", mustHex(t, "fe"), &unsigned)
	require.True(t, errors.Is(err, ErrValueOutOfRange))

	var v interface{}
	require.NoError(t, Scan("I", mustHex(t, "00000009"), &v))
	require.Equal(t, uint32(9), v)

	var fixed [2]byte
	require.NoError(t, Scan("2s", mustHex(t, "abcd"), &fixed))
	require.Equal(t, [2]byte{0xab, 0xcd}, fixed)

	var notPtr uint8
	require.Error(t, Scan("B", mustHex(t, "01"), notPtr))
}
