package structfmt

import "github.com/pkg/errors"

const (
	DefaultMaxRepeat   = 1024
	DefaultMaxFieldLen = 1 << 20
)

var (
	ErrInvalidFormat   = errors.New("structfmt: invalid format")
	ErrShortData       = errors.New("structfmt: short data")
	ErrValueOutOfRange = errors.New("structfmt: value out of range")
	ErrLimitExceeded   = errors.New("structfmt: limit exceeded")
	ErrArgCount        = errors.New("structfmt: argument count mismatch")
)

type Codec struct {
	// MaxRepeat is the largest repetition count a B+(fmt) group will decode
	// before stopping early.
	MaxRepeat int

	// MaxFieldLen is the largest length-prefixed octet field that will be
	// decoded or encoded.
	MaxFieldLen uint64
}

var defaultCodec = &Codec{
	MaxRepeat:   DefaultMaxRepeat,
	MaxFieldLen: DefaultMaxFieldLen,
}

// Unpack decodes data according to format using the default Codec. Octets
// following the last code are ignored.
func Unpack(format string, data []byte) ([]interface{}, error) {
	return defaultCodec.Unpack(format, data)
}

// UnpackFrom decodes data starting at offset and returns the decoded values and
// the offset of the first octet not consumed.
func UnpackFrom(format string, data []byte, offset int) ([]interface{}, int, error) {
	return defaultCodec.UnpackFrom(format, data, offset)
}

// Pack encodes values according to format using the default Codec.
func Pack(format string, values ...interface{}) ([]byte, error) {
	return defaultCodec.Pack(format, values...)
}

// Scan decodes data according to format and stores the values into dst, which
// must all be pointers.
func Scan(format string, data []byte, dst ...interface{}) error {
	return defaultCodec.Scan(format, data, dst...)
}

// Size returns the encoded size of format, or an error if the format contains
// variable-size codes.
func Size(format string) (int, error) {
	e, err := compile(format)
	if err != nil {
		return 0, err
	}
	return e.fixedSize()
}
