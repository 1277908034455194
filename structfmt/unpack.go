package structfmt

import (
	"github.com/pkg/errors"
)

// Unpack decodes data according to format. Octets following the last code are
// ignored.
func (c *Codec) Unpack(format string, data []byte) ([]interface{}, error) {
	values, _, err := c.UnpackFrom(format, data, 0)
	return values, err
}

// UnpackFrom decodes data starting at offset and returns the decoded values
// together with the offset of the first octet not consumed.
func (c *Codec) UnpackFrom(format string, data []byte, offset int) ([]interface{}, int, error) {
	e, err := compile(format)
	if err != nil {
		return nil, offset, err
	}
	if offset < 0 || offset > len(data) {
		return nil, offset, errors.Wrapf(ErrShortData, "offset %d outside of %d octets", offset, len(data))
	}
	d := &decoder{c: c, data: data, pos: offset}
	values, err := d.decodeExpr(e)
	if err != nil {
		return nil, d.pos, err
	}
	return values, d.pos, nil
}

type decoder struct {
	c    *Codec
	data []byte
	pos  int
}

func (d *decoder) decodeExpr(e *expr) ([]interface{}, error) {
	values := make([]interface{}, 0, e.valueCount())
	for _, o := range e.ops {
		switch o.kind {
		case opPad:
			if _, err := d.take(1); err != nil {
				return nil, err
			}
		case opBool:
			b, err := d.take(1)
			if err != nil {
				return nil, err
			}
			switch b[0] {
			case 0x00:
				values = append(values, false)
			case 0x01:
				values = append(values, true)
			default:
				return nil, errors.Wrapf(ErrValueOutOfRange, "invalid boolean value %#02x at offset %d", b[0], d.pos-1)
			}
		case opInt:
			v, err := d.readInt(e, o.width, o.signed)
			if err != nil {
				return nil, err
			}
			values = append(values, v)
		case opBytes:
			b, err := d.take(o.n)
			if err != nil {
				return nil, err
			}
			values = append(values, clone(b))
		case opPrefixed:
			l, err := d.readLength(e, o.width)
			if err != nil {
				return nil, err
			}
			if l > d.c.MaxFieldLen {
				return nil, errors.Wrapf(ErrLimitExceeded, "field length %d too large to decode", l)
			}
			b, err := d.take(int(l))
			if err != nil {
				return nil, err
			}
			values = append(values, clone(b))
		case opRepeated:
			n, err := d.readLength(e, o.width)
			if err != nil {
				return nil, err
			}
			if n > uint64(d.c.MaxRepeat) {
				return nil, errors.Wrapf(ErrLimitExceeded, "repeat count %d too large to decode", n)
			}
			single := o.sub.valueCount() == 1
			group := make([]interface{}, 0, int(n))
			for i := 0; i < int(n); i++ {
				item, err := d.decodeExpr(o.sub)
				if err != nil {
					return nil, err
				}
				if single {
					group = append(group, item[0])
				} else {
					group = append(group, item)
				}
			}
			values = append(values, group)
		case opRest:
			values = append(values, clone(d.data[d.pos:]))
			d.pos = len(d.data)
		}
	}
	return values, nil
}

func (d *decoder) take(n int) ([]byte, error) {
	if n > len(d.data)-d.pos {
		return nil, errors.Wrapf(ErrShortData, "need %d octets at offset %d, have %d", n, d.pos, len(d.data)-d.pos)
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) readLength(e *expr, width int) (uint64, error) {
	v, err := d.readInt(e, width, false)
	if err != nil {
		return 0, err
	}
	return toUint64(v), nil
}

func (d *decoder) readInt(e *expr, width int, signed bool) (interface{}, error) {
	b, err := d.take(width)
	if err != nil {
		return nil, err
	}
	switch width {
	case 1:
		if signed {
			return int8(b[0]), nil
		}
		return b[0], nil
	case 2:
		v := e.order.Uint16(b)
		if signed {
			return int16(v), nil
		}
		return v, nil
	case 4:
		v := e.order.Uint32(b)
		if signed {
			return int32(v), nil
		}
		return v, nil
	default:
		v := e.order.Uint64(b)
		if signed {
			return int64(v), nil
		}
		return v, nil
	}
}

func toUint64(v interface{}) uint64 {
	switch n := v.(type) {
	case uint8:
		return uint64(n)
	case uint16:
		return uint64(n)
	case uint32:
		return uint64(n)
	case uint64:
		return n
	}
	return 0
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
