package structfmt

import (
	"bytes"
	"reflect"

	"github.com/pkg/errors"
)

// Pack encodes values according to format. Pad codes consume no value.
func (c *Codec) Pack(format string, values ...interface{}) ([]byte, error) {
	e, err := compile(format)
	if err != nil {
		return nil, err
	}
	if len(values) != e.valueCount() {
		return nil, errors.Wrapf(ErrArgCount, "format %q takes %d values, got %d", format, e.valueCount(), len(values))
	}
	var buf bytes.Buffer
	if err := c.encodeExpr(&buf, e, values); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) encodeExpr(buf *bytes.Buffer, e *expr, values []interface{}) error {
	i := 0
	for _, o := range e.ops {
		if o.kind == opPad {
			buf.WriteByte(0x00)
			continue
		}
		v := values[i]
		i++

		switch o.kind {
		case opBool:
			b, ok := v.(bool)
			if !ok {
				return errors.Errorf("structfmt: value %d is %T, not bool", i-1, v)
			}
			if b {
				buf.WriteByte(0x01)
			} else {
				buf.WriteByte(0x00)
			}
		case opInt:
			if err := writeInt(buf, e, o.width, o.signed, v); err != nil {
				return errors.Wrapf(err, "value %d", i-1)
			}
		case opBytes:
			b, err := asBytes(v)
			if err != nil {
				return errors.Wrapf(err, "value %d", i-1)
			}
			if len(b) > o.n {
				return errors.Wrapf(ErrValueOutOfRange, "value %d has %d octets, field holds %d", i-1, len(b), o.n)
			}
			buf.Write(b)
			for pad := len(b); pad < o.n; pad++ {
				buf.WriteByte(0x00)
			}
		case opPrefixed:
			b, err := asBytes(v)
			if err != nil {
				return errors.Wrapf(err, "value %d", i-1)
			}
			if uint64(len(b)) > c.MaxFieldLen {
				return errors.Wrapf(ErrLimitExceeded, "field length %d too large to encode", len(b))
			}
			if err := writeInt(buf, e, o.width, false, uint64(len(b))); err != nil {
				return errors.Wrapf(err, "length of value %d", i-1)
			}
			buf.Write(b)
		case opRepeated:
			if err := c.encodeGroup(buf, e, o, v); err != nil {
				return errors.Wrapf(err, "value %d", i-1)
			}
		case opRest:
			b, err := asBytes(v)
			if err != nil {
				return errors.Wrapf(err, "value %d", i-1)
			}
			buf.Write(b)
		}
	}
	return nil
}

func (c *Codec) encodeGroup(buf *bytes.Buffer, e *expr, o op, v interface{}) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Slice && val.Kind() != reflect.Array {
		return errors.Errorf("structfmt: repeated group needs a slice, got %T", v)
	}
	if val.Len() > c.MaxRepeat {
		return errors.Wrapf(ErrLimitExceeded, "repeat count %d too large to encode", val.Len())
	}
	if err := writeInt(buf, e, o.width, false, uint64(val.Len())); err != nil {
		return err
	}
	want := o.sub.valueCount()
	for j := 0; j < val.Len(); j++ {
		item := val.Index(j).Interface()
		var itemValues []interface{}
		if want == 1 {
			itemValues = []interface{}{item}
		} else {
			var err error
			if itemValues, err = flatten(item); err != nil {
				return err
			}
			if len(itemValues) != want {
				return errors.Wrapf(ErrArgCount, "group item %d has %d values, want %d", j, len(itemValues), want)
			}
		}
		if err := c.encodeExpr(buf, o.sub, itemValues); err != nil {
			return err
		}
	}
	return nil
}

// flatten turns a group item into its field values. Items may be
// []interface{} or structs, whose exported fields are taken in order.
func flatten(item interface{}) ([]interface{}, error) {
	if vals, ok := item.([]interface{}); ok {
		return vals, nil
	}
	val := reflect.Indirect(reflect.ValueOf(item))
	if val.Kind() != reflect.Struct {
		return nil, errors.Errorf("structfmt: group item is %T, not []interface{} or struct", item)
	}
	var out []interface{}
	for k := 0; k < val.NumField(); k++ {
		if val.Type().Field(k).PkgPath != "" {
			continue
		}
		out = append(out, val.Field(k).Interface())
	}
	return out, nil
}

func writeInt(buf *bytes.Buffer, e *expr, width int, signed bool, v interface{}) error {
	val := reflect.ValueOf(v)
	var u uint64
	switch val.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := val.Uint()
		if signed && n > uint64(1)<<(uint(width)*8-1)-1 {
			return errors.Wrapf(ErrValueOutOfRange, "%d does not fit %d signed octets", n, width)
		}
		if !signed && width < 8 && n >= uint64(1)<<(uint(width)*8) {
			return errors.Wrapf(ErrValueOutOfRange, "%d does not fit %d octets", n, width)
		}
		u = n
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := val.Int()
		if signed {
			limit := int64(1) << (uint(width)*8 - 1)
			if width < 8 && (n < -limit || n >= limit) {
				return errors.Wrapf(ErrValueOutOfRange, "%d does not fit %d signed octets", n, width)
			}
		} else {
			if n < 0 || (width < 8 && uint64(n) >= uint64(1)<<(uint(width)*8)) {
				return errors.Wrapf(ErrValueOutOfRange, "%d does not fit %d octets", n, width)
			}
		}
		u = uint64(n)
	default:
		return errors.Errorf("structfmt: %T is not an integer", v)
	}

	switch width {
	case 1:
		buf.WriteByte(byte(u))
	case 2:
		b := make([]byte, 2)
		e.order.PutUint16(b, uint16(u))
		buf.Write(b)
	case 4:
		b := make([]byte, 4)
		e.order.PutUint32(b, uint32(u))
		buf.Write(b)
	default:
		b := make([]byte, 8)
		e.order.PutUint64(b, u)
		buf.Write(b)
	}
	return nil
}

func asBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	case nil:
		return nil, nil
	}
	return nil, errors.Errorf("structfmt: %T is not []byte or string", v)
}
