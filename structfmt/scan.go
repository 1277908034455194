package structfmt

import (
	"reflect"

	"github.com/pkg/errors"
)

// Scan decodes data according to format and assigns each value to the
// corresponding pointer in dst. Integers convert to any integer type they fit,
// octet fields to []byte or string, and repeated groups to slices whose
// elements are integers, []interface{} or structs with exported fields in
// format order.
func (c *Codec) Scan(format string, data []byte, dst ...interface{}) error {
	values, err := c.Unpack(format, data)
	if err != nil {
		return err
	}
	if len(values) != len(dst) {
		return errors.Wrapf(ErrArgCount, "format %q yields %d values, got %d destinations", format, len(values), len(dst))
	}
	for i, v := range values {
		ptr := reflect.ValueOf(dst[i])
		if ptr.Kind() != reflect.Ptr || ptr.IsNil() {
			return errors.Errorf("structfmt: destination %d must be a non-nil pointer, got %T", i, dst[i])
		}
		if err := assign(ptr.Elem(), v); err != nil {
			return errors.Wrapf(err, "destination %d", i)
		}
	}
	return nil
}

func assign(dst reflect.Value, v interface{}) error {
	src := reflect.ValueOf(v)
	if dst.Kind() == reflect.Interface && src.Type().Implements(dst.Type()) {
		dst.Set(src)
		return nil
	}

	switch dst.Kind() {
	case reflect.Bool:
		b, ok := v.(bool)
		if !ok {
			return errors.Errorf("structfmt: cannot assign %T to bool", v)
		}
		dst.SetBool(b)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := asUint(src)
		if err != nil {
			return err
		}
		if dst.OverflowUint(n) {
			return errors.Wrapf(ErrValueOutOfRange, "%d overflows %s", n, dst.Type())
		}
		dst.SetUint(n)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := asInt(src)
		if err != nil {
			return err
		}
		if dst.OverflowInt(n) {
			return errors.Wrapf(ErrValueOutOfRange, "%d overflows %s", n, dst.Type())
		}
		dst.SetInt(n)
		return nil
	case reflect.String:
		b, ok := v.([]byte)
		if !ok {
			return errors.Errorf("structfmt: cannot assign %T to string", v)
		}
		dst.SetString(string(b))
		return nil
	case reflect.Slice:
		if b, ok := v.([]byte); ok && dst.Type().Elem().Kind() == reflect.Uint8 {
			dst.SetBytes(b)
			return nil
		}
		items, ok := v.([]interface{})
		if !ok {
			return errors.Errorf("structfmt: cannot assign %T to %s", v, dst.Type())
		}
		out := reflect.MakeSlice(dst.Type(), len(items), len(items))
		for i, item := range items {
			if err := assign(out.Index(i), item); err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		b, ok := v.([]byte)
		if !ok || dst.Type().Elem().Kind() != reflect.Uint8 || len(b) != dst.Len() {
			return errors.Errorf("structfmt: cannot assign %T to %s", v, dst.Type())
		}
		reflect.Copy(dst, reflect.ValueOf(b))
		return nil
	case reflect.Struct:
		items, ok := v.([]interface{})
		if !ok {
			return errors.Errorf("structfmt: cannot assign %T to %s", v, dst.Type())
		}
		next := 0
		for k := 0; k < dst.NumField(); k++ {
			if dst.Type().Field(k).PkgPath != "" {
				continue
			}
			if next == len(items) {
				return errors.Wrapf(ErrArgCount, "%s has more fields than the group", dst.Type())
			}
			if err := assign(dst.Field(k), items[next]); err != nil {
				return errors.Wrapf(err, "field %s", dst.Type().Field(k).Name)
			}
			next++
		}
		if next != len(items) {
			return errors.Wrapf(ErrArgCount, "%s has fewer fields than the group", dst.Type())
		}
		return nil
	}
	return errors.Errorf("structfmt: cannot assign %T to %s", v, dst.Type())
}

func asUint(src reflect.Value) (uint64, error) {
	switch src.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return src.Uint(), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := src.Int()
		if n < 0 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%d is negative", n)
		}
		return uint64(n), nil
	}
	return 0, errors.Errorf("structfmt: %s is not an integer", src.Type())
}

func asInt(src reflect.Value) (int64, error) {
	switch src.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return src.Int(), nil
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := src.Uint()
		if n > 1<<63-1 {
			return 0, errors.Wrapf(ErrValueOutOfRange, "%d overflows int64", n)
		}
		return int64(n), nil
	}
	return 0, errors.Errorf("structfmt: %s is not an integer", src.Type())
}
