package ndef

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Category is the 3-bit type name format (TNF) of a record.
type Category uint8

const (
	CategoryEmpty Category = iota
	CategoryWellKnown
	CategoryMediaType
	CategoryAbsoluteURI
	CategoryExternal
	CategoryUnknown
	CategoryUnchanged
	categoryReserved
)

const (
	TypeEmpty     = ""
	TypeUnknown   = "unknown"
	TypeUnchanged = "unchanged"

	WellKnownPrefix = "urn:nfc:wkt:"
	ExternalPrefix  = "urn:nfc:ext:"

	MaxTypeNameLen = 255
)

func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "empty"
	case CategoryWellKnown:
		return "well-known"
	case CategoryMediaType:
		return "media-type"
	case CategoryAbsoluteURI:
		return "absolute-uri"
	case CategoryExternal:
		return "external"
	case CategoryUnknown:
		return "unknown"
	case CategoryUnchanged:
		return "unchanged"
	default:
		return "reserved"
	}
}

var mediaTypeRegexp = regexp.MustCompile(`^[A-Za-z0-9!#$&^_.+-]+/[A-Za-z0-9!#$&^_.+-]+(\s*;.*)?$`)

// ToWire maps a type string to its category and raw type name.
//
// The NFC external type marker is itself an absolute URI, so it is tested
// before the generic URI shape.
func ToWire(typ string) (Category, []byte, error) {
	var (
		cat  Category
		name string
	)
	switch {
	case typ == TypeEmpty:
		return CategoryEmpty, nil, nil
	case strings.HasPrefix(typ, WellKnownPrefix):
		cat, name = CategoryWellKnown, typ[len(WellKnownPrefix):]
	case isMediaType(typ):
		cat, name = CategoryMediaType, typ
	case strings.HasPrefix(typ, ExternalPrefix):
		cat, name = CategoryExternal, typ[len(ExternalPrefix):]
	case isAbsoluteURI(typ):
		cat, name = CategoryAbsoluteURI, typ
	case typ == TypeUnknown:
		return CategoryUnknown, nil, nil
	case typ == TypeUnchanged:
		return CategoryUnchanged, nil, nil
	default:
		return 0, nil, newEncodeError("type name", ErrInvalidTypeName, errors.Errorf("%q", typ))
	}

	if name == "" {
		return 0, nil, newEncodeError("type name", ErrInvalidTypeName, errors.Errorf("%q has an empty %s name", typ, cat))
	}
	if len(name) > MaxTypeNameLen {
		return 0, nil, newEncodeError("type name", ErrTypeNameTooLong, errors.Errorf("%d octets", len(name)))
	}
	return cat, []byte(name), nil
}

// FromWire maps a category and raw type name back to a type string. Names of
// the empty, unknown and unchanged categories are ignored.
func FromWire(cat Category, name []byte) (string, error) {
	switch cat {
	case CategoryEmpty:
		return TypeEmpty, nil
	case CategoryWellKnown:
		return WellKnownPrefix + string(name), nil
	case CategoryMediaType, CategoryAbsoluteURI:
		return string(name), nil
	case CategoryExternal:
		return ExternalPrefix + string(name), nil
	case CategoryUnknown:
		return TypeUnknown, nil
	case CategoryUnchanged:
		return TypeUnchanged, nil
	}
	return "", newDecodeError("type name", 0, ErrInvalidCategory, errors.Errorf("category %d", cat))
}

// CategoryOf returns the category a type string encodes to.
func CategoryOf(typ string) (Category, error) {
	cat, _, err := ToWire(typ)
	return cat, err
}

func isMediaType(s string) bool {
	return isASCII(s) && mediaTypeRegexp.MatchString(s)
}

func isAbsoluteURI(s string) bool {
	if !isASCII(s) || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Path != "" || u.Opaque != "")
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7e || s[i] < 0x20 {
			return false
		}
	}
	return true
}
