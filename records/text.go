package records

import (
	"fmt"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"

	"ndefkit/ndef"
	"ndefkit/structfmt"
)

const TextType = ndef.WellKnownPrefix + "T"

const (
	textUTF16Flag   = 0x80
	textLangLenMask = 0x3f

	MaxLanguageLen = textLangLenMask
)

type TextEncoding int

const (
	UTF8 TextEncoding = iota
	UTF16
)

func (e TextEncoding) String() string {
	if e == UTF16 {
		return "UTF-16"
	}
	return "UTF-8"
}

// utf16 decodes big-endian unless the text starts with a byte order mark.
var utf16 = unicode.UTF16(unicode.BigEndian, unicode.UseBOM)

// TextRecord is a language-tagged text. Its payload is a status octet, the
// language code and the encoded text.
type TextRecord struct {
	ndef.RecordBase
	Text     string
	Language string
	Encoding TextEncoding
}

var _ ndef.Record = (*TextRecord)(nil)

func NewTextRecord(text string, language string) *TextRecord {
	return &TextRecord{
		RecordBase: ndef.NewRecordBase(TextType),
		Text:       text,
		Language:   language,
	}
}

func (t *TextRecord) Payload() ([]byte, error) {
	if len(t.Language) > MaxLanguageLen {
		return nil, errors.Errorf("language code %q is longer than %d octets", t.Language, MaxLanguageLen)
	}
	for i := 0; i < len(t.Language); i++ {
		if t.Language[i] >= utf8.RuneSelf {
			return nil, errors.Errorf("language code %q is not ASCII", t.Language)
		}
	}

	status := uint8(len(t.Language))
	text := []byte(t.Text)
	if t.Encoding == UTF16 {
		status |= textUTF16Flag
		encoded, err := utf16.NewEncoder().Bytes(text)
		if err != nil {
			return nil, errors.Wrap(err, "error encoding text")
		}
		text = encoded
	}
	return structfmt.Pack(fmt.Sprintf("B%ds*", len(t.Language)), status, t.Language, text)
}

func (t *TextRecord) String() string {
	return fmt.Sprintf("Text '%s' (%s, %s)", t.Text, t.Language, t.Encoding)
}

func decodeText(payload []byte, opts *ndef.Options) (ndef.Record, error) {
	status := payload[0]
	var lang string
	var body []byte
	if err := structfmt.Scan(fmt.Sprintf("x%ds*", status&textLangLenMask), payload, &lang, &body); err != nil {
		return nil, errors.Wrap(err, "error reading language code")
	}

	rec := NewTextRecord("", lang)
	if status&textUTF16Flag != 0 {
		rec.Encoding = UTF16
		decoded, err := utf16.NewDecoder().Bytes(body)
		if err != nil {
			return nil, errors.Wrap(err, "error decoding UTF-16 text")
		}
		body = decoded
	} else if !utf8.Valid(body) {
		return nil, errors.New("text is not valid UTF-8")
	}
	rec.Text = string(body)
	return rec, nil
}

func textDescriptor() *ndef.Descriptor {
	return &ndef.Descriptor{
		MinPayloadLen: 1,
		Decode:        decodeText,
	}
}
