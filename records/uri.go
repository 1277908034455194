package records

import (
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"

	"ndefkit/ndef"
	"ndefkit/structfmt"
)

const URIType = ndef.WellKnownPrefix + "U"

// uriPrefixes is indexed by the identifier code of the first payload octet.
var uriPrefixes = []string{
	"",
	"http://www.",
	"https://www.",
	"http://",
	"https://",
	"tel:",
	"mailto:",
	"ftp://anonymous:anonymous@",
	"ftp://ftp.",
	"ftps://",
	"sftp://",
	"smb://",
	"nfs://",
	"ftp://",
	"dav://",
	"news:",
	"telnet://",
	"imap:",
	"rtsp://",
	"urn:",
	"pop:",
	"sip:",
	"sips:",
	"tftp:",
	"btspp://",
	"btl2cap://",
	"btgoep://",
	"tcpobex://",
	"irdaobex://",
	"file://",
	"urn:epc:id:",
	"urn:epc:tag:",
	"urn:epc:pat:",
	"urn:epc:raw:",
	"urn:epc:",
	"urn:nfc:",
}

// URIRecord stores a URI with its longest known prefix replaced by a one
// octet code.
type URIRecord struct {
	ndef.RecordBase
	URI string
}

var _ ndef.Record = (*URIRecord)(nil)

func NewURIRecord(uri string) *URIRecord {
	return &URIRecord{
		RecordBase: ndef.NewRecordBase(URIType),
		URI:        uri,
	}
}

func (u *URIRecord) Payload() ([]byte, error) {
	code, rest := abbreviateURI(u.URI)
	return structfmt.Pack("B*", code, rest)
}

func (u *URIRecord) String() string {
	return "URI '" + u.URI + "'"
}

func abbreviateURI(uri string) (uint8, string) {
	var best int
	for i := 1; i < len(uriPrefixes); i++ {
		if strings.HasPrefix(uri, uriPrefixes[i]) && len(uriPrefixes[i]) > len(uriPrefixes[best]) {
			best = i
		}
	}
	return uint8(best), uri[len(uriPrefixes[best]):]
}

func decodeURI(payload []byte, opts *ndef.Options) (ndef.Record, error) {
	var code uint8
	var rest []byte
	if err := structfmt.Scan("B*", payload, &code, &rest); err != nil {
		return nil, err
	}
	if int(code) >= len(uriPrefixes) {
		return nil, errors.Errorf("reserved URI identifier code 0x%02x", code)
	}
	if !utf8.Valid(rest) {
		return nil, errors.New("URI is not valid UTF-8")
	}
	return NewURIRecord(uriPrefixes[code] + string(rest)), nil
}

func uriDescriptor() *ndef.Descriptor {
	return &ndef.Descriptor{
		MinPayloadLen: 1,
		Decode:        decodeURI,
	}
}
