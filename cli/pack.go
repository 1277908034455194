package cli

import (
	"strings"

	"github.com/pkg/errors"

	"ndefkit/ndef"
	"ndefkit/records"
)

// ParseRecordArgs turns <type> <name> <payload-hex> triples into records.
// Payloads are hex with optional whitespace; "-" stands for no name or no
// payload.
func ParseRecordArgs(args []string) ([]ndef.Record, error) {
	if len(args)%3 != 0 {
		return nil, errors.Errorf("expected <type> <name> <payload> triples, got %d arguments", len(args))
	}
	var out []ndef.Record
	for i := 0; i < len(args); i += 3 {
		typ, name, payloadHex := args[i], args[i+1], args[i+2]
		if name == "-" {
			name = ""
		}
		var payload []byte
		if payloadHex != "-" {
			p, err := ParseHex([]byte(payloadHex))
			if err != nil {
				return nil, errors.Wrapf(err, "record %d", i/3)
			}
			if len(p) > 0 {
				payload = p
			}
		}
		rec, err := ndef.NewRecord(typ, name, payload)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d", i/3)
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseTextArg parses a "lang:text" pair into a Text record. Without a colon
// the language is "en".
func ParseTextArg(arg string) *records.TextRecord {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) == 1 {
		return records.NewTextRecord(arg, "en")
	}
	return records.NewTextRecord(parts[1], parts[0])
}
