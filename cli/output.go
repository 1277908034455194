package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"ndefkit/config"
	"ndefkit/ndef"
)

// maxPayloadColumn truncates long payloads in table output.
const maxPayloadColumn = 32

func PrintRecords(w io.Writer, records []ndef.Record, format string) error {
	switch format {
	case config.OutputFormatTable:
		return printTable(w, records)
	case config.OutputFormatText:
		for _, rec := range records {
			if _, err := fmt.Fprintln(w, describe(rec)); err != nil {
				return err
			}
		}
		return nil
	case config.OutputFormatHex:
		data, err := ndef.EncodeMessage(records, nil)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	default:
		return errors.Errorf("invalid output format %q", format)
	}
}

func printTable(w io.Writer, records []ndef.Record) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		"#",
		"Type",
		"Category",
		"Name",
		"Length",
		"Payload",
	})
	for i, rec := range records {
		payload, err := rec.Payload()
		if err != nil {
			return errors.Wrapf(err, "error encoding record %d", i)
		}
		category := "invalid"
		if cat, err := ndef.CategoryOf(rec.Type()); err == nil {
			category = cat.String()
		}
		shown := hex.EncodeToString(payload)
		if len(payload) > maxPayloadColumn {
			shown = hex.EncodeToString(payload[:maxPayloadColumn]) + "..."
		}
		table.Append([]string{
			strconv.Itoa(i),
			rec.Type(),
			category,
			rec.Name(),
			strconv.Itoa(len(payload)),
			shown,
		})
	}
	table.Render()
	return nil
}

// describe prefers a record's own String method over the generic format.
func describe(rec ndef.Record) string {
	if s, ok := rec.(fmt.Stringer); ok {
		return s.String()
	}
	return ndef.Format(rec)
}
