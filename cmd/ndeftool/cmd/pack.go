package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ndefkit/cli"
	"ndefkit/ndef"
	"ndefkit/records"
)

var (
	packBinary bool
	packURIs   []string
	packTexts  []string
)

var packCmd = &cobra.Command{
	Use:   "pack [<type> <name> <payload-hex>...]",
	Short: "Encodes records into a message.",
	Long: `Encodes records into a message. Each record is given as a type, a name and
a hex payload; use "-" for no name or no payload. URI and Text records can be
added with --uri and --text and come before the positional records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var recs []ndef.Record
		for _, uri := range packURIs {
			recs = append(recs, records.NewURIRecord(uri))
		}
		for _, text := range packTexts {
			recs = append(recs, cli.ParseTextArg(text))
		}
		parsed, err := cli.ParseRecordArgs(args)
		if err != nil {
			return err
		}
		recs = append(recs, parsed...)
		if len(recs) == 0 {
			return errors.New("no records given")
		}

		opts, err := codecOptions()
		if err != nil {
			return err
		}
		if packBinary {
			_, err := ndef.WriteMessage(os.Stdout, recs, opts)
			return err
		}
		data, err := ndef.EncodeMessage(recs, opts)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(data))
		return nil
	},
}

func init() {
	packCmd.Flags().BoolVar(&packBinary, cli.FlagBinary, false, "Write raw octets instead of hex.")
	packCmd.Flags().StringArrayVar(&packURIs, "uri", nil, "Add a URI record.")
	packCmd.Flags().StringArrayVar(&packTexts, "text", nil, "Add a Text record, optionally prefixed with a language code as in en:hello.")
	rootCmd.AddCommand(packCmd)
}
