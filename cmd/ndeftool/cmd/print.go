package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"ndefkit/cli"
	"ndefkit/log"
	"ndefkit/ndef"
)

var printBinary bool

var printCmd = &cobra.Command{
	Use:   "print [hex]",
	Short: "Decodes a message and prints its records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := cli.ReadMessageInput(args, printBinary)
		if err != nil {
			return err
		}
		opts, err := codecOptions()
		if err != nil {
			return err
		}

		dec := ndef.NewDecoder(bytes.NewReader(data), opts)
		var recs []ndef.Record
		var decErr error
		for {
			rec, err := dec.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				decErr = err
				break
			}
			recs = append(recs, rec)
		}
		if err := cli.PrintRecords(os.Stdout, recs, cfg.Output.Format); err != nil {
			return err
		}
		if decErr != nil {
			return decErr
		}
		if dec.Err() != nil {
			log.WithModule("ndeftool").Warn("message truncated", "records", dec.Count(), "err", dec.Err())
		}
		if trailing := int64(len(data)) - dec.Offset(); trailing > 0 {
			log.WithModule("ndeftool").Info("ignored octets after message end", "count", trailing)
		}
		return nil
	},
}

func init() {
	printCmd.Flags().BoolVar(&printBinary, cli.FlagBinary, false, "Read raw octets instead of hex.")
	rootCmd.AddCommand(printCmd)
}
