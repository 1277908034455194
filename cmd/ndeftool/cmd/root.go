package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ndefkit/cli"
	"ndefkit/config"
	"ndefkit/log"
	"ndefkit/ndef"
	_ "ndefkit/records"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ndeftool",
	Short: "Decodes and encodes NDEF messages.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.CalledAs() == "init" || cmd.CalledAs() == "version" {
			return nil
		}
		loaded, err := config.LoadConfig(cli.GetHomeDir(cmd))
		if err != nil {
			return errors.Wrap(err, "error loading config")
		}
		if cmd.Flags().Changed(cli.FlagFormat) {
			loaded.Output.Format, _ = cmd.Flags().GetString(cli.FlagFormat)
		}
		if cmd.Flags().Changed(cli.FlagPolicy) {
			loaded.Codec.ErrorPolicy, _ = cmd.Flags().GetString(cli.FlagPolicy)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		lvl, err := log.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		log.SetLevel(lvl)
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func codecOptions() (*ndef.Options, error) {
	return cfg.DecodeOptions()
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.ndeftool", "Home directory for the tool's configuration.")
	rootCmd.PersistentFlags().String(cli.FlagFormat, config.OutputFormatTable, "Output format (table, text or hex).")
	rootCmd.PersistentFlags().String(cli.FlagPolicy, ndef.Strict.String(), "Error policy (strict, relaxed or ignore).")
}
