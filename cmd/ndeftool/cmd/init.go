package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ndefkit/cli"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the tool's home directory with a default config file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := cli.InitHomeDir(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("Successfully initialized ndeftool in %s.\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
