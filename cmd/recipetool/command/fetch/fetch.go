package fetch

import (
	"os"

	"github.com/spf13/cobra"
)

// FetchBaseCmd is the base command for fetching artifacts.
var FetchBaseCmd = cobra.Command{
	Use:   "fetch",
	Short: "Fetches artifacts declared by recipe libraries.",
	Long:  `Fetches artifacts declared by recipe libraries, currently only package source archives supported.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.PrintErrf("%s fetch command: missing required child command\n", cmd.ErrPrefix())
		cmd.Usage() // nolint: errcheck
		os.Exit(1)
	},
}

func init() {
	FetchBaseCmd.AddCommand(&fetchSourceCmd)
}
