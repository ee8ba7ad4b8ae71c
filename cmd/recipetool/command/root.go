package command

import (
	"context"
	"os"

	"github.com/pkgforge/reciplib/cmd/recipetool/command/check"
	"github.com/pkgforge/reciplib/cmd/recipetool/command/document"
	"github.com/pkgforge/reciplib/cmd/recipetool/command/fetch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "recipetool",
	Version: version,
	Short:   "A cli tool for working with recipe libraries",
	Long: `A cli tool for working with recipe libraries.

This tool can:

- Check the validity of a recipe library member.
- Generate markdown documentation for a recipe library member.
- Fetch and verify package source archives declared by a recipe.
`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logrus.SetLevel(logrus.DebugLevel)
			return
		}
		logrus.SetLevel(logrus.InfoLevel)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging.")
	rootCmd.AddCommand(&check.CheckCmd)
	rootCmd.AddCommand(&document.DocumentBaseCmd)
	rootCmd.AddCommand(&fetch.FetchBaseCmd)
}
