package fetch

import (
	"os"

	"github.com/pkgforge/reciplib"
	"github.com/spf13/cobra"
)

// fetchSourceCmd downloads and verifies a package source archive.
var fetchSourceCmd = cobra.Command{
	Use:   "source [flags] dir recipe [version]",
	Short: "Downloads and verifies a package source archive declared by a recipe.",
	Long: `Downloads the source archive for the given recipe from the library at the
supplied path, verifying it against the declared checksum.
If no version is supplied the latest declared version is fetched.`,
	Args: cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		rl := reciplib.NewRecipeLib(nil)
		if err := rl.Init(cmd.Context(), os.DirFS(args[0])); err != nil {
			cmd.PrintErrf("%s library init error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		recipe, err := rl.Recipe(args[1])
		if err != nil {
			cmd.PrintErrf("%s %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		version := ""
		if len(args) == 3 {
			version = args[2]
		}

		dst, err := reciplib.FetchPackageSource(cmd.Context(), recipe, version, "sources")
		if err != nil {
			cmd.PrintErrf("%s fetch source error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		cmd.Println(dst)
	},
}
