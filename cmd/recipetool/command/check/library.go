package check

import (
	"os"

	"github.com/pkgforge/reciplib"
	"github.com/pkgforge/reciplib/internal/tools/checker"
	"github.com/pkgforge/reciplib/internal/tools/checks"
	"github.com/spf13/cobra"
)

// libraryCmd represents the library check command.
var libraryCmd = cobra.Command{
	Use:   "library [flags] dir",
	Short: "Perform operations on a recipe library member.",
	Long:  `Primarily used as a tool to check the validity of a library member.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rl := reciplib.NewRecipeLib(nil)
		thisRef := reciplib.NewCustomLibraryReference(args[0])
		libs, err := thisRef.FetchWithDependencies(cmd.Context())
		if err != nil {
			cmd.PrintErrf(
				"%s could not fetch all libraries with dependencies: %v\n",
				cmd.ErrPrefix(),
				err,
			)
			os.Exit(1)
		}
		err = rl.Init(cmd.Context(), libs.FSs()...)
		if err != nil {
			cmd.PrintErrf("%s library init error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		shouldFix, err := cmd.Flags().GetBool("fix")
		if err != nil {
			cmd.PrintErrf("%s could not get fix flag: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}

		chk := checker.NewValidator(
			checks.CheckAllChecksumsAreWellFormed(rl),
			checks.CheckAllVersionsResolve(rl),
			checks.CheckVersionLabelsAreUnique(args[0]),
			checks.CheckRecipeFileNames(args[0], &checks.CheckRecipeFileNameOptions{
				Fix: shouldFix,
			}),
		)
		err = chk.Validate()
		if err != nil {
			cmd.PrintErrf("%s library check error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}

func init() {
	libraryCmd.Flags().
		BoolP("fix", "f", false,
			"Whether to fix any fixable issues (currently only filename issues).")
}
