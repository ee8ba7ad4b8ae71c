package document

import (
	"os"

	"github.com/pkgforge/reciplib/pkg/doc"
	"github.com/spf13/cobra"
)

var documentLibraryBaseCmd = cobra.Command{
	Use:   "library path",
	Short: "Generates documentation for the supplied library path.",
	Long:  `Generates documentation for the supplied library path.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fs := os.DirFS(args[0])
		if err := doc.LibraryReadmeMd(cmd.Context(), os.Stdout, fs); err != nil {
			cmd.PrintErrf("%s document library error: %v\n", cmd.ErrPrefix(), err)
			os.Exit(1)
		}
	},
}
