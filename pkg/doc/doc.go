// Package doc generates markdown documentation for recipe libraries.
package doc

import (
	"context"
	"fmt"
	"io"
	"io/fs"

	"github.com/nao1215/markdown"
	"github.com/pkgforge/reciplib"
)

// LibraryReadmeMd writes a markdown README for the recipe library at the
// supplied filesystem.
func LibraryReadmeMd(ctx context.Context, w io.Writer, libfs fs.FS) error {
	rl := reciplib.NewRecipeLib(nil)
	if err := rl.Init(ctx, libfs); err != nil {
		return fmt.Errorf("doc.LibraryReadmeMd: failed to initialize reciplib: %w", err)
	}

	name := "Recipe library"
	description := ""
	deps := make([]string, 0)
	if metas := rl.Metadata(); len(metas) > 0 {
		meta := metas[0]
		if meta.Name() != "" {
			name = fmt.Sprintf("%s (%s)", meta.DisplayName(), meta.Name())
		}
		description = meta.Description()
		for _, dep := range meta.Dependencies() {
			deps = append(deps, dep.String())
		}
	}

	md := markdown.NewMarkdown(w).
		H1(name).LF().
		PlainText(description).LF().
		H2("Dependencies").LF().
		BulletList(deps...).LF().
		H2("Recipes").LF()

	for _, recipeName := range rl.Recipes() {
		recipe, err := rl.Recipe(recipeName)
		if err != nil {
			return fmt.Errorf("doc.LibraryReadmeMd: %w", err)
		}

		rows := make([][]string, 0, recipe.Versions.Len())
		for _, entry := range recipe.Versions.Entries() {
			alg, err := entry.Checksum.Algorithm()
			if err != nil {
				return fmt.Errorf("doc.LibraryReadmeMd: recipe %s: %w", recipeName, err)
			}
			rows = append(rows, []string{entry.Label, entry.Checksum.String(), string(alg)})
		}

		md = md.H3(recipeName).LF().
			PlainText(recipe.Description).LF().
			PlainTextf("Homepage: %s", recipe.Homepage).LF().
			PlainTextf("Download URL template: `%s`", recipe.URLTemplate).LF()

		if recipe.ListURL != "" {
			md = md.PlainTextf("Release archive: %s", recipe.ListURL).LF()
		}

		md = md.Table(markdown.TableSet{
			Header: []string{"Version", "Checksum", "Algorithm"},
			Rows:   rows,
		}).LF()
	}

	return md.Build() //nolint:wrapcheck
}
