package checks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkgforge/reciplib/internal/processor"
	"github.com/pkgforge/reciplib/internal/tools/checker"
	"github.com/pkgforge/reciplib/to"
)

// recipeFileNameCheckModel is a loose model of a recipe file used to compare
// an in-file name against the file's declaration site.
type recipeFileNameCheckModel struct {
	Name *string `json:"name,omitempty" yaml:"name,omitempty"`
}

func (m *recipeFileNameCheckModel) check(derivedName string) error {
	if m.Name == nil {
		return nil // the name is derived from the file name alone
	}
	if *m.Name != derivedName {
		return fmt.Errorf("filename name component: expected %s, got %s", to.ValOrZero(m.Name), derivedName)
	}
	return nil
}

// CheckRecipeFileNameOptions are options for CheckRecipeFileNames.
type CheckRecipeFileNameOptions struct {
	Fix bool // Whether to rename files to match their internal name.
}

// CheckRecipeFileNames is a validator check that ensures recipe file names
// agree with the name declared inside the file, when one is declared.
func CheckRecipeFileNames(path string, opts *CheckRecipeFileNameOptions) checker.ValidatorCheck {
	if opts == nil {
		opts = new(CheckRecipeFileNameOptions)
	}

	return checker.NewValidatorCheck(
		"All recipe file names are valid",
		checkRecipeFileNames(path, opts),
	)
}

func checkRecipeFileNames(path string, opts *CheckRecipeFileNameOptions) func() error {
	fixes := make(map[string]string)

	return func() error {
		// merr collects filename errors that do not stop the walk.
		var merr error

		dirFs := os.DirFS(path)
		walkErr := fs.WalkDir(dirFs, ".", func(relPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("checkRecipeFileNames: error walking directory %s: %w", relPath, err)
			}
			if d.IsDir() {
				return nil
			}
			if !processor.RecipeRegex.MatchString(strings.ToLower(d.Name())) {
				return nil
			}

			fileBytes, err := os.ReadFile(filepath.Join(path, relPath))
			if err != nil {
				return fmt.Errorf("checkRecipeFileNames: failed to read file: %s: %w", relPath, err)
			}

			model := new(recipeFileNameCheckModel)
			if err := processor.NewUnmarshaler(fileBytes, filepath.Ext(relPath)).Unmarshal(model); err != nil {
				return fmt.Errorf("checkRecipeFileNames: failed to unmarshal file: %s: %w", relPath, err)
			}

			derived := processor.RecipeNameFromFileName(d.Name())

			if nameErr := model.check(derived); nameErr != nil {
				if opts.Fix {
					ext := filepath.Ext(relPath)
					newName := fmt.Sprintf("%s.%s%s", *model.Name, processor.RecipeFileType, ext)
					fixes[filepath.Join(path, relPath)] = newName
					return nil
				}

				merr = multierror.Append(merr, fmt.Errorf("%s: %w", relPath, nameErr))
			}

			return nil
		})

		if walkErr != nil {
			return walkErr
		}

		if len(fixes) > 0 {
			for oldPath, newName := range fixes {
				newPath := filepath.Join(filepath.Dir(oldPath), newName)
				if err := os.Rename(oldPath, newPath); err != nil {
					merr = multierror.Append(merr, fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err))
				}
			}
		}

		return merr
	}
}
