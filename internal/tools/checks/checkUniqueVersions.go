package checks

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	sets "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/pkgforge/reciplib/internal/processor"
	"github.com/pkgforge/reciplib/internal/tools/checker"
)

// versionLabelCheckModel is a loose model of a recipe file used to inspect
// raw version labels. The strict recipe types reject duplicates at parse
// time, this check reports them per file instead of failing the whole load.
type versionLabelCheckModel struct {
	Versions []struct {
		Version string `json:"version" yaml:"version"`
	} `json:"versions" yaml:"versions"`
}

// CheckVersionLabelsAreUnique is a validator check that ensures version
// labels are unique within each recipe file in the supplied directory.
func CheckVersionLabelsAreUnique(path string) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All version labels are unique within their recipe",
		checkVersionLabelsAreUnique(path),
	)
}

func checkVersionLabelsAreUnique(path string) func() error {
	return func() error {
		var merr error

		dirFs := os.DirFS(path)
		walkErr := fs.WalkDir(dirFs, ".", func(relPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("checkVersionLabelsAreUnique: error walking directory %s: %w", relPath, err)
			}
			if d.IsDir() {
				return nil
			}
			if !processor.RecipeRegex.MatchString(strings.ToLower(d.Name())) {
				return nil
			}
			if !slices.Contains(processor.SupportedFileExtensions, strings.ToLower(filepath.Ext(relPath))) {
				return nil
			}

			fileBytes, err := os.ReadFile(filepath.Join(path, relPath))
			if err != nil {
				return fmt.Errorf("checkVersionLabelsAreUnique: error reading file %s: %w", relPath, err)
			}

			model := new(versionLabelCheckModel)
			if err := processor.NewUnmarshaler(fileBytes, filepath.Ext(relPath)).Unmarshal(model); err != nil {
				return fmt.Errorf("checkVersionLabelsAreUnique: error unmarshaling file %s: %w", relPath, err)
			}

			seen := sets.NewSet[string]()
			for _, v := range model.Versions {
				if seen.Add(v.Version) {
					continue
				}
				merr = multierror.Append(merr, fmt.Errorf(
					"%s: duplicate version label %s", relPath, v.Version,
				))
			}

			return nil
		})

		if walkErr != nil {
			return walkErr
		}

		return merr
	}
}
