package checks

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkgforge/reciplib"
	"github.com/pkgforge/reciplib/internal/tools/checker"
)

// CheckAllChecksumsAreWellFormed is a validator check that ensures every
// declared checksum is a well-formed digest of the expected length and
// charset for a known hash algorithm.
func CheckAllChecksumsAreWellFormed(rl *reciplib.RecipeLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All checksums are well-formed digests",
		checkAllChecksumsAreWellFormed(rl),
	)
}

func checkAllChecksumsAreWellFormed(rl *reciplib.RecipeLib) func() error {
	return func() error {
		var merr error

		for _, name := range rl.Recipes() {
			recipe, err := rl.Recipe(name)
			if err != nil {
				return fmt.Errorf("checkAllChecksumsAreWellFormed: %w", err)
			}

			for _, entry := range recipe.Versions.Entries() {
				if err := entry.Checksum.Validate(); err != nil {
					merr = multierror.Append(merr, fmt.Errorf(
						"recipe %s, version %s: %w", name, entry.Label, err,
					))
				}
			}
		}

		return merr
	}
}
