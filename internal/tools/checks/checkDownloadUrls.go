package checks

import (
	"fmt"
	"net/url"

	"github.com/hashicorp/go-multierror"
	"github.com/pkgforge/reciplib"
	"github.com/pkgforge/reciplib/internal/tools/checker"
)

// CheckAllVersionsResolve is a validator check that ensures substituting
// every declared version label into its recipe's URL template yields a
// syntactically valid absolute URL.
func CheckAllVersionsResolve(rl *reciplib.RecipeLib) checker.ValidatorCheck {
	return checker.NewValidatorCheck(
		"All declared versions resolve to valid download URLs",
		checkAllVersionsResolve(rl),
	)
}

func checkAllVersionsResolve(rl *reciplib.RecipeLib) func() error {
	return func() error {
		var merr error

		for _, name := range rl.Recipes() {
			recipe, err := rl.Recipe(name)
			if err != nil {
				return fmt.Errorf("checkAllVersionsResolve: %w", err)
			}

			for _, label := range recipe.Versions.Labels() {
				resolved, err := recipe.ResolveDownloadURL(label)
				if err != nil {
					merr = multierror.Append(merr, err)
					continue
				}

				u, err := url.Parse(resolved)
				if err != nil {
					merr = multierror.Append(merr, fmt.Errorf(
						"recipe %s, version %s: invalid url %s: %w", name, label, resolved, err,
					))
					continue
				}

				if u.Scheme == "" || u.Host == "" {
					merr = multierror.Append(merr, fmt.Errorf(
						"recipe %s, version %s: url is not absolute: %s", name, label, resolved,
					))
				}
			}
		}

		return merr
	}
}
