package assets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// VersionPlaceholder is the token in a recipe URL template that is replaced
// with a version label to synthesize a download location.
const VersionPlaceholder = "{version}"

var (
	// ErrNoVersionPlaceholder is returned when a URL template has no version placeholder.
	ErrNoVersionPlaceholder = errors.New("url template does not contain the version placeholder")

	// ErrInvalidURL is returned when a URL is not absolute or cannot be parsed.
	ErrInvalidURL = errors.New("invalid url")
)

// Recipe is a declarative build recipe for one third-party package.
// It records the metadata an external build orchestrator needs to fetch and
// identify the package, it holds no logic or state of its own.
//
// The zero value is not usable, recipes are created by the library processor
// or with NewRecipe.
type Recipe struct {
	// Name is the stable identifier for the package, derived from the
	// declaration site (the recipe file name).
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Description is a free-text human readable summary.
	Description string `json:"description" yaml:"description"`

	// Homepage is informational only.
	Homepage string `json:"homepage" yaml:"homepage"`

	// URLTemplate contains the VersionPlaceholder token.
	URLTemplate string `json:"url" yaml:"url"`

	// ListURL optionally points to an archive of historical release files.
	ListURL string `json:"list_url,omitempty" yaml:"list_url,omitempty"`

	// Versions holds the declared (version label, checksum) pairs.
	Versions *VersionCollection `json:"versions" yaml:"versions"`
}

// NewRecipe returns an empty recipe with the supplied name.
func NewRecipe(name string) *Recipe {
	return &Recipe{
		Name:     name,
		Versions: NewVersionCollection(),
	}
}

// ResolveDownloadURL substitutes the supplied version label into the URL
// template. The label is not required to be declared in Versions, whether a
// synthesized URL exists upstream is the orchestrator's concern.
func (r *Recipe) ResolveDownloadURL(version string) (string, error) {
	if !strings.Contains(r.URLTemplate, VersionPlaceholder) {
		return "", fmt.Errorf("%w: recipe %s", ErrNoVersionPlaceholder, r.Name)
	}
	return strings.ReplaceAll(r.URLTemplate, VersionPlaceholder, version), nil
}

// Validate checks the recipe's declared data: every checksum must be a
// well-formed digest and every declared version must resolve to a
// syntactically valid absolute URL.
func (r *Recipe) Validate() error {
	if r.Versions == nil {
		return fmt.Errorf("recipe %s: %w", r.Name, ErrNoVersions)
	}

	for _, entry := range r.Versions.Entries() {
		if err := entry.Checksum.Validate(); err != nil {
			return fmt.Errorf("recipe %s, version %s: %w", r.Name, entry.Label, err)
		}

		resolved, err := r.ResolveDownloadURL(entry.Label)
		if err != nil {
			return err
		}

		if err := validateAbsoluteURL(resolved); err != nil {
			return fmt.Errorf("recipe %s, version %s: %w", r.Name, entry.Label, err)
		}
	}

	return nil
}

// Copy returns a deep copy of the recipe.
func (r *Recipe) Copy() *Recipe {
	cpy := *r
	if r.Versions != nil {
		cpy.Versions = r.Versions.Copy()
	}
	return &cpy
}

func validateAbsoluteURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return errors.Join(ErrInvalidURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: not absolute: %s", ErrInvalidURL, s)
	}
	return nil
}
