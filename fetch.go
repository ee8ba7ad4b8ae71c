package reciplib

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	getter "github.com/hashicorp/go-getter"
	"github.com/pkgforge/reciplib/assets"
	"github.com/pkgforge/reciplib/internal/environment"
	"github.com/sirupsen/logrus"
)

// FetchRegistryLibraryMember fetches a library member from the recipe
// registry, e.g. path "community/cran" and ref "2024.03.0".
// The destination directory is appended to the base directory from
// environment.RecipLibDir().
func FetchRegistryLibraryMember(ctx context.Context, destinationDirectory, pth, ref string) (fs.FS, error) {
	q := url.Values{}
	q.Add("ref", ref)
	src := fmt.Sprintf("git::https://%s//%s?%s", environment.RecipeRegistryGitUrl(), pth, q.Encode())
	return FetchLibraryByGetterString(ctx, src, destinationDirectory)
}

// FetchLibraryByGetterString fetches a recipe library from a go-getter URL.
// The destination directory is appended to the base directory from
// environment.RecipLibDir() and is emptied before fetching.
func FetchLibraryByGetterString(ctx context.Context, getterString, destinationDirectory string) (fs.FS, error) {
	dst := filepath.Join(environment.RecipLibDir(), destinationDirectory)
	if err := os.RemoveAll(dst); err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: error cleaning destination directory %s: %w", dst, err)
	}

	logrus.WithFields(logrus.Fields{
		"source":      getterString,
		"destination": dst,
	}).Debug("fetching recipe library")

	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: error getting working directory: %w", err)
	}

	client := getter.Client{
		Ctx:  ctx,
		Src:  getterString,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeAny,
	}
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("FetchLibraryByGetterString: error fetching library from %s: %w", getterString, err)
	}

	return os.DirFS(dst), nil
}

// FetchPackageSource downloads the source archive for the given recipe and
// version and verifies it against the declared checksum.
// An empty version selects the latest declared version.
// It returns the path of the downloaded archive.
//
// Unlike Recipe.ResolveDownloadURL, the version label must be declared in the
// recipe: without a declared checksum the download cannot be verified.
func FetchPackageSource(ctx context.Context, recipe *assets.Recipe, version, destinationDirectory string) (string, error) {
	if version == "" {
		latest, err := recipe.Versions.Latest()
		if err != nil {
			return "", fmt.Errorf("FetchPackageSource: recipe %s: %w", recipe.Name, err)
		}
		version = latest.Label
	}

	sum, ok := recipe.Versions.Checksum(version)
	if !ok {
		return "", fmt.Errorf("FetchPackageSource: recipe %s does not declare version %s", recipe.Name, version)
	}

	gs, err := sum.GetterString()
	if err != nil {
		return "", fmt.Errorf("FetchPackageSource: recipe %s, version %s: %w", recipe.Name, version, err)
	}

	downloadURL, err := recipe.ResolveDownloadURL(version)
	if err != nil {
		return "", fmt.Errorf("FetchPackageSource: %w", err)
	}

	u, err := url.Parse(downloadURL)
	if err != nil {
		return "", fmt.Errorf("FetchPackageSource: invalid download url %s: %w", downloadURL, err)
	}

	q := u.Query()
	q.Add("checksum", gs)
	u.RawQuery = q.Encode()

	// A deterministic cache key keeps re-fetches of the same
	// (package, version) pair in the same place.
	key := uuidV5(recipe.Name, version).String()
	dst := filepath.Join(
		environment.RecipLibDir(),
		destinationDirectory,
		key,
		path.Base(u.Path),
	)

	logrus.WithFields(logrus.Fields{
		"recipe":      recipe.Name,
		"version":     version,
		"source":      downloadURL,
		"destination": dst,
	}).Info("fetching package source")

	client := getter.Client{
		Ctx:  ctx,
		Src:  u.String(),
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		return "", fmt.Errorf("FetchPackageSource: error fetching %s: %w", downloadURL, err)
	}

	return dst, nil
}

// uuidV5 generates a deterministic UUID from the supplied strings.
func uuidV5(s ...string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.Join(s, "")))
}
