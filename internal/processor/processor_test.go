package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullLibrary(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata/lib")
	pc := NewClient(fs)
	res := NewResult()
	require.NoError(t, pc.Process(res))

	assert.Len(t, res.Recipes, 3)
	assert.Equal(t, "test", res.Metadata.Name)
	assert.Equal(t, "test display name.", res.Metadata.DisplayName)
	assert.Equal(t, "test description", res.Metadata.Description)
	assert.Equal(t, "community/test", res.Metadata.Path)
	assert.Empty(t, res.Metadata.Dependencies)

	shape := res.Recipes["r-shape"]
	require.NotNil(t, shape)
	assert.Equal(t, "r-shape", shape.Name)
	assert.Equal(t, "https://cran.r-project.org/src/contrib/shape_{version}.tar.gz", shape.URLTemplate)
	assert.Equal(t, "https://cran.r-project.org/src/contrib/Archive/shape", shape.ListURL)
	assert.Equal(t, []string{"1.4.3", "1.4.2"}, shape.Versions.Labels())

	sum, ok := shape.Versions.Checksum("1.4.3")
	require.True(t, ok)
	assert.Equal(t, "2a807bf95e7decc71478f805221852da", sum.String())

	// YAML and YML recipes decode the same way as JSON
	zlib := res.Recipes["zlib"]
	require.NotNil(t, zlib)
	assert.Equal(t, []string{"1.3.1", "1.2.13"}, zlib.Versions.Labels())

	openssl := res.Recipes["openssl"]
	require.NotNil(t, openssl)
	assert.Equal(t, "https://www.openssl.org/source/old", openssl.ListURL)
}

func TestProcessDuplicateRecipe(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata/dupelib")
	pc := NewClient(fs)
	res := NewResult()
	err := pc.Process(res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecipeAlreadyExists)
}

func TestProcessBadChecksum(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata/badchecksum")
	pc := NewClient(fs)
	res := NewResult()
	err := pc.Process(res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProcessingFile)
}

func TestProcessNameMismatch(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata/mismatch")
	pc := NewClient(fs)
	res := NewResult()
	err := pc.Process(res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNameMismatch)
}

func TestProcessRecipeValid(t *testing.T) {
	t.Parallel()

	sampleData := []byte(`{
  "description": "sample",
  "homepage": "https://example.com",
  "url": "https://example.com/sample-{version}.tar.gz",
  "versions": [
    { "version": "1.0.0", "checksum": "2a807bf95e7decc71478f805221852da" }
  ]
}`)
	res := NewResult()
	unmar := NewUnmarshaler(sampleData, ".json")
	require.NoError(t, processRecipe(res, unmar, "sample.recipe.json"))
	assert.Len(t, res.Recipes, 1)
	assert.Equal(t, "sample", res.Recipes["sample"].Name)
}

func TestProcessRecipeInvalidJSON(t *testing.T) {
	t.Parallel()

	sampleData := []byte(`{"description": "sample",]`)
	res := NewResult()
	unmar := NewUnmarshaler(sampleData, ".json")
	err := processRecipe(res, unmar, "sample.recipe.json")
	assert.ErrorIs(t, err, ErrUnmarshaling)
}

func TestProcessRecipeNoVersions(t *testing.T) {
	t.Parallel()

	sampleData := []byte(`{"description": "sample", "url": "https://example.com/sample-{version}.tar.gz"}`)
	res := NewResult()
	unmar := NewUnmarshaler(sampleData, ".json")
	require.NoError(t, processRecipe(res, unmar, "sample.recipe.json"))
	require.NotNil(t, res.Recipes["sample"].Versions)
	assert.Equal(t, 0, res.Recipes["sample"].Versions.Len())
}

func TestRecipeNameFromFileName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "r-shape", RecipeNameFromFileName("r-shape.recipe.json"))
	assert.Equal(t, "r-shape", RecipeNameFromFileName("some/dir/r-shape.recipe.yaml"))
	assert.Equal(t, "zlib.ng", RecipeNameFromFileName("zlib.ng.recipe.yml"))
}

func TestMetadataMissingFile(t *testing.T) {
	t.Parallel()

	fs := os.DirFS("./testdata/dupelib")
	pc := NewClient(fs)
	meta, err := pc.Metadata()
	require.NoError(t, err)
	assert.Empty(t, meta.Name)
	assert.Empty(t, meta.Dependencies)
}

func TestProcessCacheDirNameInRecipePath(t *testing.T) {
	// no t.Parallel, mutates the environment
	t.Setenv("RECIPLIB_DIR", "/tmp/lib")

	fs := os.DirFS("./testdata/lib")
	pc := NewClient(fs)
	res := NewResult()
	require.NoError(t, pc.Process(res))

	// zlib.recipe.yaml contains "lib" in its path but is not inside the
	// cache directory, it must still be processed
	assert.Contains(t, res.Recipes, "zlib")
	assert.Len(t, res.Recipes, 3)
}

func TestProcessSkipsFetchCacheDir(t *testing.T) {
	// no t.Parallel, mutates the environment
	t.Setenv("RECIPLIB_DIR", ".reciplib")

	recipe := []byte(`{
  "description": "sample",
  "homepage": "https://example.com",
  "url": "https://example.com/sample-{version}.tar.gz",
  "versions": [
    { "version": "1.0.0", "checksum": "2a807bf95e7decc71478f805221852da" }
  ]
}`)

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".reciplib", "libs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".reciplib", "libs", "cached.recipe.json"), recipe, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "real.recipe.json"), recipe, 0o600))

	pc := NewClient(os.DirFS(dir))
	res := NewResult()
	require.NoError(t, pc.Process(res))

	assert.Contains(t, res.Recipes, "real")
	assert.NotContains(t, res.Recipes, "cached")
}
