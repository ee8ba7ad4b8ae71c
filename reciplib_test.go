package reciplib

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/pkgforge/reciplib/assets"
	"github.com/pkgforge/reciplib/internal/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSimpleLibrary(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx := context.Background()
	require.NoError(t, rl.Init(ctx, os.DirFS("./testdata/simple")))

	assert.Equal(t, []string{"r-shape", "zlib"}, rl.Recipes())
	assert.True(t, rl.RecipeExists("zlib"))
	assert.False(t, rl.RecipeExists("openssl"))

	meta := rl.Metadata()
	require.Len(t, meta, 1)
	assert.Equal(t, "test", meta[0].Name())
	assert.Equal(t, "test display name.", meta[0].DisplayName())
	assert.Equal(t, "test description", meta[0].Description())
	assert.Equal(t, "community/test", meta[0].Path())
}

func TestInitInvalidURLTemplate(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx := context.Background()
	err := rl.Init(ctx, os.DirFS("./testdata/badurl"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assets.ErrNoVersionPlaceholder)
}

func TestInitNonExistentDirectory(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx := context.Background()
	err := rl.Init(ctx, os.DirFS("./testdata/does-not-exist"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestInitMultipleLibsDuplicateRecipe(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx := context.Background()
	err := rl.Init(ctx, os.DirFS("./testdata/simple"), os.DirFS("./testdata/simple"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "already exists")
}

func TestInitMultipleLibsAllowOverwrite(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(&RecipeLibOptions{Parallelism: 2, AllowOverwrite: true})
	ctx := context.Background()
	require.NoError(t, rl.Init(ctx, os.DirFS("./testdata/simple"), os.DirFS("./testdata/simple")))
	assert.Equal(t, []string{"r-shape", "zlib"}, rl.Recipes())
	assert.Len(t, rl.Metadata(), 2)
}

func TestAddRecipes(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	recipe := assets.NewRecipe("cmake")
	recipe.URLTemplate = "https://github.com/Kitware/CMake/releases/download/v{version}/cmake-{version}.tar.gz"
	require.NoError(t, recipe.Versions.Add("3.30.2", "46074c781eccebc433e98f0bbfa265ca3fd4381f245ca3b140e7711531d60db2", false))

	require.NoError(t, rl.AddRecipes(recipe))
	assert.True(t, rl.RecipeExists("cmake"))

	// duplicate registration is rejected
	err := rl.AddRecipes(recipe)
	require.Error(t, err)
	assert.ErrorContains(t, err, "already exists")

	// unless overwriting is allowed
	rl.Options.AllowOverwrite = true
	assert.NoError(t, rl.AddRecipes(recipe))
}

func TestAddRecipesWithoutName(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	err := rl.AddRecipes(new(assets.Recipe))
	require.Error(t, err)
	assert.ErrorContains(t, err, "without a name")
}

func TestRecipeReturnsCopy(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx := context.Background()
	require.NoError(t, rl.Init(ctx, os.DirFS("./testdata/simple")))

	first, err := rl.Recipe("zlib")
	require.NoError(t, err)
	first.Description = "mutated"
	require.NoError(t, first.Versions.Add("9.9.9", "2a807bf95e7decc71478f805221852da", false))

	second, err := rl.Recipe("zlib")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second.Description)
	assert.False(t, second.Versions.Exists("9.9.9"))
}

func TestRecipeNotFound(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	_, err := rl.Recipe("nonexistent")
	require.Error(t, err)
	assert.ErrorContains(t, err, "not found")
}

func TestAddProcessedResultNilMetadata(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	res := processor.NewResult()
	require.NoError(t, rl.addProcessedResult(res))
	assert.Empty(t, rl.Metadata())
}

func TestInitCancelledContext(t *testing.T) {
	t.Parallel()

	rl := NewRecipeLib(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := rl.Init(ctx, os.DirFS("./testdata/simple"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
