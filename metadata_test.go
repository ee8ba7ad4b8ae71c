package reciplib

import (
	"testing"

	"github.com/pkgforge/reciplib/internal/processor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLibraryReferenceString(t *testing.T) {
	t.Parallel()

	ref := NewRegistryLibraryReference("community/cran", "2026.08.0")
	assert.Equal(t, "community/cran@2026.08.0", ref.String())
	assert.Equal(t, "community/cran", ref.Path())
	assert.Equal(t, "2026.08.0", ref.Tag())
}

func TestCustomLibraryReferenceString(t *testing.T) {
	t.Parallel()

	ref := NewCustomLibraryReference("git::https://example.com/recipes.git")
	assert.Equal(t, "git::https://example.com/recipes.git", ref.String())
}

func TestNewMetadataDependencyFromProcessor(t *testing.T) {
	t.Parallel()

	dep := NewMetadataDependencyFromProcessor(processor.LibMetadataDependency{
		Path: "community/cran",
		Ref:  "2026.08.0",
	})
	reg, ok := dep.(*RegistryLibraryReference)
	require.True(t, ok)
	assert.Equal(t, "community/cran", reg.Path())

	dep = NewMetadataDependencyFromProcessor(processor.LibMetadataDependency{
		CustomURL: "testdata/simple",
	})
	_, ok = dep.(*CustomLibraryReference)
	assert.True(t, ok)
}

func TestNewMetadata(t *testing.T) {
	t.Parallel()

	meta := NewMetadata(&processor.LibMetadata{
		Name:        "cran",
		DisplayName: "CRAN recipes",
		Description: "Recipes for R packages",
		Path:        "community/cran",
		Dependencies: []processor.LibMetadataDependency{
			{Path: "community/base", Ref: "2026.08.0"},
		},
	})
	assert.Equal(t, "cran", meta.Name())
	assert.Equal(t, "CRAN recipes", meta.DisplayName())
	assert.Equal(t, "Recipes for R packages", meta.Description())
	assert.Equal(t, "community/cran", meta.Path())
	require.Len(t, meta.Dependencies(), 1)
	assert.Equal(t, "community/base@2026.08.0", meta.Dependencies()[0].String())
}

func TestLibraryReferencesFSsSkipsUnfetched(t *testing.T) {
	t.Parallel()

	refs := LibraryReferences{
		NewCustomLibraryReference("testdata/simple"),
		NewCustomLibraryReference("testdata/badurl"),
	}
	assert.Empty(t, refs.FSs())
}
