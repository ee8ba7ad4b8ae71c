package reciplib

import (
	"context"
	"fmt"
	"path/filepath"

	sets "github.com/deckarep/golang-set/v2"
	"github.com/pkgforge/reciplib/internal/processor"
)

// FetchAllLibrariesWithDependencies takes a library reference, fetches it, and
// then fetches all of its dependencies, depth first.
// Each reference is fetched into a deterministic subdirectory of the base
// directory from environment.RecipLibDir(), so a reference shared by several
// libraries always lands in the same place.
// References are identified by their String() value, each is fetched at most
// once, so dependency cycles between library members terminate.
// Example usage:
//
//	rl := reciplib.NewRecipeLib(nil)
//	thisLib := reciplib.NewCustomLibraryReference("path/to/library")
//	libs, err := thisLib.FetchWithDependencies(ctx)
//	// ... handle error
//	err = rl.Init(ctx, libs.FSs()...)
//	// ... handle error
func FetchAllLibrariesWithDependencies(ctx context.Context, lib LibraryReference, libs LibraryReferences) (LibraryReferences, error) {
	visited := sets.NewSet[string]()
	for _, l := range libs {
		visited.Add(l.String())
	}
	return fetchLibraryWithDependencies(ctx, lib, libs, visited)
}

// fetchLibraryWithDependencies fetches lib and recurses into its declared
// dependencies. The visited set is marked before recursing so that cyclic
// dependency declarations do not recurse forever.
func fetchLibraryWithDependencies(
	ctx context.Context,
	lib LibraryReference,
	libs LibraryReferences,
	visited sets.Set[string],
) (LibraryReferences, error) {
	if !visited.Add(lib.String()) {
		return libs, nil
	}

	dir := filepath.Join("libs", uuidV5(lib.String()).String())
	f, err := lib.Fetch(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("could not fetch library member `%s`: %w", lib.String(), err)
	}
	pscl := processor.NewClient(f)
	libmeta, err := pscl.Metadata()
	if err != nil {
		return nil, fmt.Errorf("could not read metadata of library member `%s`: %w", lib.String(), err)
	}
	meta := NewMetadata(libmeta)
	// for each dependency, recurse using this function
	for _, dep := range meta.Dependencies() {
		libs, err = fetchLibraryWithDependencies(ctx, dep, libs, visited)
		if err != nil {
			return nil, err
		}
	}

	return append(libs, lib), nil
}

// FetchWithDependencies fetches all supplied library references with their
// dependencies, dependencies first. A dependency shared by several members is
// fetched once.
func (refs LibraryReferences) FetchWithDependencies(ctx context.Context) (LibraryReferences, error) {
	libs := make(LibraryReferences, 0, len(refs))
	var err error
	for _, ref := range refs {
		libs, err = FetchAllLibrariesWithDependencies(ctx, ref, libs)
		if err != nil {
			return nil, err
		}
	}
	return libs, nil
}
