package reciplib

import (
	"context"
	"io/fs"
	"strings"

	"github.com/pkgforge/reciplib/internal/processor"
)

// Metadata describes a processed recipe library member.
type Metadata struct {
	name         string
	displayName  string
	description  string
	dependencies []LibraryReference
	path         string
}

// LibraryReference is an interface that represents a dependency of a recipe library member.
// It can be fetched from either a custom go-getter URL or from the recipe registry.
type LibraryReference interface {
	// Fetch fetches the library member into the destination directory and returns it as an fs.FS.
	Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error)
	// FS returns the filesystem of the fetched library member, nil if it has not been fetched.
	FS() fs.FS
	// String returns a stable identifier for the reference.
	String() string
}

// LibraryReferences is a slice of LibraryReference.
type LibraryReferences []LibraryReference

// FSs returns the filesystems of all fetched library members, in order.
func (refs LibraryReferences) FSs() []fs.FS {
	result := make([]fs.FS, 0, len(refs))
	for _, ref := range refs {
		if ref.FS() == nil {
			continue
		}
		result = append(result, ref.FS())
	}
	return result
}

var _ LibraryReference = (*RegistryLibraryReference)(nil)
var _ LibraryReference = (*CustomLibraryReference)(nil)

// RegistryLibraryReference is a dependency of a recipe library member that is
// fetched from the recipe registry by path and ref.
type RegistryLibraryReference struct {
	path string
	ref  string
	fs   fs.FS
}

// NewRegistryLibraryReference creates a reference to a registry library member.
func NewRegistryLibraryReference(path, ref string) *RegistryLibraryReference {
	return &RegistryLibraryReference{
		path: path,
		ref:  ref,
	}
}

// Fetch fetches the library member from the recipe registry.
func (m *RegistryLibraryReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	f, err := FetchRegistryLibraryMember(ctx, destinationDirectory, m.path, m.ref)
	if err != nil {
		return nil, err
	}
	m.fs = f
	return f, nil
}

// FetchWithDependencies fetches the library member and, recursively, the
// dependencies declared in its metadata.
func (m *RegistryLibraryReference) FetchWithDependencies(ctx context.Context) (LibraryReferences, error) {
	return FetchAllLibrariesWithDependencies(ctx, m, make(LibraryReferences, 0, 5))
}

// FS returns the filesystem of the fetched library member.
func (m *RegistryLibraryReference) FS() fs.FS {
	return m.fs
}

// String returns the formatted path and the tag of the library member.
func (m *RegistryLibraryReference) String() string {
	return strings.Join([]string{m.path, m.ref}, "@")
}

// Path returns the registry path of the library member.
func (m *RegistryLibraryReference) Path() string {
	return m.path
}

// Tag returns the registry tag of the library member.
func (m *RegistryLibraryReference) Tag() string {
	return m.ref
}

// CustomLibraryReference is a dependency of a recipe library member that is
// fetched from a custom go-getter URL.
type CustomLibraryReference struct {
	url string
	fs  fs.FS
}

// NewCustomLibraryReference creates a reference to a custom go-getter URL.
func NewCustomLibraryReference(url string) *CustomLibraryReference {
	return &CustomLibraryReference{
		url: url,
	}
}

// Fetch fetches the library member from the custom go-getter URL.
func (m *CustomLibraryReference) Fetch(ctx context.Context, destinationDirectory string) (fs.FS, error) {
	f, err := FetchLibraryByGetterString(ctx, m.url, destinationDirectory)
	if err != nil {
		return nil, err
	}
	m.fs = f
	return f, nil
}

// FetchWithDependencies fetches the library member and, recursively, the
// dependencies declared in its metadata.
func (m *CustomLibraryReference) FetchWithDependencies(ctx context.Context) (LibraryReferences, error) {
	return FetchAllLibrariesWithDependencies(ctx, m, make(LibraryReferences, 0, 5))
}

// FS returns the filesystem of the fetched library member.
func (m *CustomLibraryReference) FS() fs.FS {
	return m.fs
}

// String returns the URL of the custom go-getter.
func (m *CustomLibraryReference) String() string {
	return m.url
}

// NewMetadata creates a Metadata from a processed library metadata record.
func NewMetadata(in *processor.LibMetadata) *Metadata {
	dependencies := make([]LibraryReference, len(in.Dependencies))
	for i, dep := range in.Dependencies {
		dependencies[i] = NewMetadataDependencyFromProcessor(dep)
	}
	return &Metadata{
		name:         in.Name,
		displayName:  in.DisplayName,
		description:  in.Description,
		dependencies: dependencies,
		path:         in.Path,
	}
}

// NewMetadataDependencyFromProcessor converts a processor dependency into a LibraryReference.
func NewMetadataDependencyFromProcessor(in processor.LibMetadataDependency) LibraryReference {
	if in.CustomURL != "" {
		return &CustomLibraryReference{
			url: in.CustomURL,
		}
	}
	return &RegistryLibraryReference{
		path: in.Path,
		ref:  in.Ref,
	}
}

// Name returns the name of the library member.
func (m *Metadata) Name() string {
	return m.name
}

// DisplayName returns the display name of the library member.
func (m *Metadata) DisplayName() string {
	return m.displayName
}

// Description returns the description of the library member.
func (m *Metadata) Description() string {
	return m.description
}

// Dependencies returns the dependencies of the library member.
func (m *Metadata) Dependencies() []LibraryReference {
	return m.dependencies
}

// Path returns the registry path of the library member.
func (m *Metadata) Path() string {
	return m.path
}
