// Package reciplib provides a registry of declarative package build recipes.
//
// A recipe records the metadata an external build orchestrator needs to fetch
// and identify one third-party package: a description, a homepage, a download
// URL template with a version placeholder, an optional release archive URL,
// and an ordered table of version labels and content checksums.
//
// Recipes are grouped into libraries: directories of recipe files, optionally
// with a metadata file declaring the library's identity and its dependencies
// on other libraries. Libraries are read from any fs.FS and may be fetched
// from remote locations with go-getter.
//
// The registry is populated by explicit registration (AddRecipes) or by
// processing libraries (Init). It is up to the caller to resolve, download
// and build packages from the registered metadata; FetchPackageSource is
// provided for checksum-verified source downloads.
package reciplib
