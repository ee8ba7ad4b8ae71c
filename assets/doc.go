// Package assets provides the record types stored in a recipe library.
// It contains the package recipes themselves, their ordered version
// collections and their content checksums.
//
// Recipes are plain declarative data. Mutating operations exist only so that
// maintainers and the library processor can build the records, consumers
// should treat them as read-only.
package assets
