// Package environment contains the types and methods for fetching configuration from the local environment.
package environment

import "os"

const (
	fetchDefaultBaseDir     = ".reciplib"                           // fetchDefaultBaseDir is the default base directory for fetching libraries.
	fetchDefaultBaseDirEnv  = "RECIPLIB_DIR"                        // fetchDefaultBaseDirEnv is the environment variable to override the default base directory.
	recipeRegistryGitUrl    = "github.com/pkgforge/recipe-registry" // recipeRegistryGitUrl is the URL of the default recipe registry.
	recipeRegistryGitUrlEnv = "RECIPLIB_REGISTRY_GIT_URL"           // recipeRegistryGitUrlEnv is the environment variable to override the default git URL.
)

// RecipLibDir contents of the `RECIPLIB_DIR` environment variable, or the default which is `.reciplib`.
func RecipLibDir() string {
	dir := fetchDefaultBaseDir
	if d := os.Getenv(fetchDefaultBaseDirEnv); d != "" {
		dir = d
	}
	return dir
}

// RecipeRegistryGitUrl contents of the `RECIPLIB_REGISTRY_GIT_URL` environment variable, or the default which is `github.com/pkgforge/recipe-registry`.
func RecipeRegistryGitUrl() string {
	url := recipeRegistryGitUrl
	if u := os.Getenv(recipeRegistryGitUrlEnv); u != "" {
		url = u
	}
	return url
}
