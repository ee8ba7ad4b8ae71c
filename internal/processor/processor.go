package processor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/pkgforge/reciplib/assets"
	"github.com/pkgforge/reciplib/internal/environment"
)

// RecipeFileType is the file name component that identifies a recipe file.
// Recipe files are named `<name>.recipe.json|yaml|yml` and the package name
// is derived from the file name.
const (
	RecipeFileType = "recipe"
	recipeSuffix   = ".+\\." + RecipeFileType + "\\.(?:json|yaml|yml)$"
)

const recipeLibraryMetadataFile = "recipe_library_metadata.json"

// SupportedFileExtensions are the file extensions processed in a library.
var SupportedFileExtensions = []string{".json", ".yaml", ".yml"}

// RecipeRegex matches recipe file names.
var RecipeRegex = regexp.MustCompile(recipeSuffix)

var (
	// ErrRecipeAlreadyExists is returned when a recipe name is declared twice in a library.
	ErrRecipeAlreadyExists = errors.New("recipe already exists in the result")

	// ErrNameMismatch is returned when a recipe file declares a name that
	// disagrees with its file name.
	ErrNameMismatch = errors.New("recipe name does not match file name")

	// ErrUnmarshaling is returned when unmarshaling fails.
	ErrUnmarshaling = errors.New("error converting data from YAML/JSON, please check the file format and content")

	// ErrProcessingFile is returned when there is an error processing the file.
	ErrProcessingFile = errors.New("error processing file, please check the file format and content")
)

// NewErrRecipeAlreadyExists creates a new error indicating that a recipe already exists in the result.
func NewErrRecipeAlreadyExists(name string) error {
	return fmt.Errorf("%w: recipe with name `%s` already exists", ErrRecipeAlreadyExists, name)
}

// NewErrorUnmarshaling creates a new error indicating that unmarshaling failed.
func NewErrorUnmarshaling(detail string) error {
	return fmt.Errorf("%w: %s", ErrUnmarshaling, detail)
}

// Result is the structure that gets built by scanning the library files.
type Result struct {
	Recipes  map[string]*assets.Recipe
	Metadata *LibMetadata
}

// NewResult creates a new Result with an initialized recipe map.
func NewResult() *Result {
	return &Result{
		Recipes:  make(map[string]*assets.Recipe),
		Metadata: nil,
	}
}

// processFunc is the function signature that is used to process a lib file.
type processFunc func(result *Result, data Unmarshaler, fileName string) error

// Client is the client that is used to process the library files.
type Client struct {
	fs fs.FS
}

// NewClient creates a new Client with the provided filesystem.
func NewClient(fs fs.FS) *Client {
	return &Client{
		fs: fs,
	}
}

// Metadata returns the metadata of the library.
// A missing metadata file is not an error, an empty metadata record is returned.
func (client *Client) Metadata() (*LibMetadata, error) {
	metadataFile, err := client.fs.Open(recipeLibraryMetadataFile)

	var pe *fs.PathError

	if errors.As(err, &pe) {
		return &LibMetadata{
			Name:         "",
			DisplayName:  "",
			Description:  "",
			Path:         "",
			Dependencies: make([]LibMetadataDependency, 0),
		}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("Client.Metadata: error opening metadata file: %w", err)
	}

	defer metadataFile.Close() // nolint: errcheck

	data, err := io.ReadAll(metadataFile)
	if err != nil {
		return nil, fmt.Errorf("Client.Metadata: error reading metadata file: %w", err)
	}

	unmar := NewUnmarshaler(data, ".json")
	metadata := new(LibMetadata)

	if err := unmar.Unmarshal(metadata); err != nil {
		return nil, errors.Join(NewErrorUnmarshaling(recipeLibraryMetadataFile), err)
	}

	for _, dep := range metadata.Dependencies {
		switch {
		case dep.Path != "" && dep.Ref != "" && dep.CustomURL == "":
			continue
		case dep.Path == "" && dep.Ref == "" && dep.CustomURL != "":
			continue
		default:
			return nil, fmt.Errorf(
				"Client.Metadata: invalid dependency, either path & ref should be set, or custom_url: %v",
				dep,
			)
		}
	}

	return metadata, nil
}

// Process reads the library files and processes them into a Result.
// Pass in a pointer to a Result struct to store the processed data,
// create a new *Result with NewResult().
func (client *Client) Process(res *Result) error {
	metad, err := client.Metadata()
	if err != nil {
		return fmt.Errorf("Client.Process: error getting metadata: %w", err)
	}

	res.Metadata = metad

	// Walk the lib FS and process files
	if err := fs.WalkDir(client.fs, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("Client.Process: error walking directory %s: %w", path, err)
		}
		// Skip directories
		if d.IsDir() {
			return nil
		}
		// Skip files within the fetch cache directory. Only an exact leading
		// path segment counts, a recipe path that merely contains the cache
		// dir name as a substring must still be processed.
		cacheDirBase := filepath.Base(environment.RecipLibDir())
		if path == cacheDirBase || strings.HasPrefix(path, cacheDirBase+"/") {
			return nil
		}
		// Skip files that are not json or yaml
		if !slices.Contains(SupportedFileExtensions, strings.ToLower(filepath.Ext(path))) {
			return nil
		}
		file, err := client.fs.Open(path)
		if err != nil {
			return fmt.Errorf("Client.Process: error opening file %s: %w", path, err)
		}
		return classifyLibFile(res, file, d.Name())
	}); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}

// classifyLibFile identifies the supplied file and calls the appropriate processFunc.
func classifyLibFile(res *Result, file fs.File, name string) error {
	err := error(nil)

	switch n := strings.ToLower(name); {
	case RecipeRegex.MatchString(n):
		err = readAndProcessFile(res, file, name, processRecipe)
	}

	if err != nil {
		err = errors.Join(ErrProcessingFile, err)
	}

	return err
}

// processRecipe is a processFunc that reads the recipe bytes, derives the
// package name from the file name, then adds the created assets.Recipe to
// the result.
func processRecipe(res *Result, unmar Unmarshaler, fileName string) error {
	recipe := new(assets.Recipe)
	if err := unmar.Unmarshal(recipe); err != nil {
		return errors.Join(NewErrorUnmarshaling("recipe"), err)
	}

	name := RecipeNameFromFileName(fileName)

	// An in-file name is optional but must agree with the declaration site.
	if recipe.Name != "" && recipe.Name != name {
		return fmt.Errorf("%w: file %s declares name `%s`", ErrNameMismatch, fileName, recipe.Name)
	}

	recipe.Name = name
	if recipe.Versions == nil {
		recipe.Versions = assets.NewVersionCollection()
	}

	if _, exists := res.Recipes[name]; exists {
		return NewErrRecipeAlreadyExists(name)
	}

	res.Recipes[name] = recipe

	return nil
}

// RecipeNameFromFileName derives the package name from a recipe file name,
// e.g. `r-shape.recipe.yaml` yields `r-shape`.
func RecipeNameFromFileName(fileName string) string {
	base := filepath.Base(fileName)
	if i := strings.LastIndex(strings.ToLower(base), "."+RecipeFileType+"."); i > 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// readAndProcessFile reads the file bytes and processes it using the supplied processFunc.
func readAndProcessFile(res *Result, file fs.File, fileName string, processFn processFunc) error {
	s, err := file.Stat()
	if err != nil {
		return err //nolint:wrapcheck
	}

	data := make([]byte, s.Size())

	defer file.Close() // nolint:errcheck

	if _, err := file.Read(data); err != nil {
		return err //nolint:wrapcheck
	}

	ext := filepath.Ext(s.Name())
	unmar := NewUnmarshaler(data, ext)

	if err := processFn(res, unmar, fileName); err != nil {
		return err //nolint:wrapcheck
	}

	return nil
}
