package reciplib

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"github.com/pkgforge/reciplib/assets"
	"github.com/pkgforge/reciplib/internal/processor"
	"golang.org/x/sync/errgroup"
)

const (
	defaultParallelism = 10 // default number of parallel recipe validations
)

// RecipeLib is the registry that gets built from recipe library files.
// Do not create this directly, use NewRecipeLib instead.
type RecipeLib struct {
	Options *RecipeLibOptions

	recipes  map[string]*assets.Recipe
	metadata []*Metadata
	mu       sync.RWMutex // mu protects the recipes map and metadata slice
}

// RecipeLibOptions are options for the RecipeLib.
// This is created by NewRecipeLib.
type RecipeLibOptions struct {
	AllowOverwrite bool // AllowOverwrite allows overwriting of existing recipes when processing additional libraries with RecipeLib.Init()
	Parallelism    int  // Parallelism is the number of parallel recipe validations to run after Init
}

// NewRecipeLib returns a new instance of the reciplib library.
// Pass nil to use the default options.
func NewRecipeLib(opts *RecipeLibOptions) *RecipeLib {
	if opts == nil {
		opts = getDefaultRecipeLibOptions()
	}
	return &RecipeLib{
		Options:  opts,
		recipes:  make(map[string]*assets.Recipe),
		metadata: make([]*Metadata, 0),
		mu:       sync.RWMutex{},
	}
}

func getDefaultRecipeLibOptions() *RecipeLibOptions {
	return &RecipeLibOptions{
		Parallelism:    defaultParallelism,
		AllowOverwrite: false,
	}
}

// Recipes returns a sorted list of the recipe names in the RecipeLib struct.
func (rl *RecipeLib) Recipes() []string {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	result := make([]string, 0, len(rl.recipes))
	for k := range rl.recipes {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// Recipe returns a deep copy of the requested recipe by name.
// The registry's own records are never handed out for mutation.
func (rl *RecipeLib) Recipe(name string) (*assets.Recipe, error) {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	if recipe, ok := rl.recipes[name]; ok {
		return recipe.Copy(), nil
	}
	return nil, fmt.Errorf("recipe %s not found", name)
}

// RecipeExists returns true if the recipe exists in the RecipeLib struct.
func (rl *RecipeLib) RecipeExists(name string) bool {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	_, exists := rl.recipes[name]
	return exists
}

// Metadata returns the metadata of all processed libraries, in processing order.
func (rl *RecipeLib) Metadata() []*Metadata {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	result := make([]*Metadata, len(rl.metadata))
	copy(result, rl.metadata)
	return result
}

// AddRecipes explicitly registers recipes in the RecipeLib struct.
// Existing recipes with the same name are rejected unless AllowOverwrite is set.
func (rl *RecipeLib) AddRecipes(recipes ...*assets.Recipe) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.addRecipes(recipes...)
}

func (rl *RecipeLib) addRecipes(recipes ...*assets.Recipe) error {
	for _, recipe := range recipes {
		if recipe == nil || recipe.Name == "" {
			return errors.New("cannot add recipe without a name")
		}
		if _, exists := rl.recipes[recipe.Name]; exists && !rl.Options.AllowOverwrite {
			return fmt.Errorf("recipe %s already exists in the library", recipe.Name)
		}
		rl.recipes[recipe.Name] = recipe.Copy()
	}
	return nil
}

// Init processes recipe libraries, supplied as fs.FS interfaces.
// These are typically `os.DirFS`, or the result of fetching a library reference.
// It populates the struct with the results of the processing and validates
// every registered recipe.
func (rl *RecipeLib) Init(ctx context.Context, libs ...fs.FS) error {
	if rl.Options == nil || rl.Options.Parallelism == 0 {
		return errors.New("reciplib Options not set or parallelism is 0")
	}

	rl.mu.Lock()
	for _, lib := range libs {
		res := processor.NewResult()
		pc := processor.NewClient(lib)
		if err := pc.Process(res); err != nil {
			rl.mu.Unlock()
			return fmt.Errorf("error processing library %v: %w", lib, err)
		}

		if err := rl.addProcessedResult(res); err != nil {
			rl.mu.Unlock()
			return err
		}
	}
	rl.mu.Unlock()

	return rl.validateRecipes(ctx)
}

// addProcessedResult adds the results of a processed library to the RecipeLib.
func (rl *RecipeLib) addProcessedResult(res *processor.Result) error {
	recipes := make([]*assets.Recipe, 0, len(res.Recipes))
	for _, v := range res.Recipes {
		recipes = append(recipes, v)
	}
	if err := rl.addRecipes(recipes...); err != nil {
		return err
	}
	if res.Metadata != nil {
		rl.metadata = append(rl.metadata, NewMetadata(res.Metadata))
	}
	return nil
}

// validateRecipes checks the declared data of every registered recipe,
// bounded by the Parallelism option.
func (rl *RecipeLib) validateRecipes(ctx context.Context) error {
	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(rl.Options.Parallelism)

	rl.mu.RLock()
	defer rl.mu.RUnlock()
	for _, recipe := range rl.recipes {
		recipe := recipe
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err //nolint:wrapcheck
			}
			return recipe.Validate()
		})
	}

	return grp.Wait() //nolint:wrapcheck
}
