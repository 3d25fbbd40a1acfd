package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/f3rmion/plab/internal/particle"
)

// ErrInvalidCatalog is matched by every error returned from New.
var ErrInvalidCatalog = errors.New("invalid recipe catalog")

// ValidationError collects every problem found in a recipe table.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid recipe catalog: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return "invalid recipe catalog: " + e.Issues[0]
	}
	return "invalid recipe catalog: " + strings.Join(e.Issues, "; ")
}

// Is makes errors.Is(err, ErrInvalidCatalog) hold.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidCatalog
}

func (e *ValidationError) add(format string, args ...any) {
	e.Issues = append(e.Issues, fmt.Sprintf(format, args...))
}

// Catalog is an immutable, validated recipe table.
type Catalog struct {
	recipes      []Recipe
	byOutput     map[particle.Type]int
	byIngredient map[string]int
}

// New validates recipes and builds a catalog. A malformed table is fatal for
// callers: duplicate output types, duplicate ingredient sets, empty or
// non-positive ingredient counts, unknown categories, unknown particle types
// and ingredient cycles are all rejected.
func New(recipes []Recipe) (*Catalog, error) {
	verr := &ValidationError{}
	c := &Catalog{
		recipes:      make([]Recipe, 0, len(recipes)),
		byOutput:     make(map[particle.Type]int, len(recipes)),
		byIngredient: make(map[string]int, len(recipes)),
	}

	for i, r := range recipes {
		if r.Type == "" {
			verr.add("recipe %d has no output type", i)
			continue
		}
		if !r.Category.Valid() {
			verr.add("recipe %s has unknown category %q", r.Type, r.Category)
		}
		if len(r.Ingredients) == 0 {
			verr.add("recipe %s has no ingredients", r.Type)
			continue
		}
		// Instances of an unknown type would not survive a snapshot restore.
		valid := true
		if !particle.Known(r.Type) {
			verr.add("recipe %s uses unknown type %q", r.Type, r.Type)
			valid = false
		}
		for t, n := range r.Ingredients {
			if !particle.Known(t) {
				verr.add("recipe %s uses unknown type %q", r.Type, t)
				valid = false
			}
			if n <= 0 {
				verr.add("recipe %s has non-positive count %d for %s", r.Type, n, t)
				valid = false
			}
		}
		if !valid {
			continue
		}
		if prev, dup := c.byOutput[r.Type]; dup {
			verr.add("duplicate recipe for %s (entries %d and %d)", r.Type, prev, i)
			continue
		}
		key := r.Ingredients.key()
		if prev, dup := c.byIngredient[key]; dup {
			verr.add("recipes %s and %s share ingredients %s", c.recipes[prev].Type, r.Type, r.Ingredients)
			continue
		}

		ingredients := make(Multiset, len(r.Ingredients))
		for t, n := range r.Ingredients {
			ingredients[t] = n
		}
		c.byOutput[r.Type] = len(c.recipes)
		c.byIngredient[key] = len(c.recipes)
		c.recipes = append(c.recipes, Recipe{Type: r.Type, Category: r.Category, Ingredients: ingredients})
	}

	for _, cycle := range c.cycles() {
		verr.add("cyclic ingredient reference: %s", cycle)
	}

	if len(verr.Issues) > 0 {
		return nil, verr
	}
	return c, nil
}

// cycles runs a colouring DFS over the ingredient graph and reports each back edge.
func (c *Catalog) cycles() []string {
	const (
		white = iota
		grey
		black
	)
	colour := make(map[particle.Type]int, len(c.recipes))
	var found []string
	var path []particle.Type

	var visit func(t particle.Type)
	visit = func(t particle.Type) {
		colour[t] = grey
		path = append(path, t)
		r, ok := c.FindByOutputType(t)
		if ok {
			for _, in := range r.Ingredients.Types() {
				switch colour[in] {
				case grey:
					found = append(found, formatCycle(path, in))
				case white:
					visit(in)
				}
			}
		}
		path = path[:len(path)-1]
		colour[t] = black
	}

	for _, r := range c.recipes {
		if colour[r.Type] == white {
			visit(r.Type)
		}
	}
	return found
}

func formatCycle(path []particle.Type, back particle.Type) string {
	start := 0
	for i, t := range path {
		if t == back {
			start = i
			break
		}
	}
	parts := make([]string, 0, len(path)-start+1)
	for _, t := range path[start:] {
		parts = append(parts, string(t))
	}
	parts = append(parts, string(back))
	return strings.Join(parts, " -> ")
}

// FindByIngredients returns the recipe whose ingredient multiset equals m exactly.
func (c *Catalog) FindByIngredients(m Multiset) (Recipe, bool) {
	clean := make(Multiset, len(m))
	for t, n := range m {
		if n > 0 {
			clean[t] = n
		}
	}
	idx, ok := c.byIngredient[clean.key()]
	if !ok {
		return Recipe{}, false
	}
	r := c.recipes[idx]
	if !r.Ingredients.Equal(clean) {
		return Recipe{}, false
	}
	return r, true
}

// FindByOutputType returns the recipe producing t.
func (c *Catalog) FindByOutputType(t particle.Type) (Recipe, bool) {
	idx, ok := c.byOutput[t]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[idx], true
}

// IsComposite reports whether t is the output of some recipe.
func (c *Catalog) IsComposite(t particle.Type) bool {
	_, ok := c.byOutput[t]
	return ok
}

// Recipes returns the recipes in table order. The returned slice is a copy;
// the ingredient maps must not be modified.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

// ByCategory returns the recipes of one category, sorted by output type.
func (c *Catalog) ByCategory(cat Category) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Category == cat {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}
