// Package decomp resolves particle compositions against the recipe catalog:
// matching a selection to a recipe and breaking composites back down.
package decomp

import (
	"fmt"
	"math"
	"strings"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/particle"
)

// MaxDepth bounds recursive expansion. The catalog rejects cycles, so this
// only trips on a corrupted table.
const MaxDepth = 64

// Placement radii for decomposition products.
const (
	DisassembleRadius = 40.0
	RevertRadius      = 60.0
)

// Component is one ingredient recorded on an assembled instance.
type Component struct {
	Type        particle.Type `yaml:"type" json:"type"`
	Composition []Component   `yaml:"composition,omitempty" json:"composition,omitempty"`
}

// Types returns the types of the components in order.
func Types(components []Component) []particle.Type {
	out := make([]particle.Type, len(components))
	for i, c := range components {
		out[i] = c.Type
	}
	return out
}

// Clone deep-copies a composition tree.
func Clone(components []Component) []Component {
	if components == nil {
		return nil
	}
	out := make([]Component, len(components))
	for i, c := range components {
		out[i] = Component{Type: c.Type, Composition: Clone(c.Composition)}
	}
	return out
}

// Resolver answers composition questions against a catalog.
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver creates a resolver over cat.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Catalog returns the catalog the resolver reads.
func (r *Resolver) Catalog() *catalog.Catalog {
	return r.catalog
}

// MatchAssembly reports the recipe whose ingredients are exactly the given
// types. Identity, position and scale of the instances play no part.
func (r *Resolver) MatchAssembly(types []particle.Type) (catalog.Recipe, bool) {
	if len(types) == 0 {
		return catalog.Recipe{}, false
	}
	return r.catalog.FindByIngredients(catalog.MultisetOf(types...))
}

// DecomposeOneLevel returns the direct ingredients of an instance of type t.
// A stored composition wins over the catalog, even if the catalog has since
// changed. Elementary types report false.
func (r *Resolver) DecomposeOneLevel(t particle.Type, stored []Component) ([]Component, bool) {
	if len(stored) > 0 {
		return Clone(stored), true
	}
	recipe, ok := r.catalog.FindByOutputType(t)
	if !ok {
		return nil, false
	}
	flat := recipe.Ingredients.Expand()
	out := make([]Component, len(flat))
	for i, in := range flat {
		out[i] = Component{Type: in}
	}
	return out, true
}

// DecomposeFully expands t through the catalog until only elementary types
// remain. An elementary type yields itself.
func (r *Resolver) DecomposeFully(t particle.Type) []particle.Type {
	var out []particle.Type
	r.expand(t, 0, &out)
	return out
}

func (r *Resolver) expand(t particle.Type, depth int, out *[]particle.Type) {
	recipe, ok := r.catalog.FindByOutputType(t)
	if !ok || depth >= MaxDepth {
		*out = append(*out, t)
		return
	}
	for _, in := range recipe.Ingredients.Expand() {
		r.expand(in, depth+1, out)
	}
}

// DecomposeComponentsFully expands an instance of type t to elementary types,
// following the stored composition tree wherever one was recorded and the
// catalog everywhere else.
func (r *Resolver) DecomposeComponentsFully(t particle.Type, stored []Component) []particle.Type {
	var out []particle.Type
	r.expandStored(t, stored, 0, &out)
	return out
}

func (r *Resolver) expandStored(t particle.Type, stored []Component, depth int, out *[]particle.Type) {
	if len(stored) == 0 || depth >= MaxDepth {
		*out = append(*out, r.DecomposeFully(t)...)
		return
	}
	for _, c := range stored {
		r.expandStored(c.Type, c.Composition, depth+1, out)
	}
}

// Point is a canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Radial spreads n points uniformly on a circle of radius radius around (x, y),
// starting at angle zero.
func Radial(n int, x, y, radius float64) []Point {
	if n <= 0 {
		return nil
	}
	out := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	for i := range out {
		angle := step * float64(i)
		out[i] = Point{X: x + radius*math.Cos(angle), Y: y + radius*math.Sin(angle)}
	}
	return out
}

// Tree renders a composition as an indented outline.
func Tree(t particle.Type, components []Component) string {
	var b strings.Builder
	writeTree(&b, t, components, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeTree(b *strings.Builder, t particle.Type, components []Component, depth int) {
	fmt.Fprintf(b, "%s%s\n", strings.Repeat("  ", depth), particle.Name(t))
	for _, c := range components {
		writeTree(b, c.Type, c.Composition, depth+1)
	}
}

// Summary renders an elementary type list as "1 Down Quark, 2 Up Quark".
func Summary(types []particle.Type) string {
	return catalog.MultisetOf(types...).String()
}
