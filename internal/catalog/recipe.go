// Package catalog holds the fixed table of composition rules.
package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/f3rmion/plab/internal/particle"
)

// Category selects which discovery registry a recipe's output is recorded in.
type Category string

const (
	CategorySecondary Category = "secondary" // Hadrons, isotopes, excited states
	CategoryAtom      Category = "atom"
	CategoryMolecule  Category = "molecule"
)

// Valid reports whether c is one of the three registry categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySecondary, CategoryAtom, CategoryMolecule:
		return true
	}
	return false
}

// Multiset counts particle types.
type Multiset map[particle.Type]int

// MultisetOf builds a multiset from a list of types.
func MultisetOf(types ...particle.Type) Multiset {
	m := make(Multiset, len(types))
	for _, t := range types {
		m[t]++
	}
	return m
}

// Equal reports whether both multisets hold the same types with the same counts.
// Zero counts are ignored.
func (m Multiset) Equal(other Multiset) bool {
	if m.Size() != other.Size() {
		return false
	}
	for t, n := range m {
		if n != 0 && other[t] != n {
			return false
		}
	}
	return true
}

// Size returns the total number of particles in the multiset.
func (m Multiset) Size() int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}

// Types returns the distinct types in sorted order.
func (m Multiset) Types() []particle.Type {
	out := make([]particle.Type, 0, len(m))
	for t, n := range m {
		if n > 0 {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Expand flattens the multiset into a list, repeating each type by its count.
func (m Multiset) Expand() []particle.Type {
	out := make([]particle.Type, 0, m.Size())
	for _, t := range m.Types() {
		for i := 0; i < m[t]; i++ {
			out = append(out, t)
		}
	}
	return out
}

// key is a canonical string form used to index recipes by ingredients.
func (m Multiset) key() string {
	parts := make([]string, 0, len(m))
	for _, t := range m.Types() {
		parts = append(parts, fmt.Sprintf("%s*%d", t, m[t]))
	}
	return strings.Join(parts, ",")
}

// String renders the multiset as "1 Down Quark, 2 Up Quark".
func (m Multiset) String() string {
	parts := make([]string, 0, len(m))
	for _, t := range m.Types() {
		parts = append(parts, fmt.Sprintf("%d %s", m[t], particle.Name(t)))
	}
	return strings.Join(parts, ", ")
}

// Recipe maps an exact ingredient multiset to one output type.
type Recipe struct {
	Type        particle.Type `yaml:"type" json:"type"`
	Category    Category      `yaml:"category" json:"category"`
	Ingredients Multiset      `yaml:"ingredients" json:"ingredients"`
}
