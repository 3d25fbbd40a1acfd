package catalog

import (
	"errors"
	"strings"
	"testing"

	p "github.com/f3rmion/plab/internal/particle"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if c.Len() != len(DefaultRecipes()) {
		t.Errorf("Expected %d recipes, got %d", len(DefaultRecipes()), c.Len())
	}
	for _, r := range c.Recipes() {
		if !p.Known(r.Type) {
			t.Errorf("recipe output %s is not a known particle type", r.Type)
		}
		for in := range r.Ingredients {
			if !p.Known(in) {
				t.Errorf("recipe %s uses unknown ingredient %s", r.Type, in)
			}
		}
	}
}

func TestFindByIngredientsExact(t *testing.T) {
	c := MustDefault()

	tests := []struct {
		name  string
		in    Multiset
		want  p.Type
		found bool
	}{
		{"proton", MultisetOf(p.UpQuark, p.UpQuark, p.DownQuark), p.Proton, true},
		{"neutron", MultisetOf(p.UpQuark, p.DownQuark, p.DownQuark), p.Neutron, true},
		{"proton plus extra electron", MultisetOf(p.UpQuark, p.UpQuark, p.DownQuark, p.Electron), "", false},
		{"proton missing quark", MultisetOf(p.UpQuark, p.DownQuark), "", false},
		{"water", MultisetOf(p.Hydrogen, p.Oxygen, p.Hydrogen), p.Water, true},
		{"hydrogen", MultisetOf(p.Proton, p.Electron), p.Hydrogen, true},
		{"empty", Multiset{}, "", false},
		{"zero counts ignored", Multiset{p.UpQuark: 2, p.DownQuark: 1, p.Electron: 0}, p.Proton, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := c.FindByIngredients(tt.in)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if ok && r.Type != tt.want {
				t.Errorf("got %s, want %s", r.Type, tt.want)
			}
		})
	}
}

func TestExactMatchAgainstEveryRecipe(t *testing.T) {
	c := MustDefault()
	for _, r := range c.Recipes() {
		got, ok := c.FindByIngredients(r.Ingredients)
		if !ok || got.Type != r.Type {
			t.Errorf("exact ingredients of %s matched %v (%s)", r.Type, ok, got.Type)
		}

		superset := Multiset{p.Gluon: 1}
		for k, v := range r.Ingredients {
			superset[k] = v
		}
		if got, ok := c.FindByIngredients(superset); ok {
			t.Errorf("superset of %s matched %s", r.Type, got.Type)
		}

		for drop := range r.Ingredients {
			subset := Multiset{}
			for k, v := range r.Ingredients {
				subset[k] = v
			}
			subset[drop]--
			if got, ok := c.FindByIngredients(subset); ok && got.Type == r.Type {
				t.Errorf("subset of %s without one %s still matched", r.Type, drop)
			}
		}
	}
}

func TestFindByOutputType(t *testing.T) {
	c := MustDefault()
	r, ok := c.FindByOutputType(p.Deuterium)
	if !ok {
		t.Fatal("expected deuterium recipe")
	}
	if r.Category != CategorySecondary {
		t.Errorf("deuterium category = %s", r.Category)
	}
	if _, ok := c.FindByOutputType(p.UpQuark); ok {
		t.Error("elementary type should have no recipe")
	}
	if !c.IsComposite(p.Water) || c.IsComposite(p.Electron) {
		t.Error("IsComposite mismatch")
	}
}

func TestNewRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name    string
		recipes []Recipe
		issue   string
	}{
		{
			name: "duplicate output",
			recipes: []Recipe{
				secondary(p.Proton, Multiset{p.UpQuark: 2, p.DownQuark: 1}),
				secondary(p.Proton, Multiset{p.UpQuark: 3}),
			},
			issue: "duplicate recipe for PROTON",
		},
		{
			name:    "zero count",
			recipes: []Recipe{secondary(p.Proton, Multiset{p.UpQuark: 0})},
			issue:   "non-positive count",
		},
		{
			name:    "negative count",
			recipes: []Recipe{secondary(p.Proton, Multiset{p.UpQuark: -2})},
			issue:   "non-positive count",
		},
		{
			name:    "no ingredients",
			recipes: []Recipe{secondary(p.Proton, nil)},
			issue:   "no ingredients",
		},
		{
			name:    "unknown output type",
			recipes: []Recipe{{Type: "OZONE", Category: CategoryMolecule, Ingredients: Multiset{p.Oxygen: 3}}},
			issue:   `uses unknown type "OZONE"`,
		},
		{
			name:    "misspelled ingredient",
			recipes: []Recipe{secondary(p.Proton, Multiset{p.UpQuark: 2, "DOWN_QAURK": 1})},
			issue:   `uses unknown type "DOWN_QAURK"`,
		},
		{
			name:    "bad category",
			recipes: []Recipe{{Type: p.Proton, Category: "exotic", Ingredients: Multiset{p.UpQuark: 1}}},
			issue:   "unknown category",
		},
		{
			name: "shared ingredients",
			recipes: []Recipe{
				secondary(p.Proton, Multiset{p.UpQuark: 2, p.DownQuark: 1}),
				secondary(p.Neutron, Multiset{p.DownQuark: 1, p.UpQuark: 2}),
			},
			issue: "share ingredients",
		},
		{
			name: "cycle",
			recipes: []Recipe{
				secondary(p.Proton, Multiset{p.Neutron: 1, p.Electron: 1}),
				secondary(p.Neutron, Multiset{p.Proton: 1, p.Photon: 1}),
			},
			issue: "cyclic ingredient reference",
		},
		{
			name:    "self reference",
			recipes: []Recipe{secondary(p.Proton, Multiset{p.Proton: 1, p.Gluon: 1})},
			issue:   "PROTON -> PROTON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.recipes)
			if err == nil {
				t.Fatalf("expected error, got catalog with %d recipes", c.Len())
			}
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("error %v does not match ErrInvalidCatalog", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.issue) {
				t.Errorf("error %q does not mention %q", err, tt.issue)
			}
		})
	}
}

func TestNewCopiesIngredients(t *testing.T) {
	in := Multiset{p.UpQuark: 2, p.DownQuark: 1}
	c, err := New([]Recipe{secondary(p.Proton, in)})
	if err != nil {
		t.Fatal(err)
	}
	in[p.UpQuark] = 5
	if _, ok := c.FindByIngredients(MultisetOf(p.UpQuark, p.UpQuark, p.DownQuark)); !ok {
		t.Error("catalog changed after caller mutated its input")
	}
}

func TestMultisetHelpers(t *testing.T) {
	m := MultisetOf(p.Hydrogen, p.Oxygen, p.Hydrogen)
	if m.Size() != 3 {
		t.Errorf("Size() = %d", m.Size())
	}
	got := m.Expand()
	want := []p.Type{p.Hydrogen, p.Hydrogen, p.Oxygen}
	if len(got) != len(want) {
		t.Fatalf("Expand() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expand()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if s := m.String(); s != "2 Hydrogen, 1 Oxygen" {
		t.Errorf("String() = %q", s)
	}
}

func TestByCategory(t *testing.T) {
	c := MustDefault()
	atoms := c.ByCategory(CategoryAtom)
	if len(atoms) != 18 {
		t.Errorf("Expected 18 atom recipes, got %d", len(atoms))
	}
	for i := 1; i < len(atoms); i++ {
		if atoms[i-1].Type > atoms[i].Type {
			t.Errorf("atoms not sorted: %s before %s", atoms[i-1].Type, atoms[i].Type)
		}
	}
}
