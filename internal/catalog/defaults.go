package catalog

import (
	"fmt"

	p "github.com/f3rmion/plab/internal/particle"
)

// DefaultRecipes returns the built-in recipe table.
func DefaultRecipes() []Recipe {
	recipes := []Recipe{
		secondary(p.Proton, Multiset{p.UpQuark: 2, p.DownQuark: 1}),
		secondary(p.Neutron, Multiset{p.UpQuark: 1, p.DownQuark: 2}),
		secondary(p.PionPlus, Multiset{p.UpQuark: 1, p.AntiDownQuark: 1}),
		secondary(p.PionMinus, Multiset{p.DownQuark: 1, p.AntiUpQuark: 1}),
		secondary(p.LambdaBaryon, Multiset{p.UpQuark: 1, p.DownQuark: 1, p.StrangeQuark: 1}),
		secondary(p.JPsiMeson, Multiset{p.CharmQuark: 1, p.AntiCharmQuark: 1}),
		secondary(p.ExcitedElectron, Multiset{p.Electron: 1, p.Photon: 1}),
		secondary(p.DecayingNeutron, Multiset{p.Neutron: 1, p.WBoson: 1}),
		secondary(p.Deuterium, Multiset{p.Proton: 1, p.Neutron: 1, p.Electron: 1}),
		secondary(p.Tritium, Multiset{p.Proton: 1, p.Neutron: 2, p.Electron: 1}),
	}

	// protons, neutrons, electrons
	atoms := []struct {
		t       p.Type
		z, n, e int
	}{
		{p.Hydrogen, 1, 0, 1},
		{p.Helium, 2, 2, 2},
		{p.Lithium, 3, 4, 3},
		{p.Beryllium, 4, 5, 4},
		{p.Boron, 5, 6, 5},
		{p.Carbon, 6, 6, 6},
		{p.Nitrogen, 7, 7, 7},
		{p.Oxygen, 8, 8, 8},
		{p.Fluorine, 9, 10, 9},
		{p.Neon, 10, 10, 10},
		{p.Sodium, 11, 12, 11},
		{p.Magnesium, 12, 12, 12},
		{p.Aluminium, 13, 14, 13},
		{p.Silicon, 14, 14, 14},
		{p.Phosphorus, 15, 16, 15},
		{p.Sulfur, 16, 16, 16},
		{p.Chlorine, 17, 18, 17},
		{p.Argon, 18, 22, 18},
	}
	for _, a := range atoms {
		in := Multiset{p.Proton: a.z, p.Electron: a.e}
		if a.n > 0 {
			in[p.Neutron] = a.n
		}
		recipes = append(recipes, Recipe{Type: a.t, Category: CategoryAtom, Ingredients: in})
	}

	recipes = append(recipes,
		molecule(p.Water, Multiset{p.Hydrogen: 2, p.Oxygen: 1}),
		molecule(p.Methane, Multiset{p.Carbon: 1, p.Hydrogen: 4}),
		molecule(p.Ammonia, Multiset{p.Nitrogen: 1, p.Hydrogen: 3}),
		molecule(p.CarbonDioxide, Multiset{p.Carbon: 1, p.Oxygen: 2}),
		molecule(p.CarbonMonoxide, Multiset{p.Carbon: 1, p.Oxygen: 1}),
		molecule(p.SodiumChloride, Multiset{p.Sodium: 1, p.Chlorine: 1}),
		molecule(p.HydrochloricAcid, Multiset{p.Hydrogen: 1, p.Chlorine: 1}),
		molecule(p.HydrogenSulfide, Multiset{p.Hydrogen: 2, p.Sulfur: 1}),
		molecule(p.HydrogenPeroxide, Multiset{p.Hydrogen: 2, p.Oxygen: 2}),
	)
	return recipes
}

func secondary(t p.Type, in Multiset) Recipe {
	return Recipe{Type: t, Category: CategorySecondary, Ingredients: in}
}

func molecule(t p.Type, in Multiset) Recipe {
	return Recipe{Type: t, Category: CategoryMolecule, Ingredients: in}
}

// Default builds a catalog from DefaultRecipes.
func Default() (*Catalog, error) {
	return New(DefaultRecipes())
}

// MustDefault is Default for package initialisation and tests.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("built-in recipe table: %v", err))
	}
	return c
}
