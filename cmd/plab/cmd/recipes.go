package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/config"
	"github.com/f3rmion/plab/internal/particle"
)

var recipesCategory string

var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "List the recipe catalog",
	Long: `List every recipe the lab knows, grouped by category.

Categories:
  secondary  hadrons, isotopes and unstable states
  atom       hydrogen to argon
  molecule   small molecules

Example:
  plab recipes
  plab recipes --category atom`,
	Args: cobra.NoArgs,
	RunE: runRecipes,
}

func init() {
	rootCmd.AddCommand(recipesCmd)
	recipesCmd.Flags().StringVarP(&recipesCategory, "category", "c", "", "only list one category")
}

func runRecipes(cmd *cobra.Command, args []string) error {
	cat, err := config.LoadCatalog(getConfigDir())
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}

	categories := []catalog.Category{catalog.CategorySecondary, catalog.CategoryAtom, catalog.CategoryMolecule}
	if recipesCategory != "" {
		c := catalog.Category(recipesCategory)
		if !c.Valid() {
			return fmt.Errorf("unknown category %q", recipesCategory)
		}
		categories = []catalog.Category{c}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, c := range categories {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s:\n", c)
		for _, r := range cat.ByCategory(c) {
			fmt.Fprintf(w, "  %s\t%s\t= %s\n", particle.Name(r.Type), particle.Symbol(r.Type), r.Ingredients)
		}
	}
	return w.Flush()
}
