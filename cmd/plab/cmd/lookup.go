package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/config"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/infocard"
	"github.com/f3rmion/plab/internal/particle"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <particle>",
	Short: "Show a particle's info card and composition",
	Long: `Look up a particle by name, tag or symbol and display its:
  - Physical properties
  - Recipe and the recipes it is used in
  - One-level and full decomposition

Example:
  plab lookup proton
  plab lookup H2O
  plab lookup "up quark"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	t, ok := particle.Parse(query)
	if !ok {
		return fmt.Errorf("unknown particle %q", query)
	}

	cat, err := config.LoadCatalog(getConfigDir())
	if err != nil {
		return fmt.Errorf("loading recipes: %w", err)
	}
	res := decomp.NewResolver(cat)

	card, err := infocard.New(res).Render(t, nil)
	if err != nil {
		return fmt.Errorf("rendering card: %w", err)
	}
	fmt.Println(card)

	if parts, ok := res.DecomposeOneLevel(t, nil); ok {
		fmt.Println()
		fmt.Printf("Disassembles into: %s\n", decomp.Summary(decomp.Types(parts)))
	}
	return nil
}
