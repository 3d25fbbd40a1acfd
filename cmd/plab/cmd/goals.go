package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/particle"
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Show goal progress from the saved lab",
	Args:  cobra.NoArgs,
	RunE:  runGoals,
}

func init() {
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger(nil))
	if err != nil {
		return err
	}
	defer s.Close()

	cursor, total := s.lab.GoalProgress()
	fmt.Printf("Goals: %d/%d complete\n\n", cursor, total)
	for i, g := range s.goals {
		mark := " "
		switch {
		case i < cursor:
			mark = "✓"
		case i == cursor:
			mark = "▶"
		}
		fmt.Printf("  %s %-30s %s\n", mark, g.Name, particle.Name(g.Target))
	}

	snap := s.lab.Snapshot()
	fmt.Printf("\nDiscovered: %d particles, %d atoms, %d molecules\n",
		len(snap.Secondary), len(snap.Atoms), len(snap.Molecules))
	return nil
}
