package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved lab state",
	Long: `Remove every saved particle, discovery and goal from the state file.
Configuration files are left alone.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	path := loadSettings().StatePath
	st, err := store.OpenSQLite(path)
	if err != nil {
		return fmt.Errorf("opening state: %w", err)
	}
	defer st.Close()

	if err := st.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clearing state: %w", err)
	}
	fmt.Printf("Cleared %s\n", path)
	return nil
}
