package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/clipboard"
)

var exportCopy bool

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the saved lab as JSON",
	Long: `Print the saved lab snapshot (instances, discoveries and goal
progress) as JSON.

Example:
  plab export > lab.json
  plab export --copy`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportCopy, "copy", false, "copy to the clipboard instead of printing")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context(), newLogger(nil))
	if err != nil {
		return err
	}
	defer s.Close()

	data, err := s.lab.Snapshot().Encode()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if exportCopy {
		if err := clipboard.Write(string(data)); err != nil {
			return fmt.Errorf("copying to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, "Copied snapshot to clipboard")
		return nil
	}
	fmt.Println(string(data))
	return nil
}
