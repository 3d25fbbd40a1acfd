package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/plab/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize plab configuration",
	Long: `Write the built-in configuration into your config directory:
  - settings.yaml  (tick interval, state file, canvas scale, autosave)
  - recipes.yaml   (the recipe catalog)
  - goals.yaml     (the goal list)

Edit recipes.yaml and goals.yaml to change what the lab can build.
Existing files are kept unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()

	fmt.Printf("Initializing plab configuration in %s\n\n", configDir)

	written, err := config.WriteDefaults(configDir, force)
	if err != nil {
		return err
	}
	if len(written) == 0 {
		fmt.Println("  Nothing to do, all files exist. Use --force to overwrite.")
		return nil
	}
	for _, path := range written {
		fmt.Printf("  Created %s\n", path)
	}

	fmt.Println()
	fmt.Println("Configuration initialized!")
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit recipes.yaml and goals.yaml to customise the lab")
	fmt.Printf("  2. Run 'plab recipes' to check the catalog loads\n")
	fmt.Printf("  3. Run 'plab' to start building\n")
	return nil
}
