// Package cmd contains all CLI commands for the plab tool.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/plab/internal/config"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plab",
	Short: "Particle Lab - build matter from quarks up",
	Long: `plab is a particle combination sandbox for the terminal.

Place elementary particles on the canvas, select them and assemble them
into hadrons, then atoms, then molecules:

  quarks   → protons, neutrons, pions, ...
  protons, neutrons, electrons → atoms (H to Ar)
  atoms    → molecules (water, methane, ...)

Composites can be disassembled one level or reverted to elementary
particles. Excited electrons and decaying neutrons fall apart on their own.

Running 'plab' without arguments launches the interactive canvas.`,
	RunE:         runPlay,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/plab)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output (logs to plab.log while the canvas runs)")
	rootCmd.PersistentFlags().String("state", "", "state database (default is <config>/state.db)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("state_path", rootCmd.PersistentFlags().Lookup("state"))
}

// initConfig reads in the settings file and ENV variables if set.
func initConfig() {
	configDir := cfgFile
	if configDir == "" {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		configDir = dir
	}
	viper.Set("config_dir", configDir)

	defaults := config.DefaultSettings(configDir)
	viper.SetDefault("tick_interval", defaults.TickInterval)
	viper.SetDefault("state_path", defaults.StatePath)
	viper.SetDefault("canvas_scale", defaults.CanvasScale)
	viper.SetDefault("autosave", defaults.Autosave)

	viper.SetConfigFile(filepath.Join(configDir, config.SettingsFile))
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("PLAB")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read %s: %v\n", config.SettingsFile, err)
	}
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadSettings resolves settings from flags, PLAB_* variables, the
// settings file and the defaults, in that order.
func loadSettings() config.Settings {
	return config.Settings{
		TickInterval: viper.GetDuration("tick_interval"),
		StatePath:    viper.GetString("state_path"),
		CanvasScale:  viper.GetFloat64("canvas_scale"),
		Autosave:     viper.GetBool("autosave"),
	}
}
