package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/plab/internal/tui"
	"github.com/f3rmion/plab/internal/tui/bigchar"
)

var playFont string

var playCmd = &cobra.Command{
	Use:     "play",
	Aliases: []string{"p", "ui"},
	Short:   "Launch the interactive canvas",
	Long: `Launch the particle lab canvas.

The lab is restored from the state file and saved again after every
change and on exit. Decay deadlines are not saved: unstable particles
restart their full delay when the lab is loaded.

Controls:
  enter   Add the palette particle at the cursor
  A       Assemble the selection
  ?       Help`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.PersistentFlags().StringVar(&playFont, "font", "", "TrueType/OpenType font for symbol art")
}

func runPlay(cmd *cobra.Command, args []string) error {
	configDir := getConfigDir()
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// The canvas owns the terminal, so log lines go to a file or nowhere.
	if viper.GetBool("verbose") {
		f, err := tea.LogToFile(filepath.Join(configDir, "plab.log"), "plab")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	logger := newLogger(log.Default())

	if playFont != "" {
		if err := bigchar.LoadFont(playFont); err != nil {
			logger.Warnf("using built-in font: %v", err)
		}
	}

	ctx := cmd.Context()
	s, err := openSession(ctx, logger)
	if err != nil {
		return err
	}
	defer s.Close()

	app := tui.NewApp(tui.Options{
		Lab:       s.lab,
		Events:    s.events,
		Store:     s.store,
		Settings:  s.settings,
		ConfigDir: configDir,
		Goals:     s.goals,
		Logger:    logger,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return s.save(ctx)
}
