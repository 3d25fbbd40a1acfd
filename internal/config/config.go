// Package config handles loading and saving user configuration for plab.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/goal"
)

// File names inside the config directory.
const (
	SettingsFile = "settings.yaml"
	RecipesFile  = "recipes.yaml"
	GoalsFile    = "goals.yaml"
	StateFile    = "state.db"
)

// Settings holds host settings. The CLI reads them through viper so each
// can be overridden by a PLAB_* environment variable.
type Settings struct {
	TickInterval time.Duration `yaml:"tick_interval"` // how often pending decays are checked
	StatePath    string        `yaml:"state_path"`
	CanvasScale  float64       `yaml:"canvas_scale"` // canvas units per terminal column
	Autosave     bool          `yaml:"autosave"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings(dir string) Settings {
	return Settings{
		TickInterval: 100 * time.Millisecond,
		StatePath:    filepath.Join(dir, StateFile),
		CanvasScale:  8,
		Autosave:     true,
	}
}

// LoadRecipes loads a recipe table from a YAML file.
func LoadRecipes(path string) ([]catalog.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipes file: %w", err)
	}

	var recipes struct {
		Recipes []catalog.Recipe `yaml:"recipes"`
	}
	if err := yaml.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("parsing recipes file: %w", err)
	}

	return recipes.Recipes, nil
}

// LoadGoals loads a goal list from a YAML file.
func LoadGoals(path string) ([]goal.Goal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goals file: %w", err)
	}

	var goals struct {
		Goals []goal.Goal `yaml:"goals"`
	}
	if err := yaml.Unmarshal(data, &goals); err != nil {
		return nil, fmt.Errorf("parsing goals file: %w", err)
	}

	return goals.Goals, nil
}

// LoadCatalog builds the catalog from recipes.yaml in dir, or the built-in
// table when that file does not exist. An invalid table is an error.
func LoadCatalog(dir string) (*catalog.Catalog, error) {
	path := filepath.Join(dir, RecipesFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return catalog.Default()
	}
	recipes, err := LoadRecipes(path)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.New(recipes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// LoadGoalList returns the goals from goals.yaml in dir, or the built-in
// list when that file does not exist.
func LoadGoalList(dir string) ([]goal.Goal, error) {
	path := filepath.Join(dir, GoalsFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return goal.Defaults(), nil
	}
	goals, err := LoadGoals(path)
	if err != nil {
		return nil, err
	}
	if err := goal.Validate(goals); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return goals, nil
}

// SaveRecipes saves a recipe table to a YAML file.
func SaveRecipes(path string, recipes []catalog.Recipe) error {
	data := struct {
		Recipes []catalog.Recipe `yaml:"recipes"`
	}{Recipes: recipes}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling recipes: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing recipes file: %w", err)
	}

	return nil
}

// SaveGoals saves a goal list to a YAML file.
func SaveGoals(path string, goals []goal.Goal) error {
	data := struct {
		Goals []goal.Goal `yaml:"goals"`
	}{Goals: goals}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return fmt.Errorf("marshaling goals: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing goals file: %w", err)
	}

	return nil
}

// SaveSettings saves settings to a YAML file.
func SaveSettings(path string, s Settings) error {
	out, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// WriteDefaults writes the built-in settings, recipes and goals into dir.
// Existing files are kept unless overwrite is set. It returns the paths
// that were written.
func WriteDefaults(dir string, overwrite bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	var written []string
	files := []struct {
		name string
		save func(string) error
	}{
		{SettingsFile, func(p string) error { return SaveSettings(p, DefaultSettings(dir)) }},
		{RecipesFile, func(p string) error { return SaveRecipes(p, catalog.DefaultRecipes()) }},
		{GoalsFile, func(p string) error { return SaveGoals(p, goal.Defaults()) }},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if _, err := os.Stat(path); err == nil && !overwrite {
			continue
		}
		if err := f.save(path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "plab"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
