package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/f3rmion/plab/internal/config"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/store"
)

// session is a lab restored from the configured state file.
type session struct {
	lab      *lab.Lab
	events   *lab.EventLog
	store    *store.SQLite
	goals    []goal.Goal
	settings config.Settings
	log      lab.Logger
}

// newLogger writes to stderr, or to whatever the standard logger points at
// when out is nil.
func newLogger(out *log.Logger) lab.Logger {
	if out == nil {
		out = log.New(os.Stderr, "plab: ", 0)
	}
	return lab.NewStdLogger(out, viper.GetBool("verbose"))
}

// openSession loads the catalog, goals and saved state.
func openSession(ctx context.Context, logger lab.Logger) (*session, error) {
	configDir := getConfigDir()
	settings := loadSettings()

	cat, err := config.LoadCatalog(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading recipes: %w", err)
	}
	goals, err := config.LoadGoalList(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading goals: %w", err)
	}

	st, err := store.OpenSQLite(settings.StatePath)
	if err != nil {
		return nil, fmt.Errorf("opening state: %w", err)
	}

	events := lab.NewEventLog(0)
	l := lab.New(cat, goal.NewTracker(goals),
		lab.WithLogger(logger),
		lab.WithNotifier(events),
	)
	store.RestoreOrReset(l, store.LoadOrEmpty(ctx, st, logger), logger)
	events.Drain()

	logger.Debugf("loaded %d recipes, %d goals, state from %s", cat.Len(), len(goals), st.Path())
	return &session{
		lab:      l,
		events:   events,
		store:    st,
		goals:    goals,
		settings: settings,
		log:      logger,
	}, nil
}

// save writes the current lab state.
func (s *session) save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.lab.Snapshot()); err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

func (s *session) Close() error {
	return s.store.Close()
}
