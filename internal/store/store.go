// Package store persists lab snapshots between sessions.
package store

import (
	"context"
	"errors"

	"github.com/f3rmion/plab/internal/lab"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no saved state")

// Store saves and loads lab snapshots. The selection is never persisted.
type Store interface {
	Load(ctx context.Context) (lab.Snapshot, error)
	Save(ctx context.Context, snap lab.Snapshot) error
	Clear(ctx context.Context) error
	Close() error
}

// LoadOrEmpty loads the saved snapshot. A missing or unreadable snapshot
// yields an empty one; unreadable state is logged as a warning.
func LoadOrEmpty(ctx context.Context, s Store, log lab.Logger) lab.Snapshot {
	snap, err := s.Load(ctx)
	switch {
	case err == nil:
		return snap
	case errors.Is(err, ErrNotFound):
		log.Debugf("no saved state, starting fresh")
	default:
		log.Warnf("discarding saved state: %v", err)
	}
	return lab.Snapshot{}
}

// RestoreOrReset restores snap into l, falling back to a fresh lab when the
// snapshot is rejected.
func RestoreOrReset(l *lab.Lab, snap lab.Snapshot, log lab.Logger) {
	if err := l.Restore(snap); err != nil {
		log.Warnf("saved state rejected, starting fresh: %v", err)
		l.Reset()
	}
}

func persisted(snap lab.Snapshot) lab.Snapshot {
	snap.Selection = nil
	return snap
}
