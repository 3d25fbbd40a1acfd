package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/f3rmion/plab/internal/lab"

	_ "modernc.org/sqlite"
)

// Snapshot keys, one row each in the state table.
const (
	bucketInstances  = "instances"
	bucketSecondary  = "secondary"
	bucketAtoms      = "atoms"
	bucketMolecules  = "molecules"
	bucketGoalCursor = "goal_cursor"
)

var buckets = []string{bucketInstances, bucketSecondary, bucketAtoms, bucketMolecules, bucketGoalCursor}

// SQLite stores each snapshot key as a JSON blob in a single table.
type SQLite struct {
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("sqlite store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLite{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLite) Path() string { return s.path }

// Load reads every bucket back into a snapshot. Missing buckets are left
// empty; a database with no rows reports ErrNotFound.
func (s *SQLite) Load(ctx context.Context) (lab.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return lab.Snapshot{}, fmt.Errorf("select state: %w", err)
	}
	defer rows.Close()

	var snap lab.Snapshot
	found := 0
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return lab.Snapshot{}, fmt.Errorf("scan: %w", err)
		}
		var target any
		switch bucket {
		case bucketInstances:
			target = &snap.Instances
		case bucketSecondary:
			target = &snap.Secondary
		case bucketAtoms:
			target = &snap.Atoms
		case bucketMolecules:
			target = &snap.Molecules
		case bucketGoalCursor:
			target = &snap.GoalCursor
		default:
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return lab.Snapshot{}, fmt.Errorf("decode %s: %w", bucket, err)
		}
		found++
	}
	if err := rows.Err(); err != nil {
		return lab.Snapshot{}, fmt.Errorf("read state: %w", err)
	}
	if found == 0 {
		return lab.Snapshot{}, ErrNotFound
	}
	if err := snap.Validate(); err != nil {
		return lab.Snapshot{}, err
	}
	return snap, nil
}

// Save writes all buckets in one transaction.
func (s *SQLite) Save(ctx context.Context, snap lab.Snapshot) (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap = persisted(snap)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range buckets {
		var v any
		switch bucket {
		case bucketInstances:
			v = snap.Instances
		case bucketSecondary:
			v = snap.Secondary
		case bucketAtoms:
			v = snap.Atoms
		case bucketMolecules:
			v = snap.Molecules
		case bucketGoalCursor:
			v = snap.GoalCursor
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", bucket, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			return fmt.Errorf("upsert %s: %w", bucket, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Clear deletes all saved state.
func (s *SQLite) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM state`); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
