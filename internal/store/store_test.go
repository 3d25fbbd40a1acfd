package store

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/lab"
	"github.com/f3rmion/plab/internal/particle"
)

func sampleSnapshot() lab.Snapshot {
	return lab.Snapshot{
		Instances: []lab.Instance{
			{ID: "a", Type: particle.UpQuark, X: 1, Y: 2, Scale: 1},
			{ID: "b", Type: particle.Proton, X: 30, Y: 10, Scale: 1, Composition: []decomp.Component{
				{Type: particle.UpQuark}, {Type: particle.UpQuark}, {Type: particle.DownQuark},
			}},
		},
		Secondary:  []particle.Type{particle.Proton},
		Atoms:      []particle.Type{particle.Hydrogen},
		GoalCursor: 3,
		Selection:  []string{"a"},
	}
}

func assertSame(t *testing.T, got, want lab.Snapshot) {
	t.Helper()
	if len(got.Instances) != len(want.Instances) {
		t.Fatalf("Expected %d instances, got %d", len(want.Instances), len(got.Instances))
	}
	for i := range want.Instances {
		g, w := got.Instances[i], want.Instances[i]
		if g.ID != w.ID || g.Type != w.Type || g.X != w.X || g.Y != w.Y {
			t.Errorf("instance %d: Expected %+v, got %+v", i, w, g)
		}
		if !slices.Equal(decomp.Types(g.Composition), decomp.Types(w.Composition)) {
			t.Errorf("instance %d: composition differs", i)
		}
	}
	if !slices.Equal(got.Secondary, want.Secondary) || !slices.Equal(got.Atoms, want.Atoms) || len(got.Molecules) != len(want.Molecules) {
		t.Errorf("registries differ: %+v vs %+v", got, want)
	}
	if got.GoalCursor != want.GoalCursor {
		t.Errorf("Expected goal cursor %d, got %d", want.GoalCursor, got.GoalCursor)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on a fresh database, got %v", err)
	}

	want := sampleSnapshot()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertSame(t, got, want)
	if len(got.Selection) != 0 {
		t.Errorf("selection should not be persisted, got %v", got.Selection)
	}

	// A second save overwrites rather than appends.
	want.GoalCursor = 4
	want.Instances = want.Instances[:1]
	if err := reopened.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	got, _ = reopened.Load(ctx)
	assertSame(t, got, want)
}

func TestSQLiteClear(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after Clear, got %v", err)
	}
}

func TestSQLiteRejectsCorruptBucket(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.db.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?)`, "instances", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx); err == nil {
		t.Fatal("Expected decode error")
	}
	if snap := LoadOrEmpty(ctx, s, lab.NopLogger{}); !snap.Empty() {
		t.Errorf("Expected empty fallback, got %+v", snap)
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.Load(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	want := sampleSnapshot()
	if err := m.Save(ctx, want); err != nil {
		t.Fatal(err)
	}
	want.Instances[0].Type = particle.Gluon // must not leak into the store

	got, err := m.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Instances[0].Type != particle.UpQuark {
		t.Errorf("store aliased caller data: %s", got.Instances[0].Type)
	}
	if err := m.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	if snap := LoadOrEmpty(ctx, m, lab.NopLogger{}); !snap.Empty() {
		t.Errorf("Expected empty snapshot, got %+v", snap)
	}
}

func TestRestoreFromStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatal(err)
	}

	l := lab.New(catalog.MustDefault(), goal.NewTracker(goal.Defaults()))
	RestoreOrReset(l, LoadOrEmpty(ctx, m, lab.NopLogger{}), lab.NopLogger{})
	if c, _ := l.GoalProgress(); c != 3 {
		t.Errorf("Expected goal cursor 3, got %d", c)
	}
	if n := len(l.Snapshot().Instances); n != 2 {
		t.Errorf("Expected 2 instances, got %d", n)
	}

	bad := lab.Snapshot{Instances: []lab.Instance{{ID: "", Type: particle.Photon}}}
	RestoreOrReset(l, bad, lab.NopLogger{})
	if s := l.Snapshot(); !s.Empty() {
		t.Errorf("Expected fresh lab after rejected snapshot, got %+v", s)
	}
}
