package lab

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/clock"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/particle"
	"github.com/f3rmion/plab/internal/selection"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	lab    *Lab
	clock  *clock.Manual
	events *EventLog
	goals  *goal.Tracker
}

func newFixture(t *testing.T, cat *catalog.Catalog) *fixture {
	t.Helper()
	if cat == nil {
		cat = catalog.MustDefault()
	}
	n := 0
	f := &fixture{
		clock:  clock.NewManual(epoch),
		events: NewEventLog(0),
		goals:  goal.NewTracker(goal.Defaults()),
	}
	f.lab = New(cat, f.goals,
		WithClock(f.clock),
		WithNotifier(f.events),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("p%d", n)
		}),
	)
	return f
}

func (f *fixture) add(t *testing.T, pt particle.Type, x, y float64) string {
	t.Helper()
	inst, ok := f.lab.AddParticle(pt, x, y)
	if !ok {
		t.Fatalf("AddParticle(%s) failed", pt)
	}
	return inst.ID
}

// build adds the given types and assembles them, returning the output id.
func (f *fixture) build(t *testing.T, types ...particle.Type) string {
	t.Helper()
	ids := make([]string, len(types))
	for i, pt := range types {
		ids[i] = f.add(t, pt, float64(i*10), 0)
	}
	f.lab.SetSelection(ids)
	if !f.lab.Assemble() {
		t.Fatalf("Assemble(%v) failed", types)
	}
	s := f.lab.Snapshot()
	return s.Instances[len(s.Instances)-1].ID
}

func typesOf(s Snapshot) []particle.Type {
	out := make([]particle.Type, len(s.Instances))
	for i, inst := range s.Instances {
		out[i] = inst.Type
	}
	return out
}

func TestProtonSynthesis(t *testing.T) {
	f := newFixture(t, nil)
	a := f.add(t, particle.UpQuark, 0, 0)
	b := f.add(t, particle.UpQuark, 30, 0)
	c := f.add(t, particle.DownQuark, 60, 30)
	f.events.Drain()

	f.lab.SetSelection([]string{a, b, c})
	acts := f.lab.Actions()
	if !acts.Assemble || acts.Match != particle.Proton {
		t.Fatalf("Expected Assemble enabled for PROTON, got %+v", acts)
	}
	if !f.lab.Assemble() {
		t.Fatal("Assemble() returned false")
	}

	s := f.lab.Snapshot()
	if len(s.Instances) != 1 {
		t.Fatalf("Expected 1 instance, got %d", len(s.Instances))
	}
	p := s.Instances[0]
	if p.Type != particle.Proton {
		t.Errorf("Expected PROTON, got %s", p.Type)
	}
	if p.X != 30 || p.Y != 10 {
		t.Errorf("Expected centroid (30,10), got (%v,%v)", p.X, p.Y)
	}
	wantComp := []particle.Type{particle.UpQuark, particle.UpQuark, particle.DownQuark}
	if got := decomp.Types(p.Composition); !slices.Equal(got, wantComp) {
		t.Errorf("Expected composition %v, got %v", wantComp, got)
	}
	if !slices.Equal(s.Secondary, []particle.Type{particle.Proton}) {
		t.Errorf("Expected secondary registry [PROTON], got %v", s.Secondary)
	}
	if s.GoalCursor != 1 {
		t.Errorf("Expected goal cursor 1, got %d", s.GoalCursor)
	}
	if len(s.Selection) != 0 {
		t.Errorf("Expected selection cleared, got %v", s.Selection)
	}

	ev, ok := f.events.Last()
	if !ok || ev.Kind != KindGoalComplete || ev.Message != "Goal Complete: Synthesize a Proton!" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestAssembleRequiresExactMatch(t *testing.T) {
	f := newFixture(t, nil)
	ids := []string{
		f.add(t, particle.UpQuark, 0, 0),
		f.add(t, particle.UpQuark, 0, 0),
		f.add(t, particle.DownQuark, 0, 0),
		f.add(t, particle.Electron, 0, 0),
	}
	f.lab.SetSelection(ids)
	before := f.lab.Snapshot()

	if f.lab.Actions().Assemble {
		t.Error("superset selection should not enable Assemble")
	}
	if f.lab.Assemble() {
		t.Fatal("Assemble() should be a no-op")
	}
	after := f.lab.Snapshot()
	if len(after.Instances) != len(before.Instances) || len(after.Selection) != 4 {
		t.Errorf("failed Assemble changed state: %+v", after)
	}

	f.lab.SetSelection(ids[:2])
	if f.lab.Assemble() {
		t.Error("subset selection should not assemble")
	}
}

func TestActionModes(t *testing.T) {
	f := newFixture(t, nil)
	up := f.add(t, particle.UpQuark, 0, 0)
	proton := f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	photon := f.add(t, particle.Photon, 0, 0)

	tests := []struct {
		name string
		sel  []string
		want Actions
	}{
		{"empty", nil, Actions{}},
		{"single elementary", []string{up}, Actions{Remove: true}},
		{"single composite", []string{proton}, Actions{Disassemble: true, Revert: true, Remove: true}},
		{"no recipe", []string{up, photon}, Actions{Remove: true}},
		{"composite in group", []string{proton, photon}, Actions{Remove: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.lab.SetSelection(tt.sel)
			if got := f.lab.Actions(); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestRoundTripDeuterium(t *testing.T) {
	f := newFixture(t, nil)
	d := f.build(t, particle.Proton, particle.Neutron, particle.Electron)

	f.lab.SetSelection([]string{d})
	if !f.lab.RevertToElementary() {
		t.Fatal("RevertToElementary() returned false")
	}
	got := catalog.MultisetOf(typesOf(f.lab.Snapshot())...)
	want := catalog.MultisetOf(
		particle.UpQuark, particle.UpQuark, particle.DownQuark,
		particle.UpQuark, particle.DownQuark, particle.DownQuark,
		particle.Electron,
	)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	for _, inst := range f.lab.Snapshot().Instances {
		if len(inst.Composition) != 0 {
			t.Errorf("reverted instance %s carries a composition", inst.ID)
		}
	}
	ev, _ := f.events.Last()
	if ev.Kind != KindReverted || ev.Message != "Reverted Deuterium to elementary particles!" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestRoundTripEveryRecipe(t *testing.T) {
	cat := catalog.MustDefault()
	res := decomp.NewResolver(cat)
	for _, r := range cat.Recipes() {
		t.Run(string(r.Type), func(t *testing.T) {
			f := newFixture(t, cat)
			ingredients := r.Ingredients.Expand()
			out := f.build(t, ingredients...)
			f.lab.SetSelection([]string{out})
			if !f.lab.RevertToElementary() {
				t.Fatal("revert failed")
			}
			var want []particle.Type
			for _, in := range ingredients {
				want = append(want, res.DecomposeFully(in)...)
			}
			got := catalog.MultisetOf(typesOf(f.lab.Snapshot())...)
			if !got.Equal(catalog.MultisetOf(want...)) {
				t.Errorf("Expected %v, got %v", catalog.MultisetOf(want...), got)
			}
		})
	}
}

func TestIdempotentDiscovery(t *testing.T) {
	f := newFixture(t, nil)
	for i := 0; i < 3; i++ {
		f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	}
	f.build(t, particle.Hydrogen, particle.Hydrogen, particle.Oxygen)
	f.build(t, particle.Hydrogen, particle.Hydrogen, particle.Oxygen)

	s := f.lab.Snapshot()
	if !slices.Equal(s.Secondary, []particle.Type{particle.Proton}) {
		t.Errorf("Expected [PROTON], got %v", s.Secondary)
	}
	if !slices.Equal(s.Molecules, []particle.Type{particle.Water}) {
		t.Errorf("Expected [WATER], got %v", s.Molecules)
	}
	if len(s.Atoms) != 0 {
		t.Errorf("Expected no atoms, got %v", s.Atoms)
	}
}

func TestGoalMonotonicity(t *testing.T) {
	f := newFixture(t, nil)

	f.build(t, particle.UpQuark, particle.DownQuark, particle.DownQuark)
	if c, _ := f.lab.GoalProgress(); c != 0 {
		t.Fatalf("neutron should not advance the proton goal, cursor %d", c)
	}
	if ev, _ := f.events.Last(); ev.Kind != KindFormed || ev.Message != "Neutron formed!" {
		t.Errorf("unexpected event %+v", ev)
	}

	proton := f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	if c, _ := f.lab.GoalProgress(); c != 1 {
		t.Fatalf("Expected cursor 1, got %d", c)
	}

	f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	if c, _ := f.lab.GoalProgress(); c != 1 {
		t.Errorf("second proton advanced the cursor to %d", c)
	}

	f.lab.SetSelection([]string{proton})
	f.lab.Disassemble()
	f.lab.SetSelection([]string{f.add(t, particle.Photon, 0, 0)})
	f.lab.RemoveSelected()
	if c, _ := f.lab.GoalProgress(); c != 1 {
		t.Errorf("non-assemble operations moved the cursor to %d", c)
	}

	g, ok := f.lab.CurrentGoal()
	if !ok || g.Target != particle.Neutron {
		t.Errorf("Expected neutron goal, got %+v", g)
	}
}

func TestGoalCompleteSaturates(t *testing.T) {
	cat := catalog.MustDefault()
	tr := goal.NewTracker([]goal.Goal{{Name: "Synthesize a Proton", Target: particle.Proton}})
	l := New(cat, tr)
	for i := 0; i < 2; i++ {
		var ids []string
		for _, pt := range []particle.Type{particle.UpQuark, particle.UpQuark, particle.DownQuark} {
			inst, _ := l.AddParticle(pt, 0, 0)
			ids = append(ids, inst.ID)
		}
		l.SetSelection(ids)
		l.Assemble()
	}
	if c, n := l.GoalProgress(); c != n || c != 1 {
		t.Errorf("Expected cursor 1/1, got %d/%d", c, n)
	}
	if _, ok := l.CurrentGoal(); ok {
		t.Error("Expected all goals complete")
	}
}

func TestDisassembleFreshIDs(t *testing.T) {
	f := newFixture(t, nil)
	proton := f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	before := f.lab.Snapshot()
	src, _ := before.Find(proton)

	f.lab.SetSelection([]string{proton})
	if !f.lab.Disassemble() {
		t.Fatal("Disassemble() returned false")
	}
	s := f.lab.Snapshot()
	if len(s.Instances) != 3 {
		t.Fatalf("Expected 3 instances, got %d", len(s.Instances))
	}
	seen := map[string]bool{}
	for _, inst := range s.Instances {
		if inst.ID == proton {
			t.Errorf("disassembly reused id %s", proton)
		}
		if seen[inst.ID] {
			t.Errorf("duplicate id %s", inst.ID)
		}
		seen[inst.ID] = true
		dx, dy := inst.X-src.X, inst.Y-src.Y
		if d := dx*dx + dy*dy; d < 1599 || d > 1601 {
			t.Errorf("instance %s not on radius 40: (%v,%v)", inst.ID, inst.X, inst.Y)
		}
	}
	if len(s.Selection) != 0 {
		t.Errorf("Expected selection cleared, got %v", s.Selection)
	}
	if ev, _ := f.events.Last(); ev.Kind != KindDisassembled || ev.Message != "Disassembled Proton!" || len(ev.IDs) != 3 {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestDisassembleKeepsNestedComposition(t *testing.T) {
	f := newFixture(t, nil)
	p := f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	n := f.build(t, particle.UpQuark, particle.DownQuark, particle.DownQuark)
	e := f.add(t, particle.Electron, 0, 0)
	f.lab.SetSelection([]string{p, n, e})
	if !f.lab.Assemble() {
		t.Fatal("deuterium assemble failed")
	}
	d := f.lab.Snapshot().Instances[0]

	f.lab.SetSelection([]string{d.ID})
	if !f.lab.Disassemble() {
		t.Fatal("Disassemble() returned false")
	}
	for _, inst := range f.lab.Snapshot().Instances {
		switch inst.Type {
		case particle.Proton:
			if got := decomp.Types(inst.Composition); !slices.Equal(got, []particle.Type{particle.UpQuark, particle.UpQuark, particle.DownQuark}) {
				t.Errorf("proton lost its composition: %v", got)
			}
		case particle.Electron:
			if len(inst.Composition) != 0 {
				t.Errorf("electron gained a composition: %v", inst.Composition)
			}
		}
	}
}

func TestDisassemblePrefersStoredComposition(t *testing.T) {
	// A proton recorded under an older table: its stored ingredients win.
	f := newFixture(t, nil)
	err := f.lab.Restore(Snapshot{Instances: []Instance{{
		ID:   "old",
		Type: particle.Proton,
		Composition: []decomp.Component{
			{Type: particle.CharmQuark}, {Type: particle.StrangeQuark},
		},
	}}})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	f.lab.SetSelection([]string{"old"})
	if !f.lab.Disassemble() {
		t.Fatal("Disassemble() returned false")
	}
	got := catalog.MultisetOf(typesOf(f.lab.Snapshot())...)
	want := catalog.MultisetOf(particle.CharmQuark, particle.StrangeQuark)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRevertFollowsStoredComposition(t *testing.T) {
	f := newFixture(t, nil)
	err := f.lab.Restore(Snapshot{Instances: []Instance{{
		ID:   "old",
		Type: particle.Proton,
		Composition: []decomp.Component{
			{Type: particle.CharmQuark}, {Type: particle.StrangeQuark},
		},
	}}})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	f.lab.SetSelection([]string{"old"})
	if !f.lab.RevertToElementary() {
		t.Fatal("RevertToElementary() returned false")
	}
	got := catalog.MultisetOf(typesOf(f.lab.Snapshot())...)
	want := catalog.MultisetOf(particle.CharmQuark, particle.StrangeQuark)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestHistoricalTypeStillDecomposes(t *testing.T) {
	cat, err := catalog.New([]catalog.Recipe{{
		Type:        particle.Proton,
		Category:    catalog.CategorySecondary,
		Ingredients: catalog.MultisetOf(particle.UpQuark, particle.UpQuark, particle.DownQuark),
	}})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, cat)
	err = f.lab.Restore(Snapshot{Instances: []Instance{
		{ID: "w", Type: particle.Water, Composition: []decomp.Component{
			{Type: particle.Hydrogen}, {Type: particle.Hydrogen}, {Type: particle.Oxygen},
		}},
		{ID: "h", Type: particle.Helium},
	}})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	f.lab.SetSelection([]string{"h"})
	if acts := f.lab.Actions(); acts.Disassemble {
		t.Error("helium without a recipe or composition should not disassemble")
	}

	f.lab.SetSelection([]string{"w"})
	if !f.lab.RevertToElementary() {
		t.Fatal("RevertToElementary() returned false")
	}
	got := catalog.MultisetOf(typesOf(f.lab.Snapshot())...)
	want := catalog.MultisetOf(particle.Helium, particle.Hydrogen, particle.Hydrogen, particle.Oxygen)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestRemoveSelected(t *testing.T) {
	f := newFixture(t, nil)
	a := f.add(t, particle.UpQuark, 0, 0)
	b := f.add(t, particle.Gluon, 0, 0)
	c := f.add(t, particle.Photon, 0, 0)

	if f.lab.RemoveSelected() {
		t.Error("RemoveSelected() with empty selection should be a no-op")
	}
	f.lab.SetSelection([]string{a, c})
	if !f.lab.RemoveSelected() {
		t.Fatal("RemoveSelected() returned false")
	}
	s := f.lab.Snapshot()
	if len(s.Instances) != 1 || s.Instances[0].ID != b {
		t.Errorf("Expected only %s left, got %+v", b, s.Instances)
	}
	if ev, _ := f.events.Last(); ev.Kind != KindRemoved || ev.Message != "Removed 2 particles" {
		t.Errorf("unexpected event %+v", ev)
	}
}

func TestReset(t *testing.T) {
	f := newFixture(t, nil)
	f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	f.add(t, particle.ExcitedElectron, 0, 0)
	f.lab.Reset()

	s := f.lab.Snapshot()
	if !s.Empty() {
		t.Errorf("Expected empty snapshot after reset, got %+v", s)
	}
	f.clock.Advance(time.Minute)
	if n := f.lab.Advance(); n != 0 {
		t.Errorf("reset should cancel pending decays, %d fired", n)
	}
}

func TestAddRejectsUnknownType(t *testing.T) {
	f := newFixture(t, nil)
	if _, ok := f.lab.AddParticle("QUUX", 0, 0); ok {
		t.Error("unknown type accepted")
	}
	if len(f.lab.Snapshot().Instances) != 0 {
		t.Error("unknown type added an instance")
	}
}

func TestMoveParticle(t *testing.T) {
	f := newFixture(t, nil)
	id := f.add(t, particle.UpQuark, 0, 0)

	if !f.lab.MoveParticle(id, 10, 20, false) {
		t.Fatal("MoveParticle() returned false")
	}
	inst, _ := f.lab.Snapshot().Find(id)
	if inst.X != 10 || inst.Y != 20 || inst.Scale != DragScale {
		t.Errorf("unexpected drag state %+v", inst)
	}

	f.lab.MoveParticle(id, 15, 25, true)
	inst, _ = f.lab.Snapshot().Find(id)
	if inst.Scale != 1 {
		t.Errorf("Expected scale reset to 1, got %v", inst.Scale)
	}

	if f.lab.MoveParticle("missing", 0, 0, true) {
		t.Error("moving a missing instance should fail")
	}
}

func TestBoxSelectScenario(t *testing.T) {
	f := newFixture(t, nil)
	first := f.add(t, particle.UpQuark, 0, 0)
	f.add(t, particle.DownQuark, 500, 500)

	got := f.lab.BoxSelect(selection.Normalize(0, 0, 50, 50))
	if !slices.Equal(got, []string{first}) {
		t.Errorf("Expected [%s], got %v", first, got)
	}
	if sel := f.lab.Snapshot().Selection; !slices.Equal(sel, []string{first}) {
		t.Errorf("Expected selection [%s], got %v", first, sel)
	}
}

func TestClick(t *testing.T) {
	f := newFixture(t, nil)
	a := f.add(t, particle.UpQuark, 0, 0)
	b := f.add(t, particle.DownQuark, 0, 0)

	f.lab.Click(a, false)
	f.lab.Click(b, true)
	if sel := f.lab.Snapshot().Selection; !slices.Equal(sel, []string{a, b}) {
		t.Errorf("Expected [%s %s], got %v", a, b, sel)
	}
	f.lab.Click(a, true)
	if sel := f.lab.Snapshot().Selection; !slices.Equal(sel, []string{b}) {
		t.Errorf("Expected [%s], got %v", b, sel)
	}
	f.lab.Click(a, false)
	if sel := f.lab.Snapshot().Selection; !slices.Equal(sel, []string{a}) {
		t.Errorf("Expected [%s], got %v", a, sel)
	}
	if f.lab.Click("missing", false) {
		t.Error("click on a missing id should fail")
	}
	f.lab.ClickEmpty()
	if len(f.lab.Snapshot().Selection) != 0 {
		t.Error("ClickEmpty() should clear the selection")
	}
}

func TestSetSelectionDropsUnknownIDs(t *testing.T) {
	f := newFixture(t, nil)
	a := f.add(t, particle.UpQuark, 0, 0)
	f.lab.SetSelection([]string{"ghost", a})
	if sel := f.lab.Snapshot().Selection; !slices.Equal(sel, []string{a}) {
		t.Errorf("Expected [%s], got %v", a, sel)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t, nil)
	f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)

	s := f.lab.Snapshot()
	s.Instances[0].Composition[0].Type = particle.TopQuark
	s.Secondary[0] = particle.Argon

	again := f.lab.Snapshot()
	if again.Instances[0].Composition[0].Type != particle.UpQuark {
		t.Error("snapshot shares composition storage with the lab")
	}
	if again.Secondary[0] != particle.Proton {
		t.Error("snapshot shares registry storage with the lab")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	f := newFixture(t, nil)
	f.build(t, particle.UpQuark, particle.UpQuark, particle.DownQuark)
	f.build(t, particle.Proton, particle.Electron)
	saved := f.lab.Snapshot()

	g := newFixture(t, nil)
	if err := g.lab.Restore(saved); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got := g.lab.Snapshot()
	if len(got.Instances) != len(saved.Instances) {
		t.Fatalf("Expected %d instances, got %d", len(saved.Instances), len(got.Instances))
	}
	if !slices.Equal(got.Secondary, saved.Secondary) || !slices.Equal(got.Atoms, saved.Atoms) {
		t.Errorf("registries differ: %+v vs %+v", got, saved)
	}
	if got.GoalCursor != saved.GoalCursor {
		t.Errorf("Expected cursor %d, got %d", saved.GoalCursor, got.GoalCursor)
	}

	data, err := saved.Encode()
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.lab.Restore(decoded); err != nil {
		t.Fatalf("Restore decoded: %v", err)
	}
}

func TestCustomCatalogSnapshotRestores(t *testing.T) {
	if _, err := catalog.New([]catalog.Recipe{{
		Type:        "OZONE",
		Category:    catalog.CategoryMolecule,
		Ingredients: catalog.Multiset{particle.Oxygen: 3},
	}}); err == nil {
		t.Fatal("catalog accepted an output type the lab cannot restore")
	}

	cat, err := catalog.New([]catalog.Recipe{{
		Type:        particle.Water,
		Category:    catalog.CategoryMolecule,
		Ingredients: catalog.Multiset{particle.Oxygen: 3},
	}})
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture(t, cat)
	f.build(t, particle.Oxygen, particle.Oxygen, particle.Oxygen)
	saved := f.lab.Snapshot()

	g := newFixture(t, cat)
	if err := g.lab.Restore(saved); err != nil {
		t.Fatalf("Restore of an emitted snapshot: %v", err)
	}
	got := g.lab.Snapshot()
	if !slices.Equal(got.Molecules, []particle.Type{particle.Water}) {
		t.Errorf("Expected molecules [%s], got %v", particle.Water, got.Molecules)
	}
	if len(got.Instances) != 1 || got.Instances[0].Type != particle.Water {
		t.Errorf("Expected one water instance, got %+v", got.Instances)
	}
}

func TestRestoreTolerance(t *testing.T) {
	f := newFixture(t, nil)

	if err := f.lab.Restore(Snapshot{}); err != nil {
		t.Fatalf("empty snapshot rejected: %v", err)
	}
	if s := f.lab.Snapshot(); !s.Empty() {
		t.Errorf("Expected fresh state, got %+v", s)
	}

	err := f.lab.Restore(Snapshot{
		Instances:  []Instance{{ID: "a", Type: particle.UpQuark}},
		Secondary:  []particle.Type{particle.Proton, particle.Proton},
		GoalCursor: 999,
		Selection:  []string{"a", "ghost"},
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	s := f.lab.Snapshot()
	if s.GoalCursor != len(goal.Defaults()) {
		t.Errorf("Expected clamped cursor %d, got %d", len(goal.Defaults()), s.GoalCursor)
	}
	if !slices.Equal(s.Selection, []string{"a"}) {
		t.Errorf("Expected selection [a], got %v", s.Selection)
	}
	if !slices.Equal(s.Secondary, []particle.Type{particle.Proton}) {
		t.Errorf("Expected deduplicated registry, got %v", s.Secondary)
	}
	if s.Instances[0].Scale != 1 {
		t.Errorf("Expected missing scale restored as 1, got %v", s.Instances[0].Scale)
	}
}

func TestRestoreRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"empty id", Snapshot{Instances: []Instance{{Type: particle.UpQuark}}}},
		{"duplicate id", Snapshot{Instances: []Instance{{ID: "a", Type: particle.UpQuark}, {ID: "a", Type: particle.Photon}}}},
		{"unknown type", Snapshot{Instances: []Instance{{ID: "a", Type: "QUUX"}}}},
		{"unknown composition", Snapshot{Instances: []Instance{{ID: "a", Type: particle.Proton, Composition: []decomp.Component{{Type: "QUUX"}}}}}},
		{"unknown registry entry", Snapshot{Atoms: []particle.Type{"QUUX"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			keep := f.add(t, particle.Gluon, 0, 0)
			err := f.lab.Restore(tt.snap)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("Expected ErrInvalidSnapshot, got %v", err)
			}
			if _, ok := f.lab.Snapshot().Find(keep); !ok {
				t.Error("rejected restore modified the lab")
			}
		})
	}
}

func TestEventLogIsBounded(t *testing.T) {
	log := NewEventLog(2)
	for i := 0; i < 5; i++ {
		log.Notify(Event{Kind: KindAdded, Message: fmt.Sprint(i)})
	}
	events := log.Drain()
	if len(events) != 2 || events[0].Message != "3" || events[1].Message != "4" {
		t.Errorf("Expected the last two events, got %+v", events)
	}
	if log.Len() != 0 {
		t.Error("Drain() should empty the log")
	}
}

func TestNotifierSeesCommittedState(t *testing.T) {
	var l *Lab
	var seen int
	l = New(catalog.MustDefault(), nil, WithNotifier(NotifierFunc(func(e Event) {
		// Reading back from the notifier must not deadlock.
		seen = len(l.Snapshot().Instances)
	})))
	l.AddParticle(particle.Photon, 0, 0)
	if seen != 1 {
		t.Errorf("Expected notifier to see 1 instance, saw %d", seen)
	}
}
