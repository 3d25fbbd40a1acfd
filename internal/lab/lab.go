// Package lab is the particle lab state machine: the live instances on the
// canvas, the discovery registries, the goal cursor and the selection.
//
// Every mutation computes the next instance list in full and then swaps it
// in under the lab mutex, so a host never observes a half-applied operation.
// Events are delivered to the Notifier after the mutex is released.
package lab

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/f3rmion/plab/internal/catalog"
	"github.com/f3rmion/plab/internal/clock"
	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/goal"
	"github.com/f3rmion/plab/internal/particle"
	"github.com/f3rmion/plab/internal/selection"
)

// DragScale is the transient scale of an instance being dragged.
const DragScale = 1.1

// Option configures a Lab.
type Option func(*Lab)

// WithClock sets the time source used for decay.
func WithClock(c clock.Clock) Option {
	return func(l *Lab) { l.clock = c }
}

// WithLogger sets the logger.
func WithLogger(log Logger) Option {
	return func(l *Lab) { l.log = log }
}

// WithNotifier sets the event receiver.
func WithNotifier(n Notifier) Option {
	return func(l *Lab) { l.notifier = n }
}

// WithDecayRules replaces the built-in decay rules.
func WithDecayRules(rules []DecayRule) Option {
	return func(l *Lab) {
		l.rules = make(map[particle.Type]DecayRule, len(rules))
		for _, r := range rules {
			l.rules[r.Source] = r
		}
	}
}

// WithIDGenerator sets the instance id source. Ids must never repeat.
func WithIDGenerator(gen func() string) Option {
	return func(l *Lab) { l.newID = gen }
}

// Lab owns all mutable lab state.
type Lab struct {
	mu sync.Mutex

	catalog  *catalog.Catalog
	resolver *decomp.Resolver
	goals    *goal.Tracker
	clock    clock.Clock
	log      Logger
	notifier Notifier
	rules    map[particle.Type]DecayRule
	newID    func() string

	instances []Instance
	secondary []particle.Type
	atoms     []particle.Type
	molecules []particle.Type
	selected  selection.Set
	decays    *schedule
}

// New creates an empty lab over cat, walking goals.
func New(cat *catalog.Catalog, goals *goal.Tracker, opts ...Option) *Lab {
	l := &Lab{
		catalog:  cat,
		resolver: decomp.NewResolver(cat),
		goals:    goals,
		clock:    clock.Real{},
		log:      NopLogger{},
		newID:    uuid.NewString,
		decays:   newSchedule(),
	}
	WithDecayRules(DefaultDecayRules())(l)
	for _, opt := range opts {
		opt(l)
	}
	if l.goals == nil {
		l.goals = goal.NewTracker(nil)
	}
	return l
}

// Catalog returns the recipe catalog the lab matches against.
func (l *Lab) Catalog() *catalog.Catalog {
	return l.catalog
}

// Resolver returns the composition resolver over the lab's catalog.
func (l *Lab) Resolver() *decomp.Resolver {
	return l.resolver
}

// AddParticle places a new instance of t at (x, y). Unknown types are
// rejected.
func (l *Lab) AddParticle(t particle.Type, x, y float64) (Instance, bool) {
	if !particle.Known(t) {
		l.log.Debugf("add: unknown type %q", t)
		return Instance{}, false
	}
	l.mu.Lock()
	inst := Instance{ID: l.newID(), Type: t, X: x, Y: y, Scale: 1}
	next := make([]Instance, 0, len(l.instances)+1)
	next = append(next, l.instances...)
	next = append(next, inst)
	l.instances = next
	l.armDecay(inst)
	l.mu.Unlock()

	l.emit(Event{
		Kind:    KindAdded,
		Type:    t,
		IDs:     []string{inst.ID},
		Message: fmt.Sprintf("Added %s to the lab!", particle.Name(t)),
	})
	return inst.clone(), true
}

// MoveParticle updates the position of a live instance. While the drag is in
// progress the instance is drawn at DragScale; the final move restores scale 1.
// Moving never triggers matching.
func (l *Lab) MoveParticle(id string, x, y float64, final bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		l.log.Debugf("move: no instance %s", id)
		return false
	}
	scale := DragScale
	if final {
		scale = 1
	}
	next := slices.Clone(l.instances)
	next[i].X, next[i].Y, next[i].Scale = x, y, scale
	l.instances = next
	return true
}

// SetSelection replaces the selection. Ids that are not live are ignored.
func (l *Lab) SetSelection(ids []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	live := make([]string, 0, len(ids))
	for _, id := range ids {
		if l.index(id) >= 0 {
			live = append(live, id)
		}
	}
	l.selected.Replace(live...)
}

// Click selects id alone, or toggles its membership when toggle is set.
func (l *Lab) Click(id string, toggle bool) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.index(id) < 0 {
		return false
	}
	if toggle {
		l.selected.Toggle(id)
	} else {
		l.selected.Replace(id)
	}
	return true
}

// ClickEmpty clears the selection.
func (l *Lab) ClickEmpty() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selected.Clear()
}

// BoxSelect replaces the selection with every instance whose footprint
// overlaps r and returns the selected ids.
func (l *Lab) BoxSelect(r selection.Rect) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	candidates := make([]selection.Candidate, len(l.instances))
	for i, inst := range l.instances {
		candidates[i] = selection.Candidate{
			ID:        inst.ID,
			X:         inst.X,
			Y:         inst.Y,
			Composite: !particle.FamilyOf(inst.Type).Elementary(),
		}
	}
	ids := selection.Within(r, candidates)
	l.selected.Replace(ids...)
	return l.selected.IDs()
}

// Actions reports which selection operations are currently enabled.
func (l *Lab) Actions() Actions {
	l.mu.Lock()
	defer l.mu.Unlock()
	acts, _ := l.actions()
	return acts
}

// actions derives enablement from the selection. The matched recipe is
// returned alongside when Assemble is enabled.
func (l *Lab) actions() (Actions, catalog.Recipe) {
	sel := l.selectedInstances()
	switch {
	case len(sel) == 0:
		return Actions{}, catalog.Recipe{}
	case len(sel) == 1 && l.decomposable(sel[0]):
		return Actions{Disassemble: true, Revert: true, Remove: true}, catalog.Recipe{}
	}
	types := make([]particle.Type, len(sel))
	for i, inst := range sel {
		types[i] = inst.Type
	}
	recipe, ok := l.resolver.MatchAssembly(types)
	if !ok {
		return Actions{Remove: true}, catalog.Recipe{}
	}
	return Actions{Assemble: true, Remove: true, Match: recipe.Type}, recipe
}

func (l *Lab) decomposable(inst Instance) bool {
	_, ok := l.resolver.DecomposeOneLevel(inst.Type, inst.Composition)
	return ok
}

// Assemble replaces the selected instances with the output of the recipe
// they match exactly, placed at their centroid.
func (l *Lab) Assemble() bool {
	l.mu.Lock()
	ev, ok := l.assemble()
	l.mu.Unlock()
	if ok {
		l.emit(ev)
	}
	return ok
}

func (l *Lab) assemble() (Event, bool) {
	acts, recipe := l.actions()
	if !acts.Assemble {
		l.log.Debugf("assemble: selection does not match a recipe")
		return Event{}, false
	}
	consumed := l.selectedInstances()

	var cx, cy float64
	composition := make([]decomp.Component, len(consumed))
	for i, inst := range consumed {
		cx += inst.X
		cy += inst.Y
		composition[i] = decomp.Component{Type: inst.Type, Composition: decomp.Clone(inst.Composition)}
	}
	n := float64(len(consumed))
	out := Instance{
		ID:          l.newID(),
		Type:        recipe.Type,
		X:           cx / n,
		Y:           cy / n,
		Scale:       1,
		Composition: composition,
	}

	l.replace(idsOf(consumed), []Instance{out})
	l.register(recipe)
	l.selected.Clear()

	name := particle.Name(recipe.Type)
	if g, ok := l.goals.Current(); ok && g.Target == recipe.Type {
		l.goals.Advance()
		l.log.Infof("goal %q complete", g.Name)
		return Event{
			Kind:    KindGoalComplete,
			Type:    recipe.Type,
			IDs:     []string{out.ID},
			Message: fmt.Sprintf("Goal Complete: %s!", g.Name),
		}, true
	}
	return Event{
		Kind:    KindFormed,
		Type:    recipe.Type,
		IDs:     []string{out.ID},
		Message: fmt.Sprintf("%s formed!", name),
	}, true
}

// Disassemble breaks the single selected composite into its direct
// ingredients around its position. Children keep any nested composition
// that was recorded for them.
func (l *Lab) Disassemble() bool {
	l.mu.Lock()
	ev, ok := l.disassemble()
	l.mu.Unlock()
	if ok {
		l.emit(ev)
	}
	return ok
}

func (l *Lab) disassemble() (Event, bool) {
	acts, _ := l.actions()
	if !acts.Disassemble {
		l.log.Debugf("disassemble: selection is not a single composite")
		return Event{}, false
	}
	src := l.selectedInstances()[0]
	parts, _ := l.resolver.DecomposeOneLevel(src.Type, src.Composition)

	points := decomp.Radial(len(parts), src.X, src.Y, decomp.DisassembleRadius)
	created := make([]Instance, len(parts))
	for i, c := range parts {
		created[i] = Instance{
			ID:          l.newID(),
			Type:        c.Type,
			X:           points[i].X,
			Y:           points[i].Y,
			Scale:       1,
			Composition: c.Composition,
		}
	}
	l.replace([]string{src.ID}, created)
	l.selected.Clear()

	return Event{
		Kind:    KindDisassembled,
		Type:    src.Type,
		IDs:     idsOf(created),
		Message: fmt.Sprintf("Disassembled %s!", particle.Name(src.Type)),
	}, true
}

// RevertToElementary replaces the single selected composite with fresh
// elementary instances. The recorded composition tree is followed where
// present and only unrecorded parts are expanded through the catalog, so a
// historical instance reverts to what it was built from even when the
// current catalog's recipe for its type differs.
func (l *Lab) RevertToElementary() bool {
	l.mu.Lock()
	ev, ok := l.revert()
	l.mu.Unlock()
	if ok {
		l.emit(ev)
	}
	return ok
}

func (l *Lab) revert() (Event, bool) {
	acts, _ := l.actions()
	if !acts.Revert {
		l.log.Debugf("revert: selection is not a single composite")
		return Event{}, false
	}
	src := l.selectedInstances()[0]
	types := l.resolver.DecomposeComponentsFully(src.Type, src.Composition)

	points := decomp.Radial(len(types), src.X, src.Y, decomp.RevertRadius)
	created := make([]Instance, len(types))
	for i, t := range types {
		created[i] = Instance{ID: l.newID(), Type: t, X: points[i].X, Y: points[i].Y, Scale: 1}
	}
	l.replace([]string{src.ID}, created)
	l.selected.Clear()

	return Event{
		Kind:    KindReverted,
		Type:    src.Type,
		IDs:     idsOf(created),
		Message: fmt.Sprintf("Reverted %s to elementary particles!", particle.Name(src.Type)),
	}, true
}

// RemoveSelected deletes every selected instance.
func (l *Lab) RemoveSelected() bool {
	l.mu.Lock()
	removed := l.selected.IDs()
	if len(removed) == 0 {
		l.mu.Unlock()
		return false
	}
	l.replace(removed, nil)
	l.selected.Clear()
	l.mu.Unlock()

	msg := "Removed 1 particle"
	if len(removed) != 1 {
		msg = fmt.Sprintf("Removed %d particles", len(removed))
	}
	l.emit(Event{Kind: KindRemoved, IDs: removed, Message: msg})
	return true
}

// Reset clears instances, registries, selection, pending decays and the
// goal cursor.
func (l *Lab) Reset() {
	l.mu.Lock()
	removed := idsOf(l.instances)
	l.instances = nil
	l.secondary, l.atoms, l.molecules = nil, nil, nil
	l.selected.Clear()
	l.decays.clear()
	l.goals.Reset()
	l.mu.Unlock()

	l.emit(Event{Kind: KindReset, IDs: removed, Message: "Lab reset"})
}

// Advance fires every decay that is due on the lab clock and returns how
// many instances decayed. A decay whose instance is gone is skipped.
func (l *Lab) Advance() int {
	l.mu.Lock()
	var events []Event
	for _, id := range l.decays.take(l.clock.Now()) {
		if ev, ok := l.decay(id); ok {
			events = append(events, ev)
		}
	}
	l.mu.Unlock()

	for _, ev := range events {
		l.emit(ev)
	}
	return len(events)
}

func (l *Lab) decay(id string) (Event, bool) {
	i := l.index(id)
	if i < 0 {
		l.log.Debugf("decay: instance %s no longer exists", id)
		return Event{}, false
	}
	src := l.instances[i]
	rule, ok := l.rules[src.Type]
	if !ok {
		return Event{}, false
	}
	created := make([]Instance, len(rule.Products))
	for j, p := range rule.Products {
		created[j] = Instance{ID: l.newID(), Type: p.Type, X: src.X + p.DX, Y: src.Y + p.DY, Scale: 1}
	}
	l.replace([]string{src.ID}, created)
	l.selected.Retain(func(sel string) bool { return sel != src.ID })

	return Event{
		Kind:    KindDecayed,
		Type:    src.Type,
		IDs:     idsOf(created),
		Message: fmt.Sprintf("%s decayed!", particle.Name(src.Type)),
	}, true
}

// PendingDecay reports when the instance id is scheduled to decay.
func (l *Lab) PendingDecay(id string) (at time.Time, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.decays.pending(id)
}

// CurrentGoal returns the active goal; false once all goals are complete.
func (l *Lab) CurrentGoal() (goal.Goal, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goals.Current()
}

// GoalProgress returns the goal cursor and the number of goals.
func (l *Lab) GoalProgress() (cursor, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.goals.Cursor(), l.goals.Len()
}

// Snapshot returns a deep copy of the lab state.
func (l *Lab) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	instances := make([]Instance, len(l.instances))
	for i, inst := range l.instances {
		instances[i] = inst.clone()
	}
	return Snapshot{
		Instances:  instances,
		Secondary:  slices.Clone(l.secondary),
		Atoms:      slices.Clone(l.atoms),
		Molecules:  slices.Clone(l.molecules),
		GoalCursor: l.goals.Cursor(),
		Selection:  l.selected.IDs(),
	}
}

// Restore replaces the lab state with s. Absent collections mean a fresh
// start, the goal cursor is clamped to the goal list, duplicate registry
// entries are collapsed and selection ids that are not live are dropped.
// Unstable instances are scheduled to decay from now. A snapshot with
// missing or duplicate ids or unknown types is rejected and the lab is left
// unchanged.
func (l *Lab) Restore(s Snapshot) error {
	if err := s.Validate(); err != nil {
		return err
	}
	instances := make([]Instance, len(s.Instances))
	for i, inst := range s.Instances {
		inst = inst.clone()
		if inst.Scale <= 0 {
			inst.Scale = 1
		}
		instances[i] = inst
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.instances = instances
	l.secondary = dedupe(s.Secondary)
	l.atoms = dedupe(s.Atoms)
	l.molecules = dedupe(s.Molecules)
	l.goals.SetCursor(s.GoalCursor)
	l.decays.clear()
	for _, inst := range l.instances {
		l.armDecay(inst)
	}
	live := make([]string, 0, len(s.Selection))
	for _, id := range s.Selection {
		if l.index(id) >= 0 {
			live = append(live, id)
		}
	}
	l.selected.Replace(live...)
	l.log.Infof("restored %d instances, goal %d/%d", len(instances), l.goals.Cursor(), l.goals.Len())
	return nil
}

// replace swaps in the instance list without the removed ids and with the
// created instances appended, cancelling decays of the removed instances
// and arming decays of the created ones.
func (l *Lab) replace(removed []string, created []Instance) {
	drop := make(map[string]bool, len(removed))
	for _, id := range removed {
		drop[id] = true
	}
	next := make([]Instance, 0, len(l.instances)-len(removed)+len(created))
	for _, inst := range l.instances {
		if drop[inst.ID] {
			l.decays.cancel(inst.ID)
			continue
		}
		next = append(next, inst)
	}
	next = append(next, created...)
	l.instances = next
	for _, inst := range created {
		l.armDecay(inst)
	}
}

func (l *Lab) armDecay(inst Instance) {
	rule, ok := l.rules[inst.Type]
	if !ok {
		return
	}
	if l.decays.arm(inst.ID, l.clock.Now().Add(rule.Delay)) {
		l.log.Debugf("decay of %s (%s) armed for %s", inst.ID, inst.Type, rule.Delay)
	}
}

func (l *Lab) register(r catalog.Recipe) {
	var reg *[]particle.Type
	switch r.Category {
	case catalog.CategorySecondary:
		reg = &l.secondary
	case catalog.CategoryAtom:
		reg = &l.atoms
	case catalog.CategoryMolecule:
		reg = &l.molecules
	default:
		return
	}
	if !slices.Contains(*reg, r.Type) {
		*reg = append(slices.Clone(*reg), r.Type)
		l.log.Infof("discovered %s", r.Type)
	}
}

func (l *Lab) selectedInstances() []Instance {
	ids := l.selected.IDs()
	out := make([]Instance, 0, len(ids))
	for _, id := range ids {
		if i := l.index(id); i >= 0 {
			out = append(out, l.instances[i])
		}
	}
	return out
}

func (l *Lab) index(id string) int {
	return slices.IndexFunc(l.instances, func(inst Instance) bool { return inst.ID == id })
}

func (l *Lab) emit(e Event) {
	if l.notifier != nil {
		l.notifier.Notify(e)
	}
}

func idsOf(instances []Instance) []string {
	out := make([]string, len(instances))
	for i, inst := range instances {
		out[i] = inst.ID
	}
	return out
}

func dedupe(types []particle.Type) []particle.Type {
	var out []particle.Type
	for _, t := range types {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
