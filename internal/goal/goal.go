// Package goal tracks progress through an ordered list of synthesis objectives.
package goal

import (
	"errors"
	"fmt"

	"github.com/f3rmion/plab/internal/particle"
)

// Goal is one synthesis objective.
type Goal struct {
	Name   string        `yaml:"name" json:"name"`
	Target particle.Type `yaml:"target" json:"target"`
}

// Tracker walks a fixed goal list. The cursor never moves backwards except
// through Reset.
type Tracker struct {
	goals  []Goal
	cursor int
}

// NewTracker creates a tracker positioned at the first goal.
func NewTracker(goals []Goal) *Tracker {
	g := make([]Goal, len(goals))
	copy(g, goals)
	return &Tracker{goals: g}
}

// Validate checks a goal list for empty names and unknown targets.
func Validate(goals []Goal) error {
	var errs []error
	for i, g := range goals {
		if g.Name == "" {
			errs = append(errs, fmt.Errorf("goal %d has no name", i))
		}
		if !particle.Known(g.Target) {
			errs = append(errs, fmt.Errorf("goal %d (%s) targets unknown type %q", i, g.Name, g.Target))
		}
	}
	return errors.Join(errs...)
}

// Current returns the active goal; false once every goal is complete.
func (t *Tracker) Current() (Goal, bool) {
	if t.cursor >= len(t.goals) {
		return Goal{}, false
	}
	return t.goals[t.cursor], true
}

// Advance moves to the next goal, saturating at the end of the list.
func (t *Tracker) Advance() {
	if t.cursor < len(t.goals) {
		t.cursor++
	}
}

// Cursor returns the index of the active goal; Len() means complete.
func (t *Tracker) Cursor() int {
	return t.cursor
}

// SetCursor restores a saved cursor, clamped to [0, Len()].
func (t *Tracker) SetCursor(n int) {
	switch {
	case n < 0:
		n = 0
	case n > len(t.goals):
		n = len(t.goals)
	}
	t.cursor = n
}

// Reset moves back to the first goal.
func (t *Tracker) Reset() {
	t.cursor = 0
}

// Len returns the number of goals.
func (t *Tracker) Len() int {
	return len(t.goals)
}

// Done reports whether every goal has been completed.
func (t *Tracker) Done() bool {
	return t.cursor >= len(t.goals)
}

// Goals returns a copy of the goal list.
func (t *Tracker) Goals() []Goal {
	out := make([]Goal, len(t.goals))
	copy(out, t.goals)
	return out
}

// Defaults returns the built-in goal list.
func Defaults() []Goal {
	return []Goal{
		{Name: "Synthesize a Proton", Target: particle.Proton},
		{Name: "Synthesize a Neutron", Target: particle.Neutron},
		{Name: "Form a Hydrogen Atom", Target: particle.Hydrogen},
		{Name: "Create Deuterium", Target: particle.Deuterium},
		{Name: "Form a Helium Atom", Target: particle.Helium},
		{Name: "Form a Carbon Atom", Target: particle.Carbon},
		{Name: "Form an Oxygen Atom", Target: particle.Oxygen},
		{Name: "Synthesize Water", Target: particle.Water},
		{Name: "Synthesize Methane", Target: particle.Methane},
		{Name: "Synthesize Carbon Dioxide", Target: particle.CarbonDioxide},
	}
}
