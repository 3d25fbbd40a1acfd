package lab

import (
	"slices"
	"strings"
	"time"

	"github.com/f3rmion/plab/internal/particle"
)

// Offset places one decay product relative to the decaying instance.
type Offset struct {
	Type particle.Type `yaml:"type" json:"type"`
	DX   float64       `yaml:"dx" json:"dx"`
	DY   float64       `yaml:"dy" json:"dy"`
}

// DecayRule replaces an instance of Source with Products once Delay has
// passed since the instance appeared.
type DecayRule struct {
	Source   particle.Type `yaml:"source" json:"source"`
	Products []Offset      `yaml:"products" json:"products"`
	Delay    time.Duration `yaml:"delay" json:"delay"`
}

// DefaultDecayRules returns the built-in unstable states.
func DefaultDecayRules() []DecayRule {
	return []DecayRule{
		{
			Source: particle.ExcitedElectron,
			Products: []Offset{
				{Type: particle.Electron, DX: -20, DY: 0},
				{Type: particle.Photon, DX: 20, DY: 0},
			},
			Delay: 2 * time.Second,
		},
		{
			Source: particle.DecayingNeutron,
			Products: []Offset{
				{Type: particle.Proton, DX: 0, DY: -20},
				{Type: particle.Electron, DX: -20, DY: 20},
				{Type: particle.ElectronAntineutrino, DX: 20, DY: 20},
			},
			Delay: 3 * time.Second,
		},
	}
}

// schedule holds one pending decay per instance id.
type schedule struct {
	due map[string]time.Time
}

func newSchedule() *schedule {
	return &schedule{due: make(map[string]time.Time)}
}

// arm registers id to fire at at. An id that is already pending keeps its
// original deadline.
func (s *schedule) arm(id string, at time.Time) bool {
	if _, ok := s.due[id]; ok {
		return false
	}
	s.due[id] = at
	return true
}

func (s *schedule) cancel(id string) {
	delete(s.due, id)
}

func (s *schedule) clear() {
	s.due = make(map[string]time.Time)
}

// take removes and returns every id due at or before now, earliest first.
func (s *schedule) take(now time.Time) []string {
	var ids []string
	for id, at := range s.due {
		if !at.After(now) {
			ids = append(ids, id)
		}
	}
	sortByDue(ids, s.due)
	for _, id := range ids {
		delete(s.due, id)
	}
	return ids
}

func (s *schedule) pending(id string) (time.Time, bool) {
	at, ok := s.due[id]
	return at, ok
}

func (s *schedule) len() int {
	return len(s.due)
}

func sortByDue(ids []string, due map[string]time.Time) {
	slices.SortFunc(ids, func(a, b string) int {
		if c := due[a].Compare(due[b]); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
}
