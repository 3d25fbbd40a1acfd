package lab

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/f3rmion/plab/internal/decomp"
	"github.com/f3rmion/plab/internal/particle"
)

// ErrInvalidSnapshot is matched by errors returned from Restore and Validate.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Instance is a particle placed on the canvas.
type Instance struct {
	ID          string             `yaml:"id" json:"id"`
	Type        particle.Type      `yaml:"type" json:"type"`
	X           float64            `yaml:"x" json:"x"`
	Y           float64            `yaml:"y" json:"y"`
	Scale       float64            `yaml:"scale" json:"scale"`
	Composition []decomp.Component `yaml:"composition,omitempty" json:"composition,omitempty"`
}

func (i Instance) clone() Instance {
	i.Composition = decomp.Clone(i.Composition)
	return i
}

// Snapshot is the plain-data state of a lab. Selection is not persisted by
// the host but is reported after every operation.
type Snapshot struct {
	Instances  []Instance      `yaml:"instances" json:"instances"`
	Secondary  []particle.Type `yaml:"secondary" json:"secondary"`
	Atoms      []particle.Type `yaml:"atoms" json:"atoms"`
	Molecules  []particle.Type `yaml:"molecules" json:"molecules"`
	GoalCursor int             `yaml:"goal_cursor" json:"goal_cursor"`
	Selection  []string        `yaml:"selection,omitempty" json:"selection,omitempty"`
}

// Empty reports whether the snapshot carries no instances and no discoveries.
func (s Snapshot) Empty() bool {
	return len(s.Instances) == 0 && len(s.Secondary) == 0 &&
		len(s.Atoms) == 0 && len(s.Molecules) == 0 && s.GoalCursor == 0
}

// Find returns the instance with the given id.
func (s Snapshot) Find(id string) (Instance, bool) {
	for _, inst := range s.Instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

// CountByType tallies live instances per type.
func (s Snapshot) CountByType() map[particle.Type]int {
	out := make(map[particle.Type]int)
	for _, inst := range s.Instances {
		out[inst.Type]++
	}
	return out
}

// Validate checks that every id is present and unique and every type,
// including those inside compositions and registries, is known.
func (s Snapshot) Validate() error {
	seen := make(map[string]bool, len(s.Instances))
	for i, inst := range s.Instances {
		if inst.ID == "" {
			return fmt.Errorf("%w: instance %d has no id", ErrInvalidSnapshot, i)
		}
		if seen[inst.ID] {
			return fmt.Errorf("%w: duplicate instance id %q", ErrInvalidSnapshot, inst.ID)
		}
		seen[inst.ID] = true
		if !particle.Known(inst.Type) {
			return fmt.Errorf("%w: instance %q has unknown type %q", ErrInvalidSnapshot, inst.ID, inst.Type)
		}
		if err := validateComposition(inst.Composition); err != nil {
			return fmt.Errorf("%w: instance %q: %v", ErrInvalidSnapshot, inst.ID, err)
		}
	}
	for name, reg := range map[string][]particle.Type{
		"secondary": s.Secondary,
		"atoms":     s.Atoms,
		"molecules": s.Molecules,
	} {
		for _, t := range reg {
			if !particle.Known(t) {
				return fmt.Errorf("%w: %s registry has unknown type %q", ErrInvalidSnapshot, name, t)
			}
		}
	}
	return nil
}

func validateComposition(components []decomp.Component) error {
	for _, c := range components {
		if !particle.Known(c.Type) {
			return fmt.Errorf("composition has unknown type %q", c.Type)
		}
		if err := validateComposition(c.Composition); err != nil {
			return err
		}
	}
	return nil
}

// Encode serializes the snapshot as JSON.
func (s Snapshot) Encode() ([]byte, error) {
	return json.Marshal(s)
}

// DecodeSnapshot parses a JSON snapshot and validates it.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := s.Validate(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// Actions is the derived enablement of the selection-driven operations.
type Actions struct {
	Assemble    bool
	Disassemble bool
	Revert      bool
	Remove      bool
	// Match is the type Assemble would produce.
	Match particle.Type
}
