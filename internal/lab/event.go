package lab

import (
	"sync"

	"github.com/f3rmion/plab/internal/particle"
)

// Kind identifies which operation produced an event.
type Kind string

const (
	KindAdded        Kind = "added"
	KindFormed       Kind = "formed"
	KindGoalComplete Kind = "goal_complete"
	KindDisassembled Kind = "disassembled"
	KindReverted     Kind = "reverted"
	KindRemoved      Kind = "removed"
	KindDecayed      Kind = "decayed"
	KindReset        Kind = "reset"
)

// Event describes a completed lab operation.
//
// Type is the particle the operation was about: the added or formed type,
// the disassembled or reverted source, or the decayed instance. IDs lists the
// instances the operation created, or for removals the instances it dropped.
type Event struct {
	Kind    Kind          `json:"kind"`
	Type    particle.Type `json:"type,omitempty"`
	IDs     []string      `json:"ids,omitempty"`
	Message string        `json:"message"`
}

// Notifier receives events after the state change they describe is visible.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// DefaultEventLogSize is the capacity used when NewEventLog is given n <= 0.
const DefaultEventLogSize = 64

// EventLog keeps the most recent events in memory.
type EventLog struct {
	mu     sync.Mutex
	events []Event
	limit  int
}

// NewEventLog creates a log holding at most n events.
func NewEventLog(n int) *EventLog {
	if n <= 0 {
		n = DefaultEventLogSize
	}
	return &EventLog{limit: n}
}

// Notify records e, dropping the oldest event when full.
func (l *EventLog) Notify(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	if over := len(l.events) - l.limit; over > 0 {
		l.events = append(l.events[:0:0], l.events[over:]...)
	}
}

// Drain returns the recorded events oldest first and empties the log.
func (l *EventLog) Drain() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.events
	l.events = nil
	return out
}

// Last returns the most recent event without removing it.
func (l *EventLog) Last() (Event, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return Event{}, false
	}
	return l.events[len(l.events)-1], true
}

// Len returns the number of buffered events.
func (l *EventLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
