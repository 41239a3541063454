package events

import (
	"time"

	"github.com/google/uuid"
)

// Narrative is one audit/narrative event emitted during snap resolution.
type Narrative struct {
	EventID   string    `json:"event_id"`
	Time      time.Time `json:"time"`
	Scope     string    `json:"scope"`
	EventType string    `json:"event_type"`
	Actors    []string  `json:"actors"`
	Claims    []string  `json:"claims"`
	Handles   []string  `json:"evidence_handles"`
	Severity  string    `json:"severity"`
}

// NewNarrative assigns a fresh event id and UTC timestamp.
func NewNarrative(scope, eventType string, actors, claims, handles []string, severity string) Narrative {
	return Narrative{
		EventID:   uuid.NewString(),
		Time:      time.Now().UTC(),
		Scope:     scope,
		EventType: eventType,
		Actors:    actors,
		Claims:    claims,
		Handles:   handles,
		Severity:  severity,
	}
}

// Sink receives narrative events from the engine. Resolution is
// synchronous; handlers must not block.
type Sink interface {
	Publish(event Narrative)
}

// Bus is a simple in-process sink with per-scope counters.
type Bus struct {
	handlers []func(Narrative)
	counts   map[string]int
}

var _ Sink = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{counts: make(map[string]int)}
}

func (b *Bus) Subscribe(handler func(Narrative)) {
	b.handlers = append(b.handlers, handler)
}

func (b *Bus) Publish(event Narrative) {
	b.counts[event.Scope]++
	for _, handler := range b.handlers {
		handler(event)
	}
}

// EmittedCount returns the number of events published for scope, or the
// total across scopes when scope is empty.
func (b *Bus) EmittedCount(scope string) int {
	if scope == "" {
		total := 0
		for _, n := range b.counts {
			total += n
		}
		return total
	}
	return b.counts[scope]
}

// Discard is a Sink that drops every event, for offscreen batch runs.
type Discard struct{}

func (Discard) Publish(Narrative) {}
