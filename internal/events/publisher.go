package events

import (
	"sync"

	"github.com/mcoot/rpsarena/internal/model"
)

// Publisher receives events after the state change they describe has been applied.
// Implementations must not block.
type Publisher interface {
	Publish(event model.Event)
}

// Nop discards every event
type Nop struct{}

// Publish does nothing
func (Nop) Publish(model.Event) {}

// Fanout forwards every event to each publisher in order
type Fanout []Publisher

// Publish forwards the event
func (f Fanout) Publish(event model.Event) {
	for _, p := range f {
		p.Publish(event)
	}
}

// Recorder keeps published events in memory for tests
type Recorder struct {
	mu     sync.Mutex
	Events []model.Event
}

// Publish appends the event
func (r *Recorder) Publish(event model.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Events = append(r.Events, event)
}

// Types returns the type of each recorded event in order
func (r *Recorder) Types() []model.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]model.EventType, len(r.Events))
	for i, e := range r.Events {
		types[i] = e.Type
	}
	return types
}
