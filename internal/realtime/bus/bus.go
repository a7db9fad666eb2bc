package bus

import (
	"context"
	"sync"

	"github.com/yungbote/servicehub-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, evt realtime.Event) error
	Close() error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, realtime.Event) error { return nil }
func (Nop) Close() error                                  { return nil }

// Memory keeps published events in order; handy for tests and local runs.
type Memory struct {
	mu     sync.Mutex
	events []realtime.Event
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Publish(_ context.Context, evt realtime.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, evt)
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Events() []realtime.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]realtime.Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfType filters the recorded events.
func (m *Memory) OfType(t realtime.EventType) []realtime.Event {
	var out []realtime.Event
	for _, evt := range m.Events() {
		if evt.Type == t {
			out = append(out, evt)
		}
	}
	return out
}
