package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/servicehub-backend/internal/realtime"
	"github.com/yungbote/servicehub-backend/internal/realtime/bus"
)

func TestNewMetricsDisabledIsNilSafe(t *testing.T) {
	m := NewMetrics(nil, false, 0)
	if m != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
	m.ObserveAPI("GET", "/health", 200, time.Millisecond)
	m.ApiInflightInc()
	m.ObserveEvent(realtime.EventReviewCreated, nil)
	if err := m.WritePrometheus(&bytes.Buffer{}); err != nil {
		t.Fatalf("WritePrometheus on nil: %v", err)
	}
}

func TestObserveAPIExposition(t *testing.T) {
	m := NewMetrics(nil, true, time.Second)
	m.ObserveAPI("GET", "/bookings/user/:user_id", 200, 20*time.Millisecond)
	m.ObserveAPI("PUT", "/bookings/:id/status", 500, time.Second)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("WritePrometheus: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`sh_api_requests_total{method="GET",route="/bookings/user/:user_id",status="200"} 1`,
		`sh_api_request_duration_seconds_bucket{method="GET",route="/bookings/user/:user_id",status="200",le="0.025"} 1`,
		`sh_api_request_duration_seconds_bucket{method="GET",route="/bookings/user/:user_id",status="200",le="0.01"} 0`,
		`sh_api_requests_error_total 1`,
		"# TYPE sh_api_request_duration_seconds histogram",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

type failingBus struct{ bus.Nop }

func (failingBus) Publish(context.Context, realtime.Event) error { return errors.New("down") }

func TestInstrumentBusCountsOutcomes(t *testing.T) {
	m := NewMetrics(nil, true, time.Second)
	mem := bus.NewMemory()

	ok := InstrumentBus(mem, m)
	if err := ok.Publish(context.Background(), realtime.NewEvent(realtime.EventBookingCreated, nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	bad := InstrumentBus(failingBus{}, m)
	if err := bad.Publish(context.Background(), realtime.NewEvent(realtime.EventBookingCreated, nil)); err == nil {
		t.Fatalf("expected publish error")
	}

	if got := m.events.Value(string(realtime.EventBookingCreated)); got != 1 {
		t.Fatalf("events: want=1 got=%v", got)
	}
	if got := m.eventErrors.Value(string(realtime.EventBookingCreated)); got != 1 {
		t.Fatalf("event errors: want=1 got=%v", got)
	}
	if len(mem.Events()) != 1 {
		t.Fatalf("memory bus: want=1 got=%d", len(mem.Events()))
	}
	if InstrumentBus(mem, nil) != bus.Bus(mem) {
		t.Fatalf("nil metrics should return the bus unchanged")
	}
}

func TestGaugeIncDec(t *testing.T) {
	g := NewGauge("g", "help")
	g.Inc()
	g.Inc()
	g.Dec()
	if g.Value() != 1 {
		t.Fatalf("gauge: want=1 got=%v", g.Value())
	}
}
