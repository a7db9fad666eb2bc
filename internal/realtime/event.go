package realtime

import "time"

type EventType string

const (
	EventBookingCreated       EventType = "booking.created"
	EventBookingStatusChanged EventType = "booking.status_changed"
	EventReviewCreated        EventType = "review.created"
	EventServiceRatingUpdated EventType = "service.rating_updated"
)

// Event is a committed domain change announced to other processes.
type Event struct {
	Type       EventType              `json:"type"`
	OccurredAt time.Time              `json:"occurred_at"`
	Data       map[string]interface{} `json:"data,omitempty"`
}

func NewEvent(t EventType, data map[string]interface{}) Event {
	return Event{Type: t, OccurredAt: time.Now().UTC(), Data: data}
}
