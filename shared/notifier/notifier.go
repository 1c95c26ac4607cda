// Package notifier broadcasts lifecycle events after a change is committed.
//
// Delivery is fire-and-forget: there is no persistence and no replay, sink
// failures are logged and never reach the caller, and publishing with no
// sinks or no subscribers succeeds.
package notifier

//go:generate go run go.uber.org/mock/mockgen -source=./notifier.go -destination=./mocks/notifier_mock.go -package=mocks

import (
	"context"
	"time"
)

type Event string

const (
	ReservationCreated   Event = "reservation-created"
	ReservationUpdated   Event = "reservation-updated"
	ReservationCancelled Event = "reservation-cancelled"
	ReservationDeleted   Event = "reservation-deleted"
	TimeSlotCreated      Event = "timeslot-created"
	TimeSlotUpdated      Event = "timeslot-updated"
	TimeSlotDeleted      Event = "timeslot-deleted"
)

// Message is the frame every sink receives.
type Message struct {
	Event   Event     `json:"event"`
	Payload any       `json:"payload"`
	At      time.Time `json:"at"`
}

// Keyed payloads choose their own partition key; otherwise the event name is used.
type Keyed interface {
	EventKey() string
}

// Key is the partition or routing key for m.
func (m Message) Key() string {
	if keyed, ok := m.Payload.(Keyed); ok && keyed.EventKey() != "" {
		return keyed.EventKey()
	}

	return string(m.Event)
}

type Notifier interface {
	Publish(ctx context.Context, event Event, payload any)
}

// Sink delivers one message to one destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, msg Message) error
}

// DeletedPayload is the body of ReservationDeleted and TimeSlotDeleted.
type DeletedPayload struct {
	ReservationID string `json:"reservation_id,omitempty"`
	TimeSlotID    string `json:"time_slot_id,omitempty"`
}

func (p DeletedPayload) EventKey() string {
	if p.ReservationID != "" {
		return p.ReservationID
	}

	return p.TimeSlotID
}
