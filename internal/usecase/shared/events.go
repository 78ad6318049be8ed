package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventAppointmentCreated EventType = "appointment_created"
	EventAppointmentUpdated EventType = "appointment_updated"
	EventAppointmentDeleted EventType = "appointment_deleted"
	EventPriceUpdated       EventType = "price_updated"
)

// Event notifies connected clients after a successful mutation.
// Delivery is the publisher's problem; a failed publish is logged and
// never rolls back the mutation that produced it.
type Event struct {
	Type       EventType
	SubjectID  uuid.UUID
	LocationID uuid.UUID
	OccurredAt time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
}
