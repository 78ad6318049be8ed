package events

import (
	"context"
	"log/slog"

	"github.com/patas-felizes/grooming-api/internal/usecase/shared"
)

// SlogPublisher emits domain events to the structured log. A broker can
// replace it behind the same interface without touching the use cases.
type SlogPublisher struct {
	logger *slog.Logger
}

func NewSlogPublisher(logger *slog.Logger) shared.EventPublisher {
	return &SlogPublisher{logger: logger}
}

func (p *SlogPublisher) Publish(_ context.Context, ev shared.Event) error {
	p.logger.Info("domain event",
		"type", string(ev.Type),
		"subject_id", ev.SubjectID.String(),
		"location_id", ev.LocationID.String(),
		"occurred_at", ev.OccurredAt,
	)
	return nil
}
