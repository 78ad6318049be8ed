package queries

import (
	"context"
	"time"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrAppointmentNotFound = errs.New("appointment not found")

// Read models (DTO for read side)
type ServiceLineView struct {
	ServiceID       uuid.UUID `json:"service_id"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
}

type AppointmentView struct {
	ID                 uuid.UUID         `json:"id"`
	LocationID         uuid.UUID         `json:"location_id"`
	ClientID           *uuid.UUID        `json:"client_id,omitempty"`
	PetID              *uuid.UUID        `json:"pet_id,omitempty"`
	PetName            string            `json:"pet_name"`
	Date               time.Time         `json:"date"`
	StartMinutes       int               `json:"start_minutes"`
	DurationMinutes    int               `json:"duration_minutes"`
	Services           []ServiceLineView `json:"services"`
	DiscountOffCents   *int64            `json:"discount_off_cents,omitempty"`
	DiscountPercentOff *float64          `json:"discount_percent_off,omitempty"`
	ExtraDescription   *string           `json:"extra_description,omitempty"`
	ExtraAmountCents   *int64            `json:"extra_amount_cents,omitempty"`
	ExtraPaid          bool              `json:"extra_paid"`
	ExtraMethod        *string           `json:"extra_method,omitempty"`
	TotalCents         int64             `json:"total_cents"`
	Paid               bool              `json:"paid"`
	Method             *string           `json:"method,omitempty"`
	SubscriptionID     *uuid.UUID        `json:"subscription_id,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type AppointmentListItem struct {
	ID              uuid.UUID `json:"id"`
	PetName         string    `json:"pet_name"`
	Date            time.Time `json:"date"`
	StartMinutes    int       `json:"start_minutes"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalCents      int64     `json:"total_cents"`
	Paid            bool      `json:"paid"`
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	ListByDay(ctx context.Context, locationID uuid.UUID, date time.Time) ([]*AppointmentListItem, error)
}

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByLocationAndDate(ctx context.Context, locationID uuid.UUID, date time.Time) ([]*AppointmentListItem, error)
}

type appointmentQueriesImpl struct {
	readStore AppointmentReadStore
}

func NewAppointmentQueries(readStore AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{readStore: readStore}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *appointmentQueriesImpl) ListByDay(ctx context.Context, locationID uuid.UUID, date time.Time) ([]*AppointmentListItem, error) {
	return q.readStore.FindByLocationAndDate(ctx, locationID, date)
}
