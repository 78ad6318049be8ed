package request

import (
	"time"

	"github.com/google/uuid"
)

// Dates travel as plain calendar days; times of day as minutes since
// midnight in the shop's timezone.
const dateLayout = "2006-01-02"

type CreateAppointmentRequest struct {
	LocationID         uuid.UUID   `json:"location_id" binding:"required"`
	ClientID           *uuid.UUID  `json:"client_id,omitempty"`
	PetID              *uuid.UUID  `json:"pet_id,omitempty"`
	PetNames           []string    `json:"pet_names" binding:"required,min=1"`
	Date               string      `json:"date" binding:"required"`
	StartMinutes       int         `json:"start_minutes"`
	DurationMinutes    int         `json:"duration_minutes"`
	ServiceIDs         []uuid.UUID `json:"service_ids"`
	DiscountOffCents   *int64      `json:"discount_off_cents,omitempty"`
	DiscountPercentOff *float64    `json:"discount_percent_off,omitempty"`
	SubscriptionID     *uuid.UUID  `json:"subscription_id,omitempty"`
	Notes              string      `json:"notes,omitempty"`
	Weeks              int         `json:"weeks,omitempty"`
}

func (r CreateAppointmentRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

type UpdateAppointmentRequest struct {
	Date               *string     `json:"date,omitempty"`
	StartMinutes       *int        `json:"start_minutes,omitempty"`
	DurationMinutes    *int        `json:"duration_minutes,omitempty"`
	PetNames           []string    `json:"pet_names,omitempty"`
	ServiceIDs         []uuid.UUID `json:"service_ids,omitempty"`
	DiscountOffCents   *int64      `json:"discount_off_cents,omitempty"`
	DiscountPercentOff *float64    `json:"discount_percent_off,omitempty"`
	ClearDiscount      bool        `json:"clear_discount,omitempty"`
	Notes              *string     `json:"notes,omitempty"`
}

func (r UpdateAppointmentRequest) ParseDate() (*time.Time, error) {
	if r.Date == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *r.Date)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

type SetPaymentStatusRequest struct {
	Paid   bool    `json:"paid"`
	Method *string `json:"method,omitempty" binding:"omitempty,oneof=cash pix card"`
}

type AddExtraChargeRequest struct {
	Description string `json:"description" binding:"required"`
	AmountCents int64  `json:"amount_cents" binding:"required,gt=0"`
}

type PayExtraChargeRequest struct {
	Method string `json:"method" binding:"required,oneof=cash pix card"`
}
