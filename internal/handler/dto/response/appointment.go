package response

import (
	"time"

	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type ConflictWarning struct {
	AppointmentID   uuid.UUID `json:"appointment_id"`
	PetName         string    `json:"pet_name"`
	StartMinutes    int       `json:"start_minutes"`
	DurationMinutes int       `json:"duration_minutes"`
}

type CreateAppointmentResponse struct {
	ID              uuid.UUID        `json:"id"`
	TotalCents      int64            `json:"total_cents"`
	ConflictWarning *ConflictWarning `json:"conflict_warning,omitempty"`
}

func FromCreateResult(r *commands.CreateResult) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:              r.AppointmentID,
		TotalCents:      r.TotalCents,
		ConflictWarning: fromConflict(r.Conflict),
	}
}

func fromConflict(w *commands.ConflictWarning) *ConflictWarning {
	if w == nil {
		return nil
	}
	return &ConflictWarning{
		AppointmentID:   w.AppointmentID,
		PetName:         w.PetName,
		StartMinutes:    w.StartMinutes,
		DurationMinutes: w.DurationMinutes,
	}
}

type CreatedAppointment struct {
	ID              uuid.UUID        `json:"id"`
	Date            string           `json:"date"`
	ConflictWarning *ConflictWarning `json:"conflict_warning,omitempty"`
}

type IterationFailure struct {
	Week    int    `json:"week"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type BatchResponse struct {
	RequestedWeeks int                  `json:"requested_weeks"`
	PlannedWeeks   int                  `json:"planned_weeks"`
	CreatedCount   int                  `json:"created_count"`
	Created        []CreatedAppointment `json:"created"`
	Failures       []IterationFailure   `json:"failures,omitempty"`
}

func FromBatchResult(r *commands.BatchResult) *BatchResponse {
	resp := &BatchResponse{
		RequestedWeeks: r.RequestedWeeks,
		PlannedWeeks:   r.PlannedWeeks,
		CreatedCount:   len(r.Created),
		Created:        make([]CreatedAppointment, 0, len(r.Created)),
	}
	for _, c := range r.Created {
		resp.Created = append(resp.Created, CreatedAppointment{
			ID:              c.AppointmentID,
			Date:            c.Date.Format(dateLayout),
			ConflictWarning: fromConflict(c.Conflict),
		})
	}
	for _, f := range r.Failures {
		resp.Failures = append(resp.Failures, IterationFailure{
			Week:    f.Week,
			Date:    f.Date.Format(dateLayout),
			Message: f.Message,
		})
	}
	return resp
}

type ServiceLineResponse struct {
	ServiceID       uuid.UUID `json:"service_id"`
	Name            string    `json:"name"`
	PriceCents      int64     `json:"price_cents"`
	DurationMinutes int       `json:"duration_minutes"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID             `json:"id"`
	LocationID         uuid.UUID             `json:"location_id"`
	ClientID           *uuid.UUID            `json:"client_id,omitempty"`
	PetID              *uuid.UUID            `json:"pet_id,omitempty"`
	PetName            string                `json:"pet_name"`
	Date               string                `json:"date"`
	StartMinutes       int                   `json:"start_minutes"`
	DurationMinutes    int                   `json:"duration_minutes"`
	Services           []ServiceLineResponse `json:"services"`
	DiscountOffCents   *int64                `json:"discount_off_cents,omitempty"`
	DiscountPercentOff *float64              `json:"discount_percent_off,omitempty"`
	ExtraDescription   *string               `json:"extra_description,omitempty"`
	ExtraAmountCents   *int64                `json:"extra_amount_cents,omitempty"`
	ExtraPaid          bool                  `json:"extra_paid"`
	ExtraMethod        *string               `json:"extra_method,omitempty"`
	TotalCents         int64                 `json:"total_cents"`
	Paid               bool                  `json:"paid"`
	Method             *string               `json:"method,omitempty"`
	SubscriptionID     *uuid.UUID            `json:"subscription_id,omitempty"`
	Notes              string                `json:"notes,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	resp := &AppointmentResponse{
		ID:                 v.ID,
		LocationID:         v.LocationID,
		ClientID:           v.ClientID,
		PetID:              v.PetID,
		PetName:            v.PetName,
		Date:               v.Date.Format(dateLayout),
		StartMinutes:       v.StartMinutes,
		DurationMinutes:    v.DurationMinutes,
		Services:           make([]ServiceLineResponse, 0, len(v.Services)),
		DiscountOffCents:   v.DiscountOffCents,
		DiscountPercentOff: v.DiscountPercentOff,
		ExtraDescription:   v.ExtraDescription,
		ExtraAmountCents:   v.ExtraAmountCents,
		ExtraPaid:          v.ExtraPaid,
		ExtraMethod:        v.ExtraMethod,
		TotalCents:         v.TotalCents,
		Paid:               v.Paid,
		Method:             v.Method,
		SubscriptionID:     v.SubscriptionID,
		Notes:              v.Notes,
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
	for _, s := range v.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID:       s.ServiceID,
			Name:            s.Name,
			PriceCents:      s.PriceCents,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return resp
}

type AppointmentListResponse struct {
	ID              uuid.UUID `json:"id"`
	PetName         string    `json:"pet_name"`
	Date            string    `json:"date"`
	StartMinutes    int       `json:"start_minutes"`
	DurationMinutes int       `json:"duration_minutes"`
	TotalCents      int64     `json:"total_cents"`
	Paid            bool      `json:"paid"`
}

func FromAppointmentListItem(it *queries.AppointmentListItem) *AppointmentListResponse {
	return &AppointmentListResponse{
		ID:              it.ID,
		PetName:         it.PetName,
		Date:            it.Date.Format(dateLayout),
		StartMinutes:    it.StartMinutes,
		DurationMinutes: it.DurationMinutes,
		TotalCents:      it.TotalCents,
		Paid:            it.Paid,
	}
}

type PaymentResponse struct {
	ID         uuid.UUID `json:"id"`
	TotalCents int64     `json:"total_cents"`
	Paid       bool      `json:"paid"`
}

func FromPaymentResult(r *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		ID:         r.AppointmentID,
		TotalCents: r.TotalCents,
		Paid:       r.Paid,
	}
}
