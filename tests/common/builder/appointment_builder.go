//go:build unit

package builder

import (
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	LocationID      uuid.UUID
	ClientID        *uuid.UUID
	PetID           *uuid.UUID
	PetName         string
	Date            time.Time
	StartMinutes    int
	DurationMinutes int
	Services        []appointment.ServiceLine
	Discount        *appointment.Discount
	SubscriptionID  *uuid.UUID
	Notes           string
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		LocationID:   uuid.New(),
		PetName:      "Rex",
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartMinutes: 9 * 60,
	}
}

func (b *AppointmentBuilder) BuildDomain() (*appointment.Appointment, error) {
	return appointment.NewAppointment(appointment.NewAppointmentParams{
		LocationID:      b.LocationID,
		ClientID:        b.ClientID,
		PetID:           b.PetID,
		PetName:         b.PetName,
		Date:            b.Date,
		StartMinutes:    b.StartMinutes,
		DurationMinutes: b.DurationMinutes,
		Services:        b.Services,
		Discount:        b.Discount,
		SubscriptionID:  b.SubscriptionID,
		Notes:           b.Notes,
	})
}

func (b *AppointmentBuilder) WithLocationID(id uuid.UUID) *AppointmentBuilder {
	b.LocationID = id
	return b
}

func (b *AppointmentBuilder) WithPetName(name string) *AppointmentBuilder {
	b.PetName = name
	return b
}

func (b *AppointmentBuilder) WithDate(date time.Time) *AppointmentBuilder {
	b.Date = date
	return b
}

func (b *AppointmentBuilder) WithStartMinutes(m int) *AppointmentBuilder {
	b.StartMinutes = m
	return b
}

func (b *AppointmentBuilder) WithDurationMinutes(m int) *AppointmentBuilder {
	b.DurationMinutes = m
	return b
}

func (b *AppointmentBuilder) WithService(name string, priceCents int64, durationMinutes int) *AppointmentBuilder {
	b.Services = append(b.Services, appointment.ServiceLine{
		ServiceID:       uuid.New(),
		Name:            name,
		PriceCents:      priceCents,
		DurationMinutes: durationMinutes,
	})
	return b
}

func (b *AppointmentBuilder) WithDiscount(d *appointment.Discount) *AppointmentBuilder {
	b.Discount = d
	return b
}

func (b *AppointmentBuilder) WithSubscription(id uuid.UUID) *AppointmentBuilder {
	b.SubscriptionID = &id
	return b
}
