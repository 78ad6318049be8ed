package repository

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"

	"github.com/google/uuid"
)

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

const insertAppointmentSQL = `
INSERT INTO appointments (
	id, location_id, client_id, pet_id, pet_name, date, start_minutes,
	duration_minutes, discount_off_cents, discount_percent_off,
	extra_description, extra_amount_cents, extra_paid, extra_method,
	total_cents, paid, payment_method, subscription_id, notes,
	created_at, updated_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, now(), now()
)`

func (r *AppointmentRepository) Create(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error {
	_, err := tx.Exec(ctx, insertAppointmentSQL, appointmentArgs(a)...)
	if err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return r.replaceServices(ctx, tx, a)
}

const updateAppointmentSQL = `
UPDATE appointments SET
	location_id = $2, client_id = $3, pet_id = $4, pet_name = $5,
	date = $6, start_minutes = $7, duration_minutes = $8,
	discount_off_cents = $9, discount_percent_off = $10,
	extra_description = $11, extra_amount_cents = $12,
	extra_paid = $13, extra_method = $14, total_cents = $15,
	paid = $16, payment_method = $17, subscription_id = $18,
	notes = $19, updated_at = now()
WHERE id = $1`

func (r *AppointmentRepository) Update(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error {
	tag, err := tx.Exec(ctx, updateAppointmentSQL, appointmentArgs(a)...)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return r.replaceServices(ctx, tx, a)
}

func (r *AppointmentRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

// Service snapshot rows are replaced wholesale on every write; they are
// cheap and the list is tiny.
func (r *AppointmentRepository) replaceServices(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error {
	if _, err := tx.Exec(ctx, `DELETE FROM appointment_services WHERE appointment_id = $1`, a.ID()); err != nil {
		return infra.WrapRepoErr("failed to clear appointment services", err)
	}
	for i, s := range a.Services() {
		_, err := tx.Exec(ctx, `
INSERT INTO appointment_services (appointment_id, service_id, name, price_cents, duration_minutes, position)
VALUES ($1, $2, $3, $4, $5, $6)`,
			a.ID(), s.ServiceID, s.Name, s.PriceCents, s.DurationMinutes, i)
		if err != nil {
			return infra.WrapRepoErr("failed to insert appointment service", err)
		}
	}
	return nil
}

func appointmentArgs(a *appointment.Appointment) []any {
	var (
		discountOff *int64
		percentOff  *float64
	)
	if d := a.Discount(); d != nil {
		if d.IsPercentage() {
			v := d.PercentOff()
			percentOff = &v
		} else {
			v := d.AmountOffCents()
			discountOff = &v
		}
	}

	var (
		extraDescription *string
		extraAmountCents *int64
		extraPaid        bool
		extraMethod      *string
	)
	if e := a.Extra(); e != nil {
		desc := e.Description()
		amount := e.AmountCents()
		extraDescription = &desc
		extraAmountCents = &amount
		extraPaid = e.IsPaid()
		if m := e.Method(); m != nil {
			s := m.String()
			extraMethod = &s
		}
	}

	var method *string
	if m := a.Method(); m != nil {
		s := m.String()
		method = &s
	}

	return []any{
		a.ID(), a.LocationID(), a.ClientID(), a.PetID(), a.PetName(),
		a.Date(), a.StartMinutes(), a.DurationMinutes(),
		discountOff, percentOff,
		extraDescription, extraAmountCents, extraPaid, extraMethod,
		a.TotalCents(), a.IsPaid(), method, a.SubscriptionID(), a.Notes(),
	}
}
