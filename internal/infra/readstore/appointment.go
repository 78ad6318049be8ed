package readstore

import (
	"context"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/pkg/pgconv"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(db db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: db}
}

const appointmentColumns = `
	id, location_id, client_id, pet_id, pet_name, date, start_minutes,
	duration_minutes, discount_off_cents, discount_percent_off,
	extra_description, extra_amount_cents, extra_paid, extra_method,
	total_cents, paid, payment_method, subscription_id, notes,
	created_at, updated_at`

func (s *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row := s.db.QueryRow(ctx, `SELECT`+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	var v queries.AppointmentView
	err := row.Scan(
		&v.ID, &v.LocationID, &v.ClientID, &v.PetID, &v.PetName, &v.Date,
		&v.StartMinutes, &v.DurationMinutes, &v.DiscountOffCents,
		&v.DiscountPercentOff, &v.ExtraDescription, &v.ExtraAmountCents,
		&v.ExtraPaid, &v.ExtraMethod, &v.TotalCents, &v.Paid, &v.Method,
		&v.SubscriptionID, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	lines, err := s.serviceLines(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		v.Services = append(v.Services, queries.ServiceLineView{
			ServiceID:       l.ServiceID,
			Name:            l.Name,
			PriceCents:      l.PriceCents,
			DurationMinutes: l.DurationMinutes,
		})
	}
	return &v, nil
}

func (s *AppointmentReadStore) FindByLocationAndDate(ctx context.Context, locationID uuid.UUID, date time.Time) ([]*queries.AppointmentListItem, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, pet_name, date, start_minutes, duration_minutes, total_cents, paid
FROM appointments
WHERE location_id = $1 AND date = $2
ORDER BY start_minutes`, locationID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	defer rows.Close()

	items := make([]*queries.AppointmentListItem, 0)
	for rows.Next() {
		var it queries.AppointmentListItem
		if err := rows.Scan(&it.ID, &it.PetName, &it.Date, &it.StartMinutes, &it.DurationMinutes, &it.TotalCents, &it.Paid); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment row", err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate appointments", err)
	}
	return items, nil
}

// FindSnapshotByID backs command-side reads where the write path needs
// the full persisted state before applying changes.
func (s *AppointmentReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	row := s.db.QueryRow(ctx, `SELECT`+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	var snap shared.AppointmentSnapshot
	err := row.Scan(
		&snap.ID, &snap.LocationID, &snap.ClientID, &snap.PetID, &snap.PetName,
		&snap.Date, &snap.StartMinutes, &snap.DurationMinutes,
		&snap.DiscountOffCents, &snap.DiscountPercentOff, &snap.ExtraDescription,
		&snap.ExtraAmountCents, &snap.ExtraPaid, &snap.ExtraMethod,
		&snap.TotalCents, &snap.Paid, &snap.Method, &snap.SubscriptionID,
		&snap.Notes, &snap.CreatedAt, &snap.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}

	snap.Services, err = s.serviceLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// FindSlotsByLocationAndDate loads only what conflict detection needs.
func (s *AppointmentReadStore) FindSlotsByLocationAndDate(ctx context.Context, locationID uuid.UUID, date time.Time) ([]appointment.Slot, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, date, start_minutes, duration_minutes, pet_name
FROM appointments
WHERE location_id = $1 AND date = $2`, locationID, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load day slots", err)
	}
	defer rows.Close()

	slots := make([]appointment.Slot, 0)
	for rows.Next() {
		var sl appointment.Slot
		if err := rows.Scan(&sl.ID, &sl.Date, &sl.StartMinutes, &sl.DurationMinutes, &sl.PetName); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		slots = append(slots, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slots", err)
	}
	return slots, nil
}

func (s *AppointmentReadStore) serviceLines(ctx context.Context, appointmentID uuid.UUID) ([]appointment.ServiceLine, error) {
	rows, err := s.db.Query(ctx, `
SELECT service_id, name, price_cents, duration_minutes
FROM appointment_services
WHERE appointment_id = $1
ORDER BY position`, appointmentID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load service lines", err)
	}
	defer rows.Close()

	lines := make([]appointment.ServiceLine, 0)
	for rows.Next() {
		var l appointment.ServiceLine
		if err := rows.Scan(&l.ServiceID, &l.Name, &l.PriceCents, &l.DurationMinutes); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service lines", err)
	}
	return lines, nil
}
