package readstore

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type LedgerReadStore struct {
	db db.DBTX
}

func NewLedgerReadStore(db db.DBTX) *LedgerReadStore {
	return &LedgerReadStore{db: db}
}

func (s *LedgerReadStore) Balance(ctx context.Context, locationID uuid.UUID) (int64, error) {
	var balance int64
	err := s.db.QueryRow(ctx, `
SELECT COALESCE(SUM(amount_cents), 0)
FROM cash_transactions
WHERE location_id = $1`, locationID).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to compute cash balance", err)
	}
	return balance, nil
}

func (s *LedgerReadStore) Statement(ctx context.Context, locationID uuid.UUID, limit int) ([]*queries.TransactionView, error) {
	rows, err := s.db.Query(ctx, `
SELECT id, location_id, amount_cents, category, description,
	appointment_id, subscription_id, recorded_by, created_at
FROM cash_transactions
WHERE location_id = $1
ORDER BY created_at DESC
LIMIT $2`, locationID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load statement", err)
	}
	defer rows.Close()

	views := make([]*queries.TransactionView, 0)
	for rows.Next() {
		var v queries.TransactionView
		if err := rows.Scan(&v.ID, &v.LocationID, &v.AmountCents, &v.Category, &v.Description,
			&v.AppointmentID, &v.SubscriptionID, &v.RecordedBy, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction row", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate transactions", err)
	}
	return views, nil
}
