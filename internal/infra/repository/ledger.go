package repository

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"

	"github.com/google/uuid"
)

type LedgerRepository struct{}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{}
}

// Insert appends one entry. The table has no UPDATE path at all: the
// log is append-only and the balance is always derived.
func (r *LedgerRepository) Insert(ctx context.Context, tx db.DBTX, t *ledger.Transaction) error {
	_, err := tx.Exec(ctx, `
INSERT INTO cash_transactions (
	id, location_id, amount_cents, category, description,
	appointment_id, subscription_id, recorded_by, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		t.ID(), t.LocationID(), t.AmountCents(), string(t.Category()),
		t.Description(), t.AppointmentID(), t.SubscriptionID(), t.RecordedBy())
	if err != nil {
		return infra.WrapRepoErr("failed to insert cash transaction", err)
	}
	return nil
}

func (r *LedgerRepository) Balance(ctx context.Context, tx db.DBTX, locationID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx, `
SELECT COALESCE(SUM(amount_cents), 0)
FROM cash_transactions
WHERE location_id = $1`, locationID).Scan(&balance)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to compute cash balance", err)
	}
	return balance, nil
}

func (r *LedgerRepository) DeleteByLocation(ctx context.Context, tx db.DBTX, locationID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, `DELETE FROM cash_transactions WHERE location_id = $1`, locationID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear cash history", err)
	}
	return tag.RowsAffected(), nil
}
