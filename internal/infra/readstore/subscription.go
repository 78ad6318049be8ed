package readstore

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/pkg/pgconv"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubscriptionReadStore struct {
	db db.DBTX
}

func NewSubscriptionReadStore(db db.DBTX) *SubscriptionReadStore {
	return &SubscriptionReadStore{db: db}
}

func (s *SubscriptionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	var snap shared.SubscriptionSnapshot
	err := s.db.QueryRow(ctx, `
SELECT id, client_id, plan_id, plan_quantity, total_credits, used_credits,
	value_cents, paid, payment_method, active
FROM subscriptions WHERE id = $1`, id).
		Scan(&snap.ID, &snap.ClientID, &snap.PlanID, &snap.PlanQuantity,
			&snap.TotalCredits, &snap.UsedCredits, &snap.ValueCents,
			&snap.Paid, &snap.Method, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription", err)
	}
	return &snap, nil
}
