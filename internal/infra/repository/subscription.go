package repository

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SubscriptionRepository struct{}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{}
}

func (r *SubscriptionRepository) Create(ctx context.Context, tx db.DBTX, s *subscription.Subscription) error {
	var method *string
	if m := s.Method(); m != nil {
		v := m.String()
		method = &v
	}
	_, err := tx.Exec(ctx, `
INSERT INTO subscriptions (
	id, client_id, plan_id, plan_quantity, total_credits, used_credits,
	value_cents, paid, payment_method, active, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`,
		s.ID(), s.ClientID(), s.PlanID(), s.PlanQuantity(), s.TotalCredits(),
		s.UsedCredits(), s.ValueCents(), s.IsPaid(), method, s.IsActive())
	if err != nil {
		return infra.WrapRepoErr("failed to create subscription", err)
	}
	return nil
}

// ConsumeCredit is a guarded increment: the WHERE clause refuses the
// update when the grant is spent, so concurrent consumers can never
// push used past total.
func (r *SubscriptionRepository) ConsumeCredit(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
UPDATE subscriptions
SET used_credits = used_credits + 1, updated_at = now()
WHERE id = $1 AND used_credits < total_credits`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to consume credit", err)
	}
	if tag.RowsAffected() == 0 {
		exists, eerr := r.exists(ctx, tx, id)
		if eerr != nil {
			return eerr
		}
		if !exists {
			return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
		}
		return subscription.ErrCreditsExhausted
	}
	return nil
}

// RefundCredit floors at zero; refunding an untouched grant is a no-op.
func (r *SubscriptionRepository) RefundCredit(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
UPDATE subscriptions
SET used_credits = GREATEST(used_credits - 1, 0), updated_at = now()
WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to refund credit", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SubscriptionRepository) Renew(ctx context.Context, tx db.DBTX, id uuid.UUID, newTotal int, newValueCents int64) error {
	tag, err := tx.Exec(ctx, `
UPDATE subscriptions
SET total_credits = $2, used_credits = 0, value_cents = $3,
	paid = false, payment_method = NULL, updated_at = now()
WHERE id = $1`, id, newTotal, newValueCents)
	if err != nil {
		return infra.WrapRepoErr("failed to renew subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

// Cancel deactivates and resets used to the plan's original quantity,
// not the current total. Legacy convention kept for compatibility.
func (r *SubscriptionRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `
UPDATE subscriptions
SET active = false, used_credits = plan_quantity, updated_at = now()
WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to cancel subscription", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SubscriptionRepository) SetPaid(ctx context.Context, tx db.DBTX, id uuid.UUID, method string) error {
	tag, err := tx.Exec(ctx, `
UPDATE subscriptions
SET paid = true, payment_method = $2, updated_at = now()
WHERE id = $1`, id, method)
	if err != nil {
		return infra.WrapRepoErr("failed to mark subscription paid", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SubscriptionRepository) exists(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error) {
	var found bool
	err := tx.QueryRow(ctx, `SELECT true FROM subscriptions WHERE id = $1`, id).Scan(&found)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to check subscription", err)
	}
	return found, nil
}
