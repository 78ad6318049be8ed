package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const defaultStatementLimit = 50

type TransactionView struct {
	ID             uuid.UUID  `json:"id"`
	LocationID     uuid.UUID  `json:"location_id"`
	AmountCents    int64      `json:"amount_cents"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	SubscriptionID *uuid.UUID `json:"subscription_id,omitempty"`
	RecordedBy     uuid.UUID  `json:"recorded_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

type LedgerQueries interface {
	Balance(ctx context.Context, locationID uuid.UUID) (int64, error)
	// Statement returns transactions most-recent-first.
	Statement(ctx context.Context, locationID uuid.UUID, limit int) ([]*TransactionView, error)
}

type LedgerReadStore interface {
	Balance(ctx context.Context, locationID uuid.UUID) (int64, error)
	Statement(ctx context.Context, locationID uuid.UUID, limit int) ([]*TransactionView, error)
}

type ledgerQueriesImpl struct {
	readStore LedgerReadStore
}

func NewLedgerQueries(readStore LedgerReadStore) LedgerQueries {
	return &ledgerQueriesImpl{readStore: readStore}
}

func (q *ledgerQueriesImpl) Balance(ctx context.Context, locationID uuid.UUID) (int64, error) {
	return q.readStore.Balance(ctx, locationID)
}

func (q *ledgerQueriesImpl) Statement(ctx context.Context, locationID uuid.UUID, limit int) ([]*TransactionView, error) {
	if limit <= 0 {
		limit = defaultStatementLimit
	}
	return q.readStore.Statement(ctx, locationID, limit)
}
