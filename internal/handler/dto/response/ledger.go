package response

import (
	"time"

	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	LocationID   uuid.UUID `json:"location_id"`
	BalanceCents int64     `json:"balance_cents"`
}

type TransactionResponse struct {
	ID             uuid.UUID  `json:"id"`
	AmountCents    int64      `json:"amount_cents"`
	Category       string     `json:"category"`
	Description    string     `json:"description"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	SubscriptionID *uuid.UUID `json:"subscription_id,omitempty"`
	RecordedBy     uuid.UUID  `json:"recorded_by"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromTransactionView(v *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:             v.ID,
		AmountCents:    v.AmountCents,
		Category:       v.Category,
		Description:    v.Description,
		AppointmentID:  v.AppointmentID,
		SubscriptionID: v.SubscriptionID,
		RecordedBy:     v.RecordedBy,
		CreatedAt:      v.CreatedAt,
	}
}

type CloseResponse struct {
	AlreadyZero    bool  `json:"already_zero"`
	WithdrawnCents int64 `json:"withdrawn_cents"`
}

func FromCloseResult(r *commands.CloseResult) *CloseResponse {
	return &CloseResponse{
		AlreadyZero:    r.AlreadyZero,
		WithdrawnCents: r.WithdrawnCents,
	}
}

type ClearHistoryResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}
