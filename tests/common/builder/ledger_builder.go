//go:build unit

package builder

import (
	"github.com/patas-felizes/grooming-api/internal/domain/ledger"

	"github.com/google/uuid"
)

type TransactionBuilder struct {
	LocationID  uuid.UUID
	AmountCents int64
	Category    ledger.Category
	Description string
	RecordedBy  uuid.UUID
}

func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		LocationID:  uuid.New(),
		AmountCents: 5000,
		Category:    ledger.CategoryManual,
		Description: "drawer adjustment",
		RecordedBy:  uuid.New(),
	}
}

func (b *TransactionBuilder) BuildDomain() (*ledger.Transaction, error) {
	return ledger.NewTransaction(ledger.NewTransactionParams{
		LocationID:  b.LocationID,
		AmountCents: b.AmountCents,
		Category:    b.Category,
		Description: b.Description,
		RecordedBy:  b.RecordedBy,
	})
}

func (b *TransactionBuilder) WithLocationID(id uuid.UUID) *TransactionBuilder {
	b.LocationID = id
	return b
}

func (b *TransactionBuilder) WithAmountCents(v int64) *TransactionBuilder {
	b.AmountCents = v
	return b
}

func (b *TransactionBuilder) WithCategory(c ledger.Category) *TransactionBuilder {
	b.Category = c
	return b
}

func (b *TransactionBuilder) WithDescription(d string) *TransactionBuilder {
	b.Description = d
	return b
}
