package ledger

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingLocation    = errors.New("location is required")
	ErrZeroAmount         = errors.New("transaction amount cannot be zero")
	ErrInvalidCategory    = errors.New("invalid transaction category")
	ErrMissingDescription = errors.New("transaction description is required")
)

type Category string

const (
	CategoryManual       Category = "manual"
	CategoryAppointment  Category = "appointment"
	CategorySubscription Category = "subscription"
	CategoryClosing      Category = "closing"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryManual, CategoryAppointment, CategorySubscription, CategoryClosing:
		return true
	default:
		return false
	}
}

// ClosingDescription tags the offsetting entry written by a cash close.
const ClosingDescription = "cash closing withdrawal"

// Transaction is one signed entry in a location's append-only cash log.
// Entries are never updated or reordered; the location balance is the
// fold of all its amounts, there is no stored balance field.
type Transaction struct {
	id             uuid.UUID
	locationID     uuid.UUID
	amountCents    int64
	category       Category
	description    string
	appointmentID  *uuid.UUID
	subscriptionID *uuid.UUID
	recordedBy     uuid.UUID
	createdAt      time.Time
}

type NewTransactionParams struct {
	LocationID     uuid.UUID
	AmountCents    int64
	Category       Category
	Description    string
	AppointmentID  *uuid.UUID
	SubscriptionID *uuid.UUID
	RecordedBy     uuid.UUID
}

func NewTransaction(p NewTransactionParams) (*Transaction, error) {
	if p.LocationID == uuid.Nil {
		return nil, ErrMissingLocation
	}
	if p.AmountCents == 0 {
		return nil, ErrZeroAmount
	}
	if !p.Category.IsValid() {
		return nil, ErrInvalidCategory
	}
	description := strings.TrimSpace(p.Description)
	if description == "" {
		return nil, ErrMissingDescription
	}
	return &Transaction{
		id:             uuid.New(),
		locationID:     p.LocationID,
		amountCents:    p.AmountCents,
		category:       p.Category,
		description:    description,
		appointmentID:  p.AppointmentID,
		subscriptionID: p.SubscriptionID,
		recordedBy:     p.RecordedBy,
	}, nil
}

func Reconstruct(
	id, locationID uuid.UUID,
	amountCents int64,
	category Category,
	description string,
	appointmentID, subscriptionID *uuid.UUID,
	recordedBy uuid.UUID,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:             id,
		locationID:     locationID,
		amountCents:    amountCents,
		category:       category,
		description:    description,
		appointmentID:  appointmentID,
		subscriptionID: subscriptionID,
		recordedBy:     recordedBy,
		createdAt:      createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID              { return t.id }
func (t *Transaction) LocationID() uuid.UUID      { return t.locationID }
func (t *Transaction) AmountCents() int64         { return t.amountCents }
func (t *Transaction) Category() Category         { return t.category }
func (t *Transaction) Description() string        { return t.description }
func (t *Transaction) AppointmentID() *uuid.UUID  { return t.appointmentID }
func (t *Transaction) SubscriptionID() *uuid.UUID { return t.subscriptionID }
func (t *Transaction) RecordedBy() uuid.UUID      { return t.recordedBy }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }

// SumAmounts folds a sequence of transactions into a balance.
func SumAmounts(txns []*Transaction) int64 {
	var sum int64
	for _, t := range txns {
		sum += t.amountCents
	}
	return sum
}
