package subscription

import (
	"errors"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"

	"github.com/google/uuid"
)

var (
	ErrMissingClient    = errors.New("client is required")
	ErrInvalidTotal     = errors.New("total credits must be positive")
	ErrInvalidValue     = errors.New("subscription value cannot be negative")
	ErrCreditsExhausted = errors.New("no credits remaining")
)

// Subscription is a prepaid grant of N service uses. used never exceeds
// total; exhausted (used == total) is distinct from canceled.
type Subscription struct {
	id           uuid.UUID
	clientID     uuid.UUID
	planID       uuid.UUID
	planQuantity int
	totalCredits int
	usedCredits  int
	valueCents   int64
	paid         bool
	method       *appointment.PaymentMethod
	active       bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSubscription(clientID, planID uuid.UUID, planQuantity, totalCredits int, valueCents int64) (*Subscription, error) {
	if clientID == uuid.Nil {
		return nil, ErrMissingClient
	}
	if totalCredits <= 0 {
		return nil, ErrInvalidTotal
	}
	if valueCents < 0 {
		return nil, ErrInvalidValue
	}
	if planQuantity <= 0 {
		planQuantity = totalCredits
	}
	return &Subscription{
		id:           uuid.New(),
		clientID:     clientID,
		planID:       planID,
		planQuantity: planQuantity,
		totalCredits: totalCredits,
		valueCents:   valueCents,
		active:       true,
	}, nil
}

func Reconstruct(
	id, clientID, planID uuid.UUID,
	planQuantity, totalCredits, usedCredits int,
	valueCents int64,
	paid bool,
	method *appointment.PaymentMethod,
	active bool,
	createdAt, updatedAt time.Time,
) *Subscription {
	return &Subscription{
		id:           id,
		clientID:     clientID,
		planID:       planID,
		planQuantity: planQuantity,
		totalCredits: totalCredits,
		usedCredits:  usedCredits,
		valueCents:   valueCents,
		paid:         paid,
		method:       method,
		active:       active,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (s *Subscription) Remaining() int {
	return s.totalCredits - s.usedCredits
}

func (s *Subscription) IsExhausted() bool {
	return s.usedCredits == s.totalCredits
}

// Consume spends one credit. Running out is a hard error, not a clamp:
// the booking generator must know to stop expanding further weeks.
func (s *Subscription) Consume() error {
	if s.usedCredits >= s.totalCredits {
		return ErrCreditsExhausted
	}
	s.usedCredits++
	return nil
}

// Refund returns one credit, floored at zero. Deleting twice or racing
// deletes must not drive the counter negative.
func (s *Subscription) Refund() {
	if s.usedCredits > 0 {
		s.usedCredits--
	}
}

// Renew resets the grant for a new cycle. A renewal always requires
// fresh payment regardless of the old grant's payment state.
func (s *Subscription) Renew(newTotal int, newValueCents int64) error {
	if newTotal <= 0 {
		return ErrInvalidTotal
	}
	if newValueCents < 0 {
		return ErrInvalidValue
	}
	s.totalCredits = newTotal
	s.usedCredits = 0
	s.valueCents = newValueCents
	s.paid = false
	s.method = nil
	return nil
}

// Cancel deactivates the grant and resets used to the plan's original
// catalog quantity, not the grant's current total. Observed legacy
// convention, kept for compatibility.
func (s *Subscription) Cancel() {
	s.active = false
	s.usedCredits = s.planQuantity
}

func (s *Subscription) Pay(method appointment.PaymentMethod) error {
	if !method.IsValid() {
		return appointment.ErrInvalidPaymentMethod
	}
	s.paid = true
	s.method = &method
	return nil
}

func (s *Subscription) ID() uuid.UUID                      { return s.id }
func (s *Subscription) ClientID() uuid.UUID                { return s.clientID }
func (s *Subscription) PlanID() uuid.UUID                  { return s.planID }
func (s *Subscription) PlanQuantity() int                  { return s.planQuantity }
func (s *Subscription) TotalCredits() int                  { return s.totalCredits }
func (s *Subscription) UsedCredits() int                   { return s.usedCredits }
func (s *Subscription) ValueCents() int64                  { return s.valueCents }
func (s *Subscription) IsPaid() bool                       { return s.paid }
func (s *Subscription) Method() *appointment.PaymentMethod { return s.method }
func (s *Subscription) IsActive() bool                     { return s.active }
func (s *Subscription) CreatedAt() time.Time               { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time               { return s.updatedAt }
