package appointment

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidExtraAmount      = errors.New("extra charge amount must be positive")
	ErrMissingExtraDescription = errors.New("extra charge description is required")
	ErrNegativeDiscount        = errors.New("discount cannot be negative")
	ErrInvalidPercentDiscount  = errors.New("percentage discount must be between 0 and 100")
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentPix  PaymentMethod = "pix"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentPix, PaymentCard:
		return true
	default:
		return false
	}
}

func NewPaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

type Discount struct {
	amountOffCents *int64
	percentOff     *float64
}

func NewFixedDiscount(amountOffCents int64) (Discount, error) {
	if amountOffCents < 0 {
		return Discount{}, ErrNegativeDiscount
	}
	return Discount{amountOffCents: &amountOffCents}, nil
}

func NewPercentageDiscount(percentOff float64) (Discount, error) {
	if percentOff < 0 || percentOff > 100 {
		return Discount{}, ErrInvalidPercentDiscount
	}
	return Discount{percentOff: &percentOff}, nil
}

func (d Discount) IsPercentage() bool {
	return d.percentOff != nil
}

func (d Discount) AmountOffCents() int64 {
	if d.amountOffCents != nil {
		return *d.amountOffCents
	}
	return 0
}

func (d Discount) PercentOff() float64 {
	if d.percentOff != nil {
		return *d.percentOff
	}
	return 0
}

// AmountFor returns the discount in cents for the given subtotal.
func (d Discount) AmountFor(subtotalCents int64) int64 {
	if d.percentOff != nil {
		return int64(float64(subtotalCents) * *d.percentOff / 100.0)
	}
	if d.amountOffCents != nil {
		return *d.amountOffCents
	}
	return 0
}

// ServiceLine is a catalog snapshot taken at booking time. Later price
// changes in the catalog never rewrite past appointments.
type ServiceLine struct {
	ServiceID       uuid.UUID
	Name            string
	PriceCents      int64
	DurationMinutes int
}

type ExtraCharge struct {
	description string
	amountCents int64
	paid        bool
	method      *PaymentMethod
}

func NewExtraCharge(description string, amountCents int64) (ExtraCharge, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return ExtraCharge{}, ErrMissingExtraDescription
	}
	if amountCents <= 0 {
		return ExtraCharge{}, ErrInvalidExtraAmount
	}
	return ExtraCharge{description: description, amountCents: amountCents}, nil
}

func ReconstructExtraCharge(description string, amountCents int64, paid bool, method *PaymentMethod) ExtraCharge {
	return ExtraCharge{description: description, amountCents: amountCents, paid: paid, method: method}
}

func (e ExtraCharge) Description() string    { return e.description }
func (e ExtraCharge) AmountCents() int64     { return e.amountCents }
func (e ExtraCharge) IsPaid() bool           { return e.paid }
func (e ExtraCharge) Method() *PaymentMethod { return e.method }
