package appointment

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingLocation      = errors.New("location is required")
	ErrInvalidDate          = errors.New("invalid appointment date")
	ErrInvalidStartTime     = errors.New("start time must be within the day")
	ErrMissingPetName       = errors.New("pet name is required")
	ErrMissingPaymentMethod = errors.New("payment method is required")
	ErrNoExtraCharge        = errors.New("appointment has no extra charge")
)

// DefaultDurationMinutes is used when no service resolves a duration.
const DefaultDurationMinutes = 60

// CashEntry is the ledger side effect of a payment transition: a signed
// amount the caller must append to the location's cash ledger.
type CashEntry struct {
	AmountCents int64
}

type Appointment struct {
	id              uuid.UUID
	locationID      uuid.UUID
	clientID        *uuid.UUID
	petID           *uuid.UUID
	petName         string
	date            time.Time
	startMinutes    int
	durationMinutes int
	services        []ServiceLine
	extra           *ExtraCharge
	discount        *Discount
	totalCents      int64
	paid            bool
	method          *PaymentMethod
	subscriptionID  *uuid.UUID
	notes           string
	createdAt       time.Time
	updatedAt       time.Time
}

type NewAppointmentParams struct {
	LocationID      uuid.UUID
	ClientID        *uuid.UUID
	PetID           *uuid.UUID
	PetName         string
	Date            time.Time
	StartMinutes    int
	DurationMinutes int // 0 means derive from services
	Services        []ServiceLine
	Discount        *Discount
	SubscriptionID  *uuid.UUID
	Notes           string
}

func NewAppointment(p NewAppointmentParams) (*Appointment, error) {
	if p.LocationID == uuid.Nil {
		return nil, ErrMissingLocation
	}
	if p.Date.IsZero() {
		return nil, ErrInvalidDate
	}
	if p.StartMinutes < 0 || p.StartMinutes >= 24*60 {
		return nil, ErrInvalidStartTime
	}
	petName := strings.TrimSpace(p.PetName)
	if petName == "" {
		return nil, ErrMissingPetName
	}

	duration := p.DurationMinutes
	if duration <= 0 {
		duration = DeriveDuration(p.Services)
	}

	a := &Appointment{
		id:              uuid.New(),
		locationID:      p.LocationID,
		clientID:        p.ClientID,
		petID:           p.PetID,
		petName:         petName,
		date:            p.Date,
		startMinutes:    p.StartMinutes,
		durationMinutes: duration,
		services:        p.Services,
		discount:        p.Discount,
		subscriptionID:  p.SubscriptionID,
		notes:           p.Notes,
	}
	a.recalculateTotal()
	return a, nil
}

func Reconstruct(
	id, locationID uuid.UUID,
	clientID, petID *uuid.UUID,
	petName string,
	date time.Time,
	startMinutes, durationMinutes int,
	services []ServiceLine,
	extra *ExtraCharge,
	discount *Discount,
	totalCents int64,
	paid bool,
	method *PaymentMethod,
	subscriptionID *uuid.UUID,
	notes string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:              id,
		locationID:      locationID,
		clientID:        clientID,
		petID:           petID,
		petName:         petName,
		date:            date,
		startMinutes:    startMinutes,
		durationMinutes: durationMinutes,
		services:        services,
		extra:           extra,
		discount:        discount,
		totalCents:      totalCents,
		paid:            paid,
		method:          method,
		subscriptionID:  subscriptionID,
		notes:           notes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// DeriveDuration sums the services' catalog durations. Services without
// a duration count as the default, and an empty list yields the default.
func DeriveDuration(services []ServiceLine) int {
	if len(services) == 0 {
		return DefaultDurationMinutes
	}
	total := 0
	for _, s := range services {
		if s.DurationMinutes > 0 {
			total += s.DurationMinutes
		} else {
			total += DefaultDurationMinutes
		}
	}
	return total
}

// The total is always recomputed from current line items, never trusted
// from a stale client value: max(0, services + extra - discount).
// Subscription-covered appointments contribute no service cost.
func (a *Appointment) recalculateTotal() {
	subtotal := int64(0)
	if !a.IsSubscriptionCovered() {
		for _, s := range a.services {
			subtotal += s.PriceCents
		}
	}
	if a.extra != nil {
		subtotal += a.extra.AmountCents()
	}
	total := subtotal
	if a.discount != nil {
		total -= a.discount.AmountFor(subtotal)
	}
	if total < 0 {
		total = 0
	}
	a.totalCents = total
}

func (a *Appointment) SetServices(services []ServiceLine) {
	a.services = services
	a.recalculateTotal()
}

func (a *Appointment) SetDiscount(d *Discount) {
	a.discount = d
	a.recalculateTotal()
}

func (a *Appointment) Reschedule(date time.Time, startMinutes, durationMinutes int) error {
	if date.IsZero() {
		return ErrInvalidDate
	}
	if startMinutes < 0 || startMinutes >= 24*60 {
		return ErrInvalidStartTime
	}
	a.date = date
	a.startMinutes = startMinutes
	if durationMinutes > 0 {
		a.durationMinutes = durationMinutes
	}
	return nil
}

func (a *Appointment) SetNotes(notes string) {
	a.notes = notes
}

func (a *Appointment) SetPetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrMissingPetName
	}
	a.petName = name
	return nil
}

// MarkPaid transitions to paid with the given method. Paying in cash
// returns a positive CashEntry for the appointment total, unless the
// appointment was already paid in cash; a redundant toggle must not
// credit the ledger twice. Moving off cash to another method returns
// the negative mirror, since the drawer no longer holds that money.
func (a *Appointment) MarkPaid(method PaymentMethod) (*CashEntry, error) {
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	wasPaidCash := a.paid && a.method != nil && *a.method == PaymentCash

	a.paid = true
	a.method = &method

	if method == PaymentCash && !wasPaidCash {
		return &CashEntry{AmountCents: a.totalCents}, nil
	}
	if method != PaymentCash && wasPaidCash {
		return &CashEntry{AmountCents: -a.totalCents}, nil
	}
	return nil, nil
}

// MarkUnpaid reverts to unpaid. If the appointment was paid in cash the
// ledger credit is mirrored back with a negative entry; other methods
// never touched the ledger, so nothing is written.
func (a *Appointment) MarkUnpaid() *CashEntry {
	wasPaidCash := a.paid && a.method != nil && *a.method == PaymentCash

	a.paid = false
	a.method = nil

	if wasPaidCash {
		return &CashEntry{AmountCents: -a.totalCents}
	}
	return nil
}

// AddExtra attaches an ad-hoc charge. A second call overwrites the
// pending extra and resets its payment state.
func (a *Appointment) AddExtra(description string, amountCents int64) error {
	extra, err := NewExtraCharge(description, amountCents)
	if err != nil {
		return err
	}
	a.extra = &extra
	a.recalculateTotal()
	return nil
}

// PayExtra follows the same cash-mirroring rule as MarkPaid, scoped to
// the extra amount only.
func (a *Appointment) PayExtra(method PaymentMethod) (*CashEntry, error) {
	if a.extra == nil {
		return nil, ErrNoExtraCharge
	}
	if !method.IsValid() {
		return nil, ErrInvalidPaymentMethod
	}

	wasPaidCash := a.extra.paid && a.extra.method != nil && *a.extra.method == PaymentCash

	a.extra.paid = true
	a.extra.method = &method

	if method == PaymentCash && !wasPaidCash {
		return &CashEntry{AmountCents: a.extra.amountCents}, nil
	}
	if method != PaymentCash && wasPaidCash {
		return &CashEntry{AmountCents: -a.extra.amountCents}, nil
	}
	return nil, nil
}

func (a *Appointment) IsSubscriptionCovered() bool {
	return a.subscriptionID != nil
}

func (a *Appointment) Slot() Slot {
	return Slot{
		ID:              a.id,
		Date:            a.date,
		StartMinutes:    a.startMinutes,
		DurationMinutes: a.durationMinutes,
		PetName:         a.petName,
	}
}

func (a *Appointment) ID() uuid.UUID              { return a.id }
func (a *Appointment) LocationID() uuid.UUID      { return a.locationID }
func (a *Appointment) ClientID() *uuid.UUID       { return a.clientID }
func (a *Appointment) PetID() *uuid.UUID          { return a.petID }
func (a *Appointment) PetName() string            { return a.petName }
func (a *Appointment) Date() time.Time            { return a.date }
func (a *Appointment) StartMinutes() int          { return a.startMinutes }
func (a *Appointment) DurationMinutes() int       { return a.durationMinutes }
func (a *Appointment) Services() []ServiceLine    { return a.services }
func (a *Appointment) Extra() *ExtraCharge        { return a.extra }
func (a *Appointment) Discount() *Discount        { return a.discount }
func (a *Appointment) TotalCents() int64          { return a.totalCents }
func (a *Appointment) IsPaid() bool               { return a.paid }
func (a *Appointment) Method() *PaymentMethod     { return a.method }
func (a *Appointment) SubscriptionID() *uuid.UUID { return a.subscriptionID }
func (a *Appointment) Notes() string              { return a.notes }
func (a *Appointment) CreatedAt() time.Time       { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time       { return a.updatedAt }

// MergePetNames joins multiple pets into the single display name used
// when one request books several pets into one appointment.
func MergePetNames(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			trimmed = append(trimmed, n)
		}
	}
	return strings.Join(trimmed, ", ")
}
