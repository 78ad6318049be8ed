//go:build unit

package commands_test

import (
	"context"
	"time"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the whole persistence layer.
// One instance backs the unit of work, every repository and the command
// reads, so state written in a transaction is immediately visible.
type fakeStore struct {
	appointments  map[uuid.UUID]*appointment.Appointment
	subscriptions map[uuid.UUID]*subscription.Subscription
	transactions  []*ledger.Transaction
	services      map[uuid.UUID]shared.ServiceSnapshot
	users         map[uuid.UUID]*user.User
	servicePrices map[uuid.UUID]int64

	// forceExhaustAfter < 0 is disabled. When set, ConsumeCredit fails
	// with ErrCreditsExhausted after that many successful consumes,
	// simulating a concurrent consumer draining the grant between the
	// upfront clamp and the expansion loop.
	forceExhaustAfter int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		appointments:      make(map[uuid.UUID]*appointment.Appointment),
		subscriptions:     make(map[uuid.UUID]*subscription.Subscription),
		services:          make(map[uuid.UUID]shared.ServiceSnapshot),
		users:             make(map[uuid.UUID]*user.User),
		servicePrices:     make(map[uuid.UUID]int64),
		forceExhaustAfter: -1,
	}
}

func (s *fakeStore) addService(name string, priceCents int64, durationMinutes int) uuid.UUID {
	id := uuid.New()
	s.services[id] = shared.ServiceSnapshot{
		ID:              id,
		Name:            name,
		PriceCents:      priceCents,
		DurationMinutes: durationMinutes,
	}
	return id
}

func (s *fakeStore) balance(locationID uuid.UUID) int64 {
	var sum int64
	for _, t := range s.transactions {
		if t.LocationID() == locationID {
			sum += t.AmountCents()
		}
	}
	return sum
}

type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{store: u.store}
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) DB() db.DBTX                                { return nil }
func (t *fakeTx) Appointments() shared.AppointmentRepository { return &fakeAppointmentRepo{t.store} }
func (t *fakeTx) Subscriptions() shared.SubscriptionRepository {
	return &fakeSubscriptionRepo{t.store}
}
func (t *fakeTx) Ledger() shared.LedgerRepository   { return &fakeLedgerRepo{t.store} }
func (t *fakeTx) Users() shared.UserRepository      { return &fakeUserRepo{t.store} }
func (t *fakeTx) Catalog() shared.CatalogRepository { return &fakeCatalogRepo{t.store} }
func (t *fakeTx) Reads() shared.CommandReads        { return &fakeReads{t.store} }

type fakeAppointmentRepo struct {
	store *fakeStore
}

func (r *fakeAppointmentRepo) Create(_ context.Context, _ db.DBTX, a *appointment.Appointment) error {
	r.store.appointments[a.ID()] = a
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, _ db.DBTX, a *appointment.Appointment) error {
	if _, ok := r.store.appointments[a.ID()]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	r.store.appointments[a.ID()] = a
	return nil
}

func (r *fakeAppointmentRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.store.appointments[id]; !ok {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	delete(r.store.appointments, id)
	return nil
}

type fakeSubscriptionRepo struct {
	store *fakeStore
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, _ db.DBTX, s *subscription.Subscription) error {
	r.store.subscriptions[s.ID()] = s
	return nil
}

func (r *fakeSubscriptionRepo) ConsumeCredit(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	if r.store.forceExhaustAfter == 0 {
		return subscription.ErrCreditsExhausted
	}
	if r.store.forceExhaustAfter > 0 {
		r.store.forceExhaustAfter--
	}
	return s.Consume()
}

func (r *fakeSubscriptionRepo) RefundCredit(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	s.Refund()
	return nil
}

func (r *fakeSubscriptionRepo) Renew(_ context.Context, _ db.DBTX, id uuid.UUID, newTotal int, newValueCents int64) error {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	return s.Renew(newTotal, newValueCents)
}

func (r *fakeSubscriptionRepo) Cancel(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	s.Cancel()
	return nil
}

func (r *fakeSubscriptionRepo) SetPaid(_ context.Context, _ db.DBTX, id uuid.UUID, method string) error {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	m, err := appointment.NewPaymentMethod(method)
	if err != nil {
		return err
	}
	return s.Pay(m)
}

type fakeLedgerRepo struct {
	store *fakeStore
}

func (r *fakeLedgerRepo) Insert(_ context.Context, _ db.DBTX, t *ledger.Transaction) error {
	r.store.transactions = append(r.store.transactions, t)
	return nil
}

func (r *fakeLedgerRepo) Balance(_ context.Context, _ db.DBTX, locationID uuid.UUID) (int64, error) {
	return r.store.balance(locationID), nil
}

func (r *fakeLedgerRepo) DeleteByLocation(_ context.Context, _ db.DBTX, locationID uuid.UUID) (int64, error) {
	kept := r.store.transactions[:0]
	var deleted int64
	for _, t := range r.store.transactions {
		if t.LocationID() == locationID {
			deleted++
			continue
		}
		kept = append(kept, t)
	}
	r.store.transactions = kept
	return deleted, nil
}

type fakeUserRepo struct {
	store *fakeStore
}

func (r *fakeUserRepo) Create(_ context.Context, _ db.DBTX, u *user.User) error {
	r.store.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}

type fakeCatalogRepo struct {
	store *fakeStore
}

func (r *fakeCatalogRepo) UpdatePrice(_ context.Context, _ db.DBTX, serviceID uuid.UUID, priceCents int64) error {
	if _, ok := r.store.services[serviceID]; !ok {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	r.store.servicePrices[serviceID] = priceCents
	return nil
}

type fakeReads struct {
	store *fakeStore
}

func (r *fakeReads) AppointmentByID(_ context.Context, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	a, ok := r.store.appointments[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return snapshotOf(a), nil
}

func (r *fakeReads) SubscriptionByID(_ context.Context, id uuid.UUID) (*shared.SubscriptionSnapshot, error) {
	s, ok := r.store.subscriptions[id]
	if !ok {
		return nil, infra.WrapRepoErr("subscription not found", nil, infra.KindNotFound)
	}
	var method *string
	if m := s.Method(); m != nil {
		v := m.String()
		method = &v
	}
	return &shared.SubscriptionSnapshot{
		ID:           s.ID(),
		ClientID:     s.ClientID(),
		PlanID:       s.PlanID(),
		PlanQuantity: s.PlanQuantity(),
		TotalCredits: s.TotalCredits(),
		UsedCredits:  s.UsedCredits(),
		ValueCents:   s.ValueCents(),
		Paid:         s.IsPaid(),
		Method:       method,
		Active:       s.IsActive(),
	}, nil
}

func (r *fakeReads) SlotsByLocationAndDate(_ context.Context, locationID uuid.UUID, date time.Time) ([]appointment.Slot, error) {
	var slots []appointment.Slot
	for _, a := range r.store.appointments {
		if a.LocationID() == locationID && a.Date().Equal(date) {
			slots = append(slots, a.Slot())
		}
	}
	return slots, nil
}

func (r *fakeReads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	snap, ok := r.store.services[id]
	if !ok {
		return nil, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return &snap, nil
}

func snapshotOf(a *appointment.Appointment) *shared.AppointmentSnapshot {
	snap := &shared.AppointmentSnapshot{
		ID:              a.ID(),
		LocationID:      a.LocationID(),
		ClientID:        a.ClientID(),
		PetID:           a.PetID(),
		PetName:         a.PetName(),
		Date:            a.Date(),
		StartMinutes:    a.StartMinutes(),
		DurationMinutes: a.DurationMinutes(),
		Services:        a.Services(),
		TotalCents:      a.TotalCents(),
		Paid:            a.IsPaid(),
		SubscriptionID:  a.SubscriptionID(),
		Notes:           a.Notes(),
		CreatedAt:       a.CreatedAt(),
		UpdatedAt:       a.UpdatedAt(),
	}
	if m := a.Method(); m != nil {
		v := m.String()
		snap.Method = &v
	}
	if d := a.Discount(); d != nil {
		if d.IsPercentage() {
			p := d.PercentOff()
			snap.DiscountPercentOff = &p
		} else {
			c := d.AmountOffCents()
			snap.DiscountOffCents = &c
		}
	}
	if e := a.Extra(); e != nil {
		desc := e.Description()
		amount := e.AmountCents()
		snap.ExtraDescription = &desc
		snap.ExtraAmountCents = &amount
		snap.ExtraPaid = e.IsPaid()
		if m := e.Method(); m != nil {
			v := m.String()
			snap.ExtraMethod = &v
		}
	}
	return snap
}

type fakePublisher struct {
	events []shared.Event
}

func (p *fakePublisher) Publish(_ context.Context, e shared.Event) error {
	p.events = append(p.events, e)
	return nil
}
