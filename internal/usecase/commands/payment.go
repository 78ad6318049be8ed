package commands

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/pkg/clock"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrMissingPaymentMethod = errs.New("payment method is required")

type PaymentResult struct {
	AppointmentID uuid.UUID
	TotalCents    int64
	Paid          bool
}

type PaymentCommands interface {
	SetPaymentStatus(ctx context.Context, id uuid.UUID, paid bool, method *string, actorID uuid.UUID) (*PaymentResult, error)
	AddExtraCharge(ctx context.Context, id uuid.UUID, description string, amountCents int64) error
	PayExtraCharge(ctx context.Context, id uuid.UUID, method string, actorID uuid.UUID) error
}

type paymentCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewPaymentCommands(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock) PaymentCommands {
	return &paymentCommandsImpl{uow: uow, publisher: publisher, clock: clk}
}

// SetPaymentStatus toggles the paid flag and mirrors cash transitions
// into the location's ledger. The appointment write and the ledger
// entry commit or abort together; a half-applied mirror would silently
// corrupt the balance.
func (uc *paymentCommandsImpl) SetPaymentStatus(ctx context.Context, id uuid.UUID, paid bool, method *string, actorID uuid.UUID) (*PaymentResult, error) {
	if paid && (method == nil || *method == "") {
		return nil, ErrMissingPaymentMethod
	}

	var agg *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AppointmentByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrAppointmentNotFound)
		}
		agg, err = reconstructAppointment(snap)
		if err != nil {
			return err
		}

		var entry *appointment.CashEntry
		if paid {
			m, merr := appointment.NewPaymentMethod(*method)
			if merr != nil {
				return errs.Mark(merr, errs.ErrDomainValidation)
			}
			entry, err = agg.MarkPaid(m)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		} else {
			entry = agg.MarkUnpaid()
		}

		if err := tx.Appointments().Update(ctx, tx.DB(), agg); err != nil {
			return err
		}
		return uc.mirrorCash(ctx, tx, agg, entry, actorID, "appointment payment")
	})
	if err != nil {
		return nil, err
	}

	uc.publishUpdated(ctx, agg)

	return &PaymentResult{
		AppointmentID: agg.ID(),
		TotalCents:    agg.TotalCents(),
		Paid:          agg.IsPaid(),
	}, nil
}

func (uc *paymentCommandsImpl) AddExtraCharge(ctx context.Context, id uuid.UUID, description string, amountCents int64) error {
	var agg *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AppointmentByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrAppointmentNotFound)
		}
		agg, err = reconstructAppointment(snap)
		if err != nil {
			return err
		}
		if err := agg.AddExtra(description, amountCents); err != nil {
			return errs.Mark(err, errs.ErrDomainValidation)
		}
		return tx.Appointments().Update(ctx, tx.DB(), agg)
	})
	if err != nil {
		return err
	}

	uc.publishUpdated(ctx, agg)
	return nil
}

func (uc *paymentCommandsImpl) PayExtraCharge(ctx context.Context, id uuid.UUID, method string, actorID uuid.UUID) error {
	if method == "" {
		return ErrMissingPaymentMethod
	}

	var agg *appointment.Appointment
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().AppointmentByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrAppointmentNotFound)
		}
		agg, err = reconstructAppointment(snap)
		if err != nil {
			return err
		}

		m, merr := appointment.NewPaymentMethod(method)
		if merr != nil {
			return errs.Mark(merr, errs.ErrDomainValidation)
		}
		entry, perr := agg.PayExtra(m)
		if perr != nil {
			return errs.Mark(perr, errs.ErrDomainValidation)
		}

		if err := tx.Appointments().Update(ctx, tx.DB(), agg); err != nil {
			return err
		}
		return uc.mirrorCash(ctx, tx, agg, entry, actorID, "extra charge payment")
	})
	if err != nil {
		return err
	}

	uc.publishUpdated(ctx, agg)
	return nil
}

func (uc *paymentCommandsImpl) mirrorCash(ctx context.Context, tx shared.Tx, agg *appointment.Appointment, entry *appointment.CashEntry, actorID uuid.UUID, description string) error {
	// Zero entries happen when a fully covered appointment is paid in
	// cash; the ledger records movements, not zero-value events.
	if entry == nil || entry.AmountCents == 0 {
		return nil
	}
	appointmentID := agg.ID()
	txn, err := ledger.NewTransaction(ledger.NewTransactionParams{
		LocationID:    agg.LocationID(),
		AmountCents:   entry.AmountCents,
		Category:      ledger.CategoryAppointment,
		Description:   description + " - " + agg.PetName(),
		AppointmentID: &appointmentID,
		RecordedBy:    actorID,
	})
	if err != nil {
		return err
	}
	return tx.Ledger().Insert(ctx, tx.DB(), txn)
}

func (uc *paymentCommandsImpl) publishUpdated(ctx context.Context, agg *appointment.Appointment) {
	e := shared.Event{
		Type:       shared.EventAppointmentUpdated,
		SubjectID:  agg.ID(),
		LocationID: agg.LocationID(),
		OccurredAt: uc.clock.Now(),
	}
	_ = uc.publisher.Publish(ctx, e)
}
