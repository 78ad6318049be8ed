package commands

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/appointment"
	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/domain/subscription"
	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

type SellSubscriptionRequest struct {
	ClientID     uuid.UUID
	PlanID       uuid.UUID
	PlanQuantity int
	TotalCredits int
	ValueCents   int64
}

type SellResult struct {
	SubscriptionID uuid.UUID
}

type SubscriptionCommands interface {
	Sell(ctx context.Context, req SellSubscriptionRequest) (*SellResult, error)
	Pay(ctx context.Context, id, locationID uuid.UUID, method string, actorID uuid.UUID) error
	Consume(ctx context.Context, id uuid.UUID) error
	Refund(ctx context.Context, id uuid.UUID) error
	Renew(ctx context.Context, id uuid.UUID, newTotal int, newValueCents int64) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type subscriptionCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewSubscriptionCommands(uow shared.UnitOfWork) SubscriptionCommands {
	return &subscriptionCommandsImpl{uow: uow}
}

func (uc *subscriptionCommandsImpl) Sell(ctx context.Context, req SellSubscriptionRequest) (*SellResult, error) {
	sub, err := subscription.NewSubscription(req.ClientID, req.PlanID, req.PlanQuantity, req.TotalCredits, req.ValueCents)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Subscriptions().Create(ctx, tx.DB(), sub)
	})
	if err != nil {
		return nil, err
	}
	return &SellResult{SubscriptionID: sub.ID()}, nil
}

// Pay records the sale payment. Cash sales land in the location's
// ledger in the same transaction.
func (uc *subscriptionCommandsImpl) Pay(ctx context.Context, id, locationID uuid.UUID, method string, actorID uuid.UUID) error {
	if method == "" {
		return ErrMissingPaymentMethod
	}
	m, err := appointment.NewPaymentMethod(method)
	if err != nil {
		return errs.Mark(err, errs.ErrDomainValidation)
	}
	if m == appointment.PaymentCash && locationID == uuid.Nil {
		return ErrLocationRequired
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SubscriptionByID(ctx, id)
		if err != nil {
			return errs.Mark(err, ErrSubscriptionNotFound)
		}
		alreadyPaidCash := snap.Paid && snap.Method != nil && *snap.Method == string(appointment.PaymentCash)

		if err := tx.Subscriptions().SetPaid(ctx, tx.DB(), id, m.String()); err != nil {
			return err
		}

		if m != appointment.PaymentCash || alreadyPaidCash {
			return nil
		}
		subscriptionID := snap.ID
		txn, err := ledger.NewTransaction(ledger.NewTransactionParams{
			LocationID:     locationID,
			AmountCents:    snap.ValueCents,
			Category:       ledger.CategorySubscription,
			Description:    "subscription payment",
			SubscriptionID: &subscriptionID,
			RecordedBy:     actorID,
		})
		if err != nil {
			return err
		}
		return tx.Ledger().Insert(ctx, tx.DB(), txn)
	})
}

func (uc *subscriptionCommandsImpl) Consume(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return markCreditErr(tx.Subscriptions().ConsumeCredit(ctx, tx.DB(), id))
	})
	return mapSubscriptionNotFound(err)
}

func (uc *subscriptionCommandsImpl) Refund(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Subscriptions().RefundCredit(ctx, tx.DB(), id)
	})
	return mapSubscriptionNotFound(err)
}

func (uc *subscriptionCommandsImpl) Renew(ctx context.Context, id uuid.UUID, newTotal int, newValueCents int64) error {
	if newTotal <= 0 {
		return errs.Mark(subscription.ErrInvalidTotal, errs.ErrDomainValidation)
	}
	if newValueCents < 0 {
		return errs.Mark(subscription.ErrInvalidValue, errs.ErrDomainValidation)
	}
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Subscriptions().Renew(ctx, tx.DB(), id, newTotal, newValueCents)
	})
	return mapSubscriptionNotFound(err)
}

func (uc *subscriptionCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Subscriptions().Cancel(ctx, tx.DB(), id)
	})
	return mapSubscriptionNotFound(err)
}

func mapSubscriptionNotFound(err error) error {
	if err != nil && infra.IsKind(err, infra.KindNotFound) {
		return ErrSubscriptionNotFound
	}
	return err
}
