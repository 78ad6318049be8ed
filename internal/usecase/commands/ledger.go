package commands

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/domain/ledger"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrLocationRequired = errs.New("location is required")

type AddTransactionRequest struct {
	LocationID  uuid.UUID
	AmountCents int64
	Description string
	ActorID     uuid.UUID
}

type CloseResult struct {
	AlreadyZero    bool
	WithdrawnCents int64
}

type LedgerCommands interface {
	Add(ctx context.Context, req AddTransactionRequest) (uuid.UUID, error)
	Close(ctx context.Context, locationID, actorID uuid.UUID) (*CloseResult, error)
	ClearHistory(ctx context.Context, locationID uuid.UUID) (int64, error)
}

type ledgerCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLedgerCommands(uow shared.UnitOfWork) LedgerCommands {
	return &ledgerCommandsImpl{uow: uow}
}

func (uc *ledgerCommandsImpl) Add(ctx context.Context, req AddTransactionRequest) (uuid.UUID, error) {
	txn, err := ledger.NewTransaction(ledger.NewTransactionParams{
		LocationID:  req.LocationID,
		AmountCents: req.AmountCents,
		Category:    ledger.CategoryManual,
		Description: req.Description,
		RecordedBy:  req.ActorID,
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Ledger().Insert(ctx, tx.DB(), txn)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return txn.ID(), nil
}

// Close zeroes the location balance by appending an offsetting entry.
// The balance read and the closing insert run in one serializable
// transaction; a concurrent entry landing between them would leave the
// post-close balance away from zero.
func (uc *ledgerCommandsImpl) Close(ctx context.Context, locationID, actorID uuid.UUID) (*CloseResult, error) {
	if locationID == uuid.Nil {
		return nil, ErrLocationRequired
	}

	result := &CloseResult{}
	err := uc.uow.WithinSerializable(ctx, func(ctx context.Context, tx shared.Tx) error {
		balance, err := tx.Ledger().Balance(ctx, tx.DB(), locationID)
		if err != nil {
			return err
		}
		if balance == 0 {
			result.AlreadyZero = true
			return nil
		}

		txn, err := ledger.NewTransaction(ledger.NewTransactionParams{
			LocationID:  locationID,
			AmountCents: -balance,
			Category:    ledger.CategoryClosing,
			Description: ledger.ClosingDescription,
			RecordedBy:  actorID,
		})
		if err != nil {
			return err
		}
		if err := tx.Ledger().Insert(ctx, tx.DB(), txn); err != nil {
			return err
		}
		result.WithdrawnCents = balance
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ClearHistory wipes every transaction for a location. Destructive and
// irreversible; gated at admin in the handler layer, and can leave the
// conceptual balance inconsistent with the drawer if used without a
// prior Close.
func (uc *ledgerCommandsImpl) ClearHistory(ctx context.Context, locationID uuid.UUID) (int64, error) {
	if locationID == uuid.Nil {
		return 0, ErrLocationRequired
	}

	var deleted int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		deleted, err = tx.Ledger().DeleteByLocation(ctx, tx.DB(), locationID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}
