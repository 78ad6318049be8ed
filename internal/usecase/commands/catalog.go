package commands

import (
	"context"

	"github.com/patas-felizes/grooming-api/internal/infra"
	"github.com/patas-felizes/grooming-api/internal/pkg/clock"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrNegativePrice = errs.New("price cannot be negative")

// CatalogCommands covers the single catalog mutation the scheduling
// core cares about: a price change, which existing appointments must
// not absorb retroactively and connected calendars must hear about.
type CatalogCommands interface {
	UpdatePrice(ctx context.Context, serviceID uuid.UUID, priceCents int64) error
}

type catalogCommandsImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewCatalogCommands(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock) CatalogCommands {
	return &catalogCommandsImpl{uow: uow, publisher: publisher, clock: clk}
}

func (uc *catalogCommandsImpl) UpdatePrice(ctx context.Context, serviceID uuid.UUID, priceCents int64) error {
	if priceCents < 0 {
		return ErrNegativePrice
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().UpdatePrice(ctx, tx.DB(), serviceID, priceCents)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrServiceNotFound
		}
		return err
	}

	_ = uc.publisher.Publish(ctx, shared.Event{
		Type:       shared.EventPriceUpdated,
		SubjectID:  serviceID,
		OccurredAt: uc.clock.Now(),
	})
	return nil
}
