package components

import (
	"github.com/patas-felizes/grooming-api/internal/infra/db"
	"github.com/patas-felizes/grooming-api/internal/infra/events"
	"github.com/patas-felizes/grooming-api/internal/infra/readstore"
	"github.com/patas-felizes/grooming-api/internal/infra/uow"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"
	"github.com/patas-felizes/grooming-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		events.NewSlogPublisher,
		fx.Annotate(
			readstore.NewAppointmentReadStore,
			fx.As(new(queries.AppointmentReadStore)),
		),
		fx.Annotate(
			readstore.NewLedgerReadStore,
			fx.As(new(queries.LedgerReadStore)),
		),
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

// Pool-backed DBTX for the read side; write paths get their DBTX from
// the unit of work's transaction.
func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

var _ shared.UnitOfWork = (*uow.PostgresUoW)(nil)
