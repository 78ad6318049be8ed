package components

import (
	"github.com/patas-felizes/grooming-api/internal/handler"
	"github.com/patas-felizes/grooming-api/internal/handler/api"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewAppointmentHandler,
		api.NewLedgerHandler,
		api.NewSubscriptionHandler,
		api.NewCatalogHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
