package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/handler/api"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	"github.com/patas-felizes/grooming-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	ledgerHandler *api.LedgerHandler,
	subscriptionHandler *api.SubscriptionHandler,
	catalogHandler *api.CatalogHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, appointmentHandler, ledgerHandler, subscriptionHandler, catalogHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	appointmentHandler *api.AppointmentHandler,
	ledgerHandler *api.LedgerHandler,
	subscriptionHandler *api.SubscriptionHandler,
	catalogHandler *api.CatalogHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/healthz", healthCheck)

	v1 := engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: authHandler.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		users := v1.Group("/users")
		users.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(users, []route{
				{Method: http.MethodPost, Path: "", Handler: authHandler.CreateUser},
			})
		}

		appointments := v1.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			addRoutes(appointments, []route{
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.Create},
				{Method: http.MethodPost, Path: "/recurring", Handler: appointmentHandler.CreateRecurring},
				{Method: http.MethodGet, Path: "", Handler: appointmentHandler.ListByDay},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.Get},
				{Method: http.MethodPatch, Path: "/:id", Handler: appointmentHandler.Update},
				{Method: http.MethodDelete, Path: "/:id", Handler: appointmentHandler.Delete},
				{Method: http.MethodPut, Path: "/:id/payment", Handler: appointmentHandler.SetPaymentStatus},
				{Method: http.MethodPost, Path: "/:id/extra", Handler: appointmentHandler.AddExtraCharge},
				{Method: http.MethodPut, Path: "/:id/extra/payment", Handler: appointmentHandler.PayExtraCharge},
			})
		}

		ledger := v1.Group("/locations/:id/ledger")
		ledger.Use(authMiddleware.RequireAuth())
		{
			managerGate := authMiddleware.RequireRoleAtLeast(user.RoleManager)
			adminGate := authMiddleware.RequireRoleAtLeast(user.RoleAdmin)
			addRoutes(ledger, []route{
				{Method: http.MethodGet, Path: "/balance", Handler: ledgerHandler.Balance},
				{Method: http.MethodGet, Path: "/statement", Handler: ledgerHandler.Statement},
				{Method: http.MethodPost, Path: "/transactions", Handler: ledgerHandler.Add, Mw: []gin.HandlerFunc{managerGate}},
				{Method: http.MethodPost, Path: "/close", Handler: ledgerHandler.Close, Mw: []gin.HandlerFunc{managerGate}},
				{Method: http.MethodDelete, Path: "/history", Handler: ledgerHandler.ClearHistory, Mw: []gin.HandlerFunc{adminGate}},
			})
		}

		subscriptions := v1.Group("/subscriptions")
		subscriptions.Use(authMiddleware.RequireAuth())
		{
			managerGate := authMiddleware.RequireRoleAtLeast(user.RoleManager)
			addRoutes(subscriptions, []route{
				{Method: http.MethodPost, Path: "", Handler: subscriptionHandler.Sell},
				{Method: http.MethodPut, Path: "/:id/payment", Handler: subscriptionHandler.Pay},
				{Method: http.MethodPost, Path: "/:id/consume", Handler: subscriptionHandler.Consume},
				{Method: http.MethodPost, Path: "/:id/refund", Handler: subscriptionHandler.Refund},
				{Method: http.MethodPost, Path: "/:id/renew", Handler: subscriptionHandler.Renew, Mw: []gin.HandlerFunc{managerGate}},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: subscriptionHandler.Cancel, Mw: []gin.HandlerFunc{managerGate}},
			})
		}

		services := v1.Group("/services")
		services.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleManager))
		{
			addRoutes(services, []route{
				{Method: http.MethodPut, Path: "/:id/price", Handler: catalogHandler.UpdatePrice},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
