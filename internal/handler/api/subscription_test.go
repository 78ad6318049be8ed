//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/patas-felizes/grooming-api/internal/domain/user"
	"github.com/patas-felizes/grooming-api/internal/handler/api"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	apptest "github.com/patas-felizes/grooming-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubSubscriptionCommands struct {
	consumeErr error
	refundErr  error

	consumed []uuid.UUID
	refunded []uuid.UUID
}

func (s *stubSubscriptionCommands) Sell(context.Context, commands.SellSubscriptionRequest) (*commands.SellResult, error) {
	return &commands.SellResult{SubscriptionID: uuid.New()}, nil
}

func (s *stubSubscriptionCommands) Pay(context.Context, uuid.UUID, uuid.UUID, string, uuid.UUID) error {
	return nil
}

func (s *stubSubscriptionCommands) Consume(_ context.Context, id uuid.UUID) error {
	if s.consumeErr != nil {
		return s.consumeErr
	}
	s.consumed = append(s.consumed, id)
	return nil
}

func (s *stubSubscriptionCommands) Refund(_ context.Context, id uuid.UUID) error {
	if s.refundErr != nil {
		return s.refundErr
	}
	s.refunded = append(s.refunded, id)
	return nil
}

func (s *stubSubscriptionCommands) Renew(context.Context, uuid.UUID, int, int64) error {
	return nil
}

func (s *stubSubscriptionCommands) Cancel(context.Context, uuid.UUID) error {
	return nil
}

func newSubscriptionRouter(cmds commands.SubscriptionCommands) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := api.NewSubscriptionHandler(cmds)
	auth := middleware.NewAuthMiddleware(&stubTokenValidator{userID: uuid.New(), role: user.RoleGroomer})

	r := gin.New()
	g := r.Group("/api/v1/subscriptions", auth.RequireAuth())
	g.POST("/:id/consume", h.Consume)
	g.POST("/:id/refund", h.Refund)
	return r
}

func TestSubscriptionCreditHandlers(t *testing.T) {
	t.Run("consume spends a credit and returns no content", func(t *testing.T) {
		stub := &stubSubscriptionCommands{}
		r := newSubscriptionRouter(stub)
		subID := uuid.New()

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/subscriptions/"+subID.String()+"/consume", nil, "sometoken")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []uuid.UUID{subID}, stub.consumed)
	})

	t.Run("consuming an exhausted grant conflicts", func(t *testing.T) {
		r := newSubscriptionRouter(&stubSubscriptionCommands{consumeErr: commands.ErrCreditsExhausted})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/subscriptions/"+uuid.NewString()+"/consume", nil, "sometoken")

		apptest.AssertErrorResponse(t, w, http.StatusConflict, "No subscription credits remaining")
	})

	t.Run("refund returns a credit and returns no content", func(t *testing.T) {
		stub := &stubSubscriptionCommands{}
		r := newSubscriptionRouter(stub)
		subID := uuid.New()

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/subscriptions/"+subID.String()+"/refund", nil, "sometoken")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, []uuid.UUID{subID}, stub.refunded)
	})

	t.Run("unknown subscription", func(t *testing.T) {
		r := newSubscriptionRouter(&stubSubscriptionCommands{refundErr: commands.ErrSubscriptionNotFound})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/subscriptions/"+uuid.NewString()+"/refund", nil, "sometoken")

		apptest.AssertErrorResponse(t, w, http.StatusNotFound, "Subscription not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		r := newSubscriptionRouter(&stubSubscriptionCommands{})

		w := apptest.PerformRequest(t, r, http.MethodPost, "/api/v1/subscriptions/not-a-uuid/consume", nil, "sometoken")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
