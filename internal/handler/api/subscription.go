package api

import (
	"errors"
	"net/http"

	reqdto "github.com/patas-felizes/grooming-api/internal/handler/dto/request"
	resdto "github.com/patas-felizes/grooming-api/internal/handler/dto/response"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionCommands commands.SubscriptionCommands
}

func NewSubscriptionHandler(subscriptionCommands commands.SubscriptionCommands) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionCommands: subscriptionCommands,
	}
}

func (h *SubscriptionHandler) Sell(c *gin.Context) {
	var req reqdto.SellSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.subscriptionCommands.Sell(c.Request.Context(), commands.SellSubscriptionRequest{
		ClientID:     req.ClientID,
		PlanID:       req.PlanID,
		PlanQuantity: req.PlanQuantity,
		TotalCredits: req.TotalCredits,
		ValueCents:   req.ValueCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid subscription data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.SellSubscriptionResponse{ID: result.SubscriptionID})
}

func (h *SubscriptionHandler) Pay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.PaySubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.subscriptionCommands.Pay(c.Request.Context(), id, req.LocationID, req.Method, actorID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Consume spends one credit outside the booking flow, covering walk-in
// visits redeemed directly at the counter.
func (h *SubscriptionHandler) Consume(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.subscriptionCommands.Consume(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) Refund(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.subscriptionCommands.Refund(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) Renew(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.RenewSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.subscriptionCommands.Renew(c.Request.Context(), id, req.TotalCredits, req.ValueCents)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.subscriptionCommands.Cancel(c.Request.Context(), id); err != nil {
		h.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *SubscriptionHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Subscription not found",
		})
	case errors.Is(err, commands.ErrCreditsExhausted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No subscription credits remaining",
		})
	case errors.Is(err, commands.ErrLocationRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Location is required for cash payments",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid subscription data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
