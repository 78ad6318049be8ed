package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "github.com/patas-felizes/grooming-api/internal/handler/dto/request"
	resdto "github.com/patas-felizes/grooming-api/internal/handler/dto/response"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentCommands commands.AppointmentCommands
	paymentCommands     commands.PaymentCommands
	appointmentQueries  queries.AppointmentQueries
}

func NewAppointmentHandler(
	appointmentCommands commands.AppointmentCommands,
	paymentCommands commands.PaymentCommands,
	appointmentQueries queries.AppointmentQueries,
) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentCommands: appointmentCommands,
		paymentCommands:     paymentCommands,
		appointmentQueries:  appointmentQueries,
	}
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmdReq, ok := h.toCreateRequest(c, req)
	if !ok {
		return
	}

	result, err := h.appointmentCommands.Create(c.Request.Context(), cmdReq)
	if err != nil {
		h.renderCreateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateResult(result))
}

func (h *AppointmentHandler) CreateRecurring(c *gin.Context) {
	var req reqdto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmdReq, ok := h.toCreateRequest(c, req)
	if !ok {
		return
	}

	result, err := h.appointmentCommands.CreateRecurring(c.Request.Context(), cmdReq, req.Weeks)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidRecurrence):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Recurrence weeks must be positive",
			})
		default:
			h.renderCreateError(c, err)
		}
		return
	}

	// Partial batches are still a success: the body reports created vs failed
	c.JSON(http.StatusOK, resdto.FromBatchResult(result))
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	result, err := h.appointmentCommands.Update(c.Request.Context(), id, commands.UpdateAppointmentRequest{
		Date:               date,
		StartMinutes:       req.StartMinutes,
		DurationMinutes:    req.DurationMinutes,
		PetNames:           req.PetNames,
		ServiceIDs:         req.ServiceIDs,
		DiscountOffCents:   req.DiscountOffCents,
		DiscountPercentOff: req.DiscountPercentOff,
		ClearDiscount:      req.ClearDiscount,
		Notes:              req.Notes,
	})
	if err != nil {
		h.renderCreateError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCreateResult(result))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	refunded, err := h.appointmentCommands.Delete(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"refunded_credit": refunded})
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	view, err := h.appointmentQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}

func (h *AppointmentHandler) ListByDay(c *gin.Context) {
	locationID, err := uuid.Parse(c.Query("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location_id",
		})
		return
	}

	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	items, err := h.appointmentQueries.ListByDay(c.Request.Context(), locationID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp := make([]*resdto.AppointmentListResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, resdto.FromAppointmentListItem(it))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AppointmentHandler) SetPaymentStatus(c *gin.Context) {
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

	var req reqdto.SetPaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.paymentCommands.SetPaymentStatus(c.Request.Context(), id, req.Paid, req.Method, actorID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, commands.ErrMissingPaymentMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Payment method is required when marking as paid",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

func (h *AppointmentHandler) AddExtraCharge(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.AddExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.paymentCommands.AddExtraCharge(c.Request.Context(), id, req.Description, req.AmountCents)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid extra charge",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) PayExtraCharge(c *gin.Context) {
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

	var req reqdto.PayExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.paymentCommands.PayExtraCharge(c.Request.Context(), id, req.Method, actorID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No extra charge to pay",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) toCreateRequest(c *gin.Context, req reqdto.CreateAppointmentRequest) (commands.CreateAppointmentRequest, bool) {
	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return commands.CreateAppointmentRequest{}, false
	}

	return commands.CreateAppointmentRequest{
		LocationID:         req.LocationID,
		ClientID:           req.ClientID,
		PetID:              req.PetID,
		PetNames:           req.PetNames,
		Date:               date,
		StartMinutes:       req.StartMinutes,
		DurationMinutes:    req.DurationMinutes,
		ServiceIDs:         req.ServiceIDs,
		DiscountOffCents:   req.DiscountOffCents,
		DiscountPercentOff: req.DiscountPercentOff,
		SubscriptionID:     req.SubscriptionID,
		Notes:              req.Notes,
	}, true
}

func (h *AppointmentHandler) renderCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrAppointmentNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Appointment not found",
		})
	case errors.Is(err, commands.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Service not found",
		})
	case errors.Is(err, commands.ErrSubscriptionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Subscription not found",
		})
	case errors.Is(err, commands.ErrCreditsExhausted):
		c.JSON(http.StatusConflict, gin.H{
			"error": "No subscription credits remaining",
		})
	case errors.Is(err, errs.ErrDomainValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid id",
		})
		return uuid.Nil, false
	}
	return id, true
}
