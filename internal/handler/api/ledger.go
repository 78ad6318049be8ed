package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "github.com/patas-felizes/grooming-api/internal/handler/dto/request"
	resdto "github.com/patas-felizes/grooming-api/internal/handler/dto/response"
	"github.com/patas-felizes/grooming-api/internal/handler/middleware"
	"github.com/patas-felizes/grooming-api/internal/pkg/errs"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"
	"github.com/patas-felizes/grooming-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerCommands commands.LedgerCommands
	ledgerQueries  queries.LedgerQueries
}

func NewLedgerHandler(ledgerCommands commands.LedgerCommands, ledgerQueries queries.LedgerQueries) *LedgerHandler {
	return &LedgerHandler{
		ledgerCommands: ledgerCommands,
		ledgerQueries:  ledgerQueries,
	}
}

func (h *LedgerHandler) Balance(c *gin.Context) {
	locationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	balance, err := h.ledgerQueries.Balance(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BalanceResponse{
		LocationID:   locationID,
		BalanceCents: balance,
	})
}

func (h *LedgerHandler) Statement(c *gin.Context) {
	locationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit",
			})
			return
		}
		limit = parsed
	}

	views, err := h.ledgerQueries.Statement(c.Request.Context(), locationID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp := make([]*resdto.TransactionResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, resdto.FromTransactionView(v))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LedgerHandler) Add(c *gin.Context) {
	locationID, ok := parseIDParam(c)
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

	var req reqdto.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.ledgerCommands.Add(c.Request.Context(), commands.AddTransactionRequest{
		LocationID:  locationID,
		AmountCents: req.AmountCents,
		Description: req.Description,
		ActorID:     actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLocationRequired),
			errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid transaction data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

func (h *LedgerHandler) Close(c *gin.Context) {
	locationID, ok := parseIDParam(c)
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

	result, err := h.ledgerCommands.Close(c.Request.Context(), locationID, actorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCloseResult(result))
}

func (h *LedgerHandler) ClearHistory(c *gin.Context) {
	locationID, ok := parseIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.ledgerCommands.ClearHistory(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.ClearHistoryResponse{DeletedCount: deleted})
}
