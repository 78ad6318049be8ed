package api

import (
	"errors"
	"net/http"

	reqdto "github.com/patas-felizes/grooming-api/internal/handler/dto/request"
	"github.com/patas-felizes/grooming-api/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogCommands commands.CatalogCommands
}

func NewCatalogHandler(catalogCommands commands.CatalogCommands) *CatalogHandler {
	return &CatalogHandler{
		catalogCommands: catalogCommands,
	}
}

func (h *CatalogHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req reqdto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err := h.catalogCommands.UpdatePrice(c.Request.Context(), id, req.PriceCents)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrServiceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Service not found",
			})
		case errors.Is(err, commands.ErrNegativePrice):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Price must not be negative",
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
