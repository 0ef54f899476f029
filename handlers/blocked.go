package handlers

import (
	"net/http"
	"time"

	"timerange/models"
	"timerange/services/timerange"

	"github.com/gin-gonic/gin"
)

// BlockedHandler manages the blocked intervals of calendars.
type BlockedHandler struct {
	Service timerange.BlockedService
}

func NewBlockedHandler(svc timerange.BlockedService) *BlockedHandler {
	return &BlockedHandler{Service: svc}
}

func (h *BlockedHandler) CreateBlockedHandler(c *gin.Context) {
	var req models.CreateBlockedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	block, err := h.Service.AddBlocked(c.Request.Context(), c.Param("calendarID"), req)
	if err != nil {
		respondError(c, "Failed to block interval", err)
		return
	}
	c.JSON(http.StatusCreated, block)
}

// ListBlockedHandler lists the blocks overlapping ?from=&to= (RFC 3339).
func (h *BlockedHandler) ListBlockedHandler(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid from", "message": err.Error()})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid to", "message": err.Error()})
		return
	}
	blocks, err := h.Service.ListBlocked(c.Request.Context(), c.Param("calendarID"), from, to)
	if err != nil {
		respondError(c, "Failed to fetch blocked intervals", err)
		return
	}
	if blocks == nil {
		blocks = []models.BlockedInterval{}
	}
	c.JSON(http.StatusOK, gin.H{"blocked": blocks})
}

func (h *BlockedHandler) DeleteBlockedHandler(c *gin.Context) {
	if err := h.Service.DeleteBlocked(c.Request.Context(), c.Param("calendarID"), c.Param("blockID")); err != nil {
		respondError(c, "Failed to delete blocked interval", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Blocked interval deleted"})
}
