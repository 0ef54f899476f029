package handlers

import (
	"net/http"
	"strconv"

	"timerange/models"
	"timerange/services/timerange"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes interactive picker sessions.
type SessionHandler struct {
	Service timerange.SessionService
}

func NewSessionHandler(svc timerange.SessionService) *SessionHandler {
	return &SessionHandler{Service: svc}
}

func (h *SessionHandler) CreateSessionHandler(c *gin.Context) {
	var req models.SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	view, err := h.Service.CreateSession(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create session", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *SessionHandler) GetSessionHandler(c *gin.Context) {
	view, err := h.Service.GetSession(c.Param("sessionID"))
	if err != nil {
		respondError(c, "Failed to fetch session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) RefreshSessionHandler(c *gin.Context) {
	view, err := h.Service.RefreshSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondError(c, "Failed to refresh session", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *SessionHandler) DragStartHandler(c *gin.Context) {
	view, err := h.Service.DragStart(c.Param("sessionID"))
	if err != nil {
		respondError(c, "Failed to start drag", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// DragMoveHandler answers every intermediate move with {"error": bool}.
func (h *SessionHandler) DragMoveHandler(c *gin.Context) {
	var req models.DragMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	update, err := h.Service.DragMove(c.Param("sessionID"), req.Values[0], req.Values[1])
	if err != nil {
		respondError(c, "Failed to move", err)
		return
	}
	c.JSON(http.StatusOK, update)
}

func (h *SessionHandler) DragEndHandler(c *gin.Context) {
	change, err := h.Service.DragEnd(c.Param("sessionID"))
	if err != nil {
		respondError(c, "Failed to end drag", err)
		return
	}
	c.JSON(http.StatusOK, change)
}

func (h *SessionHandler) HoverHandler(c *gin.Context) {
	percent, err := strconv.ParseFloat(c.Query("percent"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid percent"})
		return
	}
	hover, err := h.Service.Hover(c.Param("sessionID"), percent)
	if err != nil {
		respondError(c, "Failed to compute tooltip", err)
		return
	}
	c.JSON(http.StatusOK, hover)
}

func (h *SessionHandler) DeleteSessionHandler(c *gin.Context) {
	if err := h.Service.DeleteSession(c.Param("sessionID")); err != nil {
		respondError(c, "Failed to delete session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}
