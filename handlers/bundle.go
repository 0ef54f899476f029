// File: timerange/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Session endpoints
	CreateSession  gin.HandlerFunc
	GetSession     gin.HandlerFunc
	RefreshSession gin.HandlerFunc
	DragStart      gin.HandlerFunc
	DragMove       gin.HandlerFunc
	DragEnd        gin.HandlerFunc
	Hover          gin.HandlerFunc
	DeleteSession  gin.HandlerFunc

	// Blocked interval endpoints
	CreateBlocked gin.HandlerFunc
	ListBlocked   gin.HandlerFunc
	DeleteBlocked gin.HandlerFunc

	// Stateless endpoints
	Ticks  gin.HandlerFunc
	Health gin.HandlerFunc
}

// NewHandlerBundle wires the session and blocked handlers into a bundle.
func NewHandlerBundle(sh *SessionHandler, bh *BlockedHandler, health gin.HandlerFunc) *HandlerBundle {
	return &HandlerBundle{
		CreateSession:  sh.CreateSessionHandler,
		GetSession:     sh.GetSessionHandler,
		RefreshSession: sh.RefreshSessionHandler,
		DragStart:      sh.DragStartHandler,
		DragMove:       sh.DragMoveHandler,
		DragEnd:        sh.DragEndHandler,
		Hover:          sh.HoverHandler,
		DeleteSession:  sh.DeleteSessionHandler,

		CreateBlocked: bh.CreateBlockedHandler,
		ListBlocked:   bh.ListBlockedHandler,
		DeleteBlocked: bh.DeleteBlockedHandler,

		Ticks:  TicksHandler,
		Health: health,
	}
}
