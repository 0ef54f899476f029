package routes

import (
	"time"

	"timerange/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterSessionRoutes sets up the interactive picker endpoints. limit guards
// session creation and the high-frequency drag endpoints.
func RegisterSessionRoutes(r *gin.Engine, hb *handlers.HandlerBundle, limit ...gin.HandlerFunc) {
	create := append(append([]gin.HandlerFunc{}, limit...), hb.CreateSession)

	sessions := r.Group("/api/sessions")
	{
		sessions.POST("", create...)
		sessions.GET("/:sessionID", hb.GetSession)
		sessions.POST("/:sessionID/refresh", hb.RefreshSession)
		sessions.GET("/:sessionID/hover", hb.Hover)
		sessions.DELETE("/:sessionID", hb.DeleteSession)

		dragGroup := sessions.Group("/:sessionID/drag", limit...)
		dragGroup.POST("/start", hb.DragStart)
		dragGroup.POST("/move", hb.DragMove)
		dragGroup.POST("/end", hb.DragEnd)
	}
}

// RegisterCalendarRoutes sets up blocked interval management.
func RegisterCalendarRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	calendars := r.Group("/api/calendars/:calendarID")
	{
		calendars.POST("/blocked", hb.CreateBlocked)
		calendars.GET("/blocked", hb.ListBlocked)
		calendars.DELETE("/blocked/:blockID", hb.DeleteBlocked)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, limit ...gin.HandlerFunc) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, hb)
	RegisterSessionRoutes(r, hb, limit...)
	RegisterCalendarRoutes(r, hb)
	r.GET("/api/ticks", hb.Ticks)
}
