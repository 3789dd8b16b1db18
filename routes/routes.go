package routes

import (
	"time"

	"citaflow/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPanelRoutes registers all endpoints for the booking panel engine.
func RegisterPanelRoutes(r *gin.Engine, panel *handlers.PanelHandler) {
	api := r.Group("/api/panel")
	{
		api.POST("", panel.OpenPanel)
		api.PATCH("/:sessionID/selection", panel.ChangeSelection)
		api.POST("/:sessionID/slot", panel.PickSlot)
		api.GET("/:sessionID/validation", panel.ValidationState)
		api.POST("/:sessionID/confirm", panel.ConfirmSlot)
		api.DELETE("/:sessionID", panel.ClosePanel)
	}
}

// RegisterCalendarRoutes registers the calendar resolution endpoints.
func RegisterCalendarRoutes(r *gin.Engine) {
	api := r.Group("/api/calendar")
	{
		api.GET("/month", handlers.ResolveMonthCalendar)
		api.GET("/week", handlers.ResolveWeekCalendar)
	}
}

// RegisterHealthRoute registers the health endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, panel *handlers.PanelHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPanelRoutes(r, panel)
	RegisterCalendarRoutes(r)
	RegisterHealthRoute(r)
}
