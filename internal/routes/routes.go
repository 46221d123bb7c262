package routes

import (
	"nepshift_backend/internal/handlers"
	"nepshift_backend/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API and the websocket endpoint.
func RegisterRoutes(router *gin.Engine, appHandlers *handlers.AppHandlers, wsHandler *ws.Handler) {
	api := router.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Verification.RegisterRoutes(api)
		appHandlers.Profile.RegisterRoutes(api)
		appHandlers.Shift.RegisterRoutes(api)
		appHandlers.Review.RegisterRoutes(api)
		appHandlers.Chat.RegisterRoutes(api)
		appHandlers.Admin.RegisterRoutes(api)
		appHandlers.File.RegisterRoutes(api)
	}

	// the ws endpoint authenticates inside ServeWS (header or token query param)
	router.GET("/ws", wsHandler.ServeWS)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
