package routes

import (
	"net/http"

	"academy_backend/internal/handlers"
	"academy_backend/internal/logger"
	"academy_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты под /api.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authenticator *middleware.Authenticator,
) {
	api := ginRouter.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		SetupPublicRoutes(api, appHandlers, authenticator)
		SetupCommonRoutes(api, appHandlers, authenticator)
		SetupAdminRoutes(api, appHandlers, authenticator)
	}
	logger.Info("HTTP routes registered", "routes", len(ginRouter.Routes()))
}
