package routes

import (
	"academy_backend/internal/handlers"
	"academy_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCommonRoutes - маршруты для любого авторизованного пользователя
func SetupCommonRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authenticator *middleware.Authenticator) {
	authed := r.Group("")
	authed.Use(authenticator.RequireAuth())
	{
		authed.GET("/auth/me", h.AuthHandler.Me)

		// 🎓 Учебные материалы
		authed.GET("/courses/:id", h.CatalogHandler.GetCourse)
		authed.GET("/lessons/:course_id", h.CatalogHandler.ListLessons)
		authed.GET("/lesson/:id", h.CatalogHandler.GetLesson)
		authed.GET("/modules/:id/videos", h.CatalogHandler.ListModuleVideos)
		authed.GET("/videos/:id", h.CatalogHandler.GetVideo)

		// 💳 Платежи
		payments := authed.Group("/payments")
		{
			payments.POST("/checkout/subscription", h.PaymentHandler.CheckoutSubscription)
			payments.POST("/checkout/product", h.PaymentHandler.CheckoutProduct)
			payments.GET("/status/:session_id", h.PaymentHandler.GetStatus)
			payments.GET("/history", h.PaymentHandler.GetHistory)
		}
	}
}
