package routes

import (
	"academy_backend/internal/handlers"
	"academy_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupPublicRoutes - маршруты без обязательной авторизации
func SetupPublicRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authenticator *middleware.Authenticator) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.AuthHandler.Register)
		auth.POST("/login", h.AuthHandler.Login)
	}

	// 📚 Каталог
	r.GET("/programs", h.CatalogHandler.ListPrograms)
	r.GET("/programs/:id", h.CatalogHandler.GetProgram)
	r.GET("/courses", h.CatalogHandler.ListCourses)
	r.GET("/modules", h.CatalogHandler.ListModules)

	// 🛒 Магазин
	r.GET("/shop/products", h.ShopHandler.ListProducts)
	r.GET("/shop/products/:id", h.ShopHandler.GetProduct)

	// 📝 Контент
	r.GET("/faqs", h.ContentHandler.ListFAQs)
	r.GET("/results", h.ContentHandler.ListResults)
	r.GET("/settings", h.ContentHandler.GetSettings)

	// 📈 Аналитика (токен необязателен)
	r.POST("/analytics/event", authenticator.OptionalAuth(), h.AnalyticsHandler.TrackEvent)

	// 💳 Stripe вызывает без токена, подпись проверяет сервис
	r.POST("/webhook/stripe", h.PaymentHandler.StripeWebhook)
}
