package routes

import (
	"academy_backend/internal/handlers"
	"academy_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAdminRoutes(r *gin.RouterGroup, h *handlers.AppHandlers, authenticator *middleware.Authenticator) {
	admin := r.Group("/admin")
	admin.Use(authenticator.RequireAdmin())
	{
		// 📋 Users
		admin.GET("/users", h.UserHandler.ListUsers)
		admin.GET("/users/:id", h.UserHandler.GetUser)
		admin.PUT("/users/:id/role", h.UserHandler.UpdateRole)
		admin.PUT("/users/:id/subscriptions", h.UserHandler.SetSubscriptions)
		admin.GET("/users/:id/courses", h.UserHandler.GetCourses)
		admin.PUT("/users/:id/courses", h.UserHandler.SetCourses)
		admin.POST("/users/:id/courses/add", h.UserHandler.AddCourse)
		admin.DELETE("/users/:id/courses/remove", h.UserHandler.RemoveCourse)
		admin.POST("/users/:id/courses/:course_id", h.UserHandler.AddCourse)
		admin.DELETE("/users/:id/courses/:course_id", h.UserHandler.RemoveCourse)

		// 📚 Programs
		admin.GET("/programs", h.CatalogHandler.AdminListPrograms)
		admin.POST("/programs", h.CatalogHandler.CreateProgram)
		admin.PUT("/programs/:id", h.CatalogHandler.UpdateProgram)
		admin.DELETE("/programs/:id", h.CatalogHandler.DeleteProgram)

		// 🎓 Courses & lessons
		admin.GET("/courses", h.CatalogHandler.AdminListCourses)
		admin.POST("/courses", h.CatalogHandler.CreateCourse)
		admin.PUT("/courses/:id", h.CatalogHandler.UpdateCourse)
		admin.DELETE("/courses/:id", h.CatalogHandler.DeleteCourse)

		admin.POST("/lessons", h.CatalogHandler.CreateLesson)
		admin.PUT("/lessons/reorder", h.CatalogHandler.ReorderLessons)
		admin.PUT("/lessons/:id", h.CatalogHandler.UpdateLesson)
		admin.DELETE("/lessons/:id", h.CatalogHandler.DeleteLesson)

		// 🎬 Modules & videos
		admin.POST("/modules", h.CatalogHandler.CreateModule)
		admin.PUT("/modules/:id", h.CatalogHandler.UpdateModule)
		admin.DELETE("/modules/:id", h.CatalogHandler.DeleteModule)
		admin.POST("/videos", h.CatalogHandler.CreateVideo)
		admin.PUT("/videos/:id", h.CatalogHandler.UpdateVideo)
		admin.DELETE("/videos/:id", h.CatalogHandler.DeleteVideo)

		// 🛒 Shop
		admin.GET("/shop/products", h.ShopHandler.AdminListProducts)
		admin.POST("/shop/products", h.ShopHandler.CreateProduct)
		admin.PUT("/shop/products/:id", h.ShopHandler.UpdateProduct)
		admin.DELETE("/shop/products/:id", h.ShopHandler.DeleteProduct)

		// 📝 Content
		admin.POST("/faqs", h.ContentHandler.CreateFAQ)
		admin.PUT("/faqs/:id", h.ContentHandler.UpdateFAQ)
		admin.DELETE("/faqs/:id", h.ContentHandler.DeleteFAQ)
		admin.POST("/results", h.ContentHandler.CreateResult)
		admin.DELETE("/results/:id", h.ContentHandler.DeleteResult)
		admin.PUT("/settings", h.ContentHandler.UpdateSettings)

		// 📈 Analytics & seed
		admin.GET("/analytics", h.AnalyticsHandler.GetDashboard)
		admin.POST("/seed", h.SeedHandler.Seed)
	}
}
