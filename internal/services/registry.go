package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService      AuthService
	UserService      UserService
	ProgramService   ProgramService
	CourseService    CourseService
	ModuleService    ModuleService
	ShopService      ShopService
	ContentService   ContentService
	AnalyticsService AnalyticsService
	CheckoutService  CheckoutService
	PaymentService   PaymentService
	SeedService      SeedService
}
