package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler      *AuthHandler
	UserHandler      *UserHandler
	CatalogHandler   *CatalogHandler
	ShopHandler      *ShopHandler
	ContentHandler   *ContentHandler
	AnalyticsHandler *AnalyticsHandler
	PaymentHandler   *PaymentHandler
	SeedHandler      *SeedHandler
}
