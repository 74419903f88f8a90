package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"academy_backend/database"
	_ "academy_backend/docs"
	"academy_backend/internal/auth"
	"academy_backend/internal/config"
	"academy_backend/internal/email"
	"academy_backend/internal/handlers"
	"academy_backend/internal/logger"
	"academy_backend/internal/metrics"
	"academy_backend/internal/middleware"
	"academy_backend/internal/paymentprovider"
	"academy_backend/internal/repositories"
	"academy_backend/internal/routes"
	"academy_backend/internal/services"
	"academy_backend/internal/validator"
	"academy_backend/internal/workers"
	"academy_backend/pkg/apperrors"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	siteName        = "Continental Academy"
	shutdownTimeout = 10 * time.Second
)

// repositoryContainer - репозитории без состояния, общие для всех сервисов
type repositoryContainer struct {
	users     repositories.UserRepository
	programs  repositories.ProgramRepository
	courses   repositories.CourseRepository
	lessons   repositories.LessonRepository
	modules   repositories.ModuleRepository
	shop      repositories.ShopRepository
	content   repositories.ContentRepository
	analytics repositories.AnalyticsRepository
	payments  repositories.PaymentRepository
	tx        repositories.TxManager
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	apperrors.SetDebug(cfg.IsDevelopment())
	if err := initSentry(cfg); err != nil {
		logger.Error("Sentry init failed, continuing without it", "error", err)
	}
	defer sentry.Flush(2 * time.Second)

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database, cfg.Server.Env)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	defer sqlDB.Close()
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected")

	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.TokenTTL())
	if err != nil {
		logger.Fatal("Failed to init token manager", "error", err)
	}

	repos := initializeRepositories()
	serviceContainer := initializeServices(cfg, repos, tokens)

	if err := seedFirstAdmin(gormDB, cfg, serviceContainer.AuthService); err != nil {
		// Без администратора админка недоступна, сервер не запускаем
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, serviceContainer, middleware.NewAuthenticator(tokens, repos.users))

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if cfg.Stripe.APIKey != "" {
		workers.NewPaymentWorker(gormDB, serviceContainer.PaymentService, cfg.SweepInterval()).Start(workerCtx)
	}

	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      ginRouter,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("🚀 Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stopWorkers()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}

// SetupRouter собирает gin.Engine: middleware, /metrics, swagger и API.
func SetupRouter(
	cfg *config.Config,
	gormDB *gorm.DB,
	serviceContainer *services.ServiceContainer,
	authenticator *middleware.Authenticator,
) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(gormDB, cfg.Server.CORSOrigins)
	ginRouter.GET("/metrics", gin.WrapH(metrics.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.RegisterRoutes(ginRouter, appHandlers, authenticator)
	return ginRouter
}

func initializeRepositories() *repositoryContainer {
	return &repositoryContainer{
		users:     repositories.NewUserRepository(),
		programs:  repositories.NewProgramRepository(),
		courses:   repositories.NewCourseRepository(),
		lessons:   repositories.NewLessonRepository(),
		modules:   repositories.NewModuleRepository(),
		shop:      repositories.NewShopRepository(),
		content:   repositories.NewContentRepository(),
		analytics: repositories.NewAnalyticsRepository(),
		payments:  repositories.NewPaymentRepository(),
		tx:        repositories.NewTxManager(),
	}
}

func initializeServices(cfg *config.Config, repos *repositoryContainer, tokens *auth.TokenManager) *services.ServiceContainer {
	// Интерфейс остается nil, если ключ Stripe не задан: платежи отвечают 503
	var provider paymentprovider.Provider
	stripeProvider, err := paymentprovider.NewStripeProvider(paymentprovider.StripeConfig{
		APIKey:        cfg.Stripe.APIKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Timeout:       cfg.StripeTimeout(),
		APIURL:        cfg.Stripe.APIURL,
	})
	switch {
	case err == nil:
		provider = stripeProvider
	case errors.Is(err, paymentprovider.ErrNotConfigured):
		logger.Warn("STRIPE_API_KEY is not set. Payments are disabled.")
	default:
		logger.Fatal("Failed to init Stripe client", "error", err)
	}

	sender := email.NewSender(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUser,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	mailer := email.NewMailer(sender, siteName)

	hasher := auth.NewPasswordHasher(cfg.Password.BcryptCost)

	return &services.ServiceContainer{
		AuthService:      services.NewAuthService(repos.users, hasher, tokens),
		UserService:      services.NewUserService(repos.users, repos.courses),
		ProgramService:   services.NewProgramService(repos.programs, provider),
		CourseService:    services.NewCourseService(repos.courses, repos.lessons, repos.programs),
		ModuleService:    services.NewModuleService(repos.modules, repos.courses),
		ShopService:      services.NewShopService(repos.shop),
		ContentService:   services.NewContentService(repos.content),
		AnalyticsService: services.NewAnalyticsService(repos.analytics, repos.users),
		CheckoutService: services.NewCheckoutService(
			repos.programs, repos.shop, repos.payments, provider, cfg.WebhookURL(),
		),
		PaymentService: services.NewPaymentService(
			repos.payments, repos.users, repos.programs, repos.shop, repos.tx, provider, mailer,
		),
		SeedService: services.NewSeedService(repos.programs, repos.content, repos.tx),
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.MustNew())

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler: handlers.NewUserHandler(baseHandler, services.UserService),
		CatalogHandler: handlers.NewCatalogHandler(
			baseHandler, services.ProgramService, services.CourseService, services.ModuleService,
		),
		ShopHandler:      handlers.NewShopHandler(baseHandler, services.ShopService),
		ContentHandler:   handlers.NewContentHandler(baseHandler, services.ContentService),
		AnalyticsHandler: handlers.NewAnalyticsHandler(baseHandler, services.AnalyticsService),
		PaymentHandler:   handlers.NewPaymentHandler(baseHandler, services.CheckoutService, services.PaymentService),
		SeedHandler:      handlers.NewSeedHandler(baseHandler, services.SeedService),
	}
}

func initializeGinRouter(db *gorm.DB, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(corsOrigins))
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func initSentry(cfg *config.Config) error {
	if cfg.Sentry.DSN == "" {
		logger.Info("SENTRY_DSN not set, Sentry disabled")
		return nil
	}
	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Server.Env,
		AttachStacktrace: true,
	})
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	admin := cfg.Admin
	if admin.FirstAdminEmail == "" || admin.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := authService.EnsureAdmin(context.Background(), db, admin.FirstAdminEmail, admin.FirstAdminPassword, admin.FirstAdminName)
	if err != nil {
		return err
	}
	if created {
		logger.Info("✅ Successfully created first admin user", "email", admin.FirstAdminEmail)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "email", admin.FirstAdminEmail)
	}
	return nil
}
