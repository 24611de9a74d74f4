package routes

import (
	"synergy-shop/internal/adapters/http/handlers"
	"synergy-shop/internal/adapters/http/middleware"
	"synergy-shop/internal/adapters/persistence/repositories"
	"synergy-shop/internal/config"
	"synergy-shop/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	productRepo := repositories.NewProductRepository(db)
	couponRepo := repositories.NewCouponRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	commissionRepo := repositories.NewCommissionRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	addressRepo := repositories.NewAddressRepository(db)
	bankAccountRepo := repositories.NewBankAccountRepository(db)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, addressRepo, bankAccountRepo)
	productService := services.NewProductService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, couponRepo, userRepo)
	commissionService := services.NewCommissionService(db, commissionRepo, userRepo, notificationService)
	orderService := services.NewOrderService(
		db,
		orderRepo,
		cartRepo,
		userRepo,
		addressRepo,
		couponRepo,
		commissionService,
		notificationService,
	)
	walletService := services.NewWalletService(db, commissionRepo, userRepo, bankAccountRepo, notificationService)
	kycService := services.NewKycService(userRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	walletHandler := handlers.NewWalletHandler(walletService, commissionService)
	kycHandler := handlers.NewKycHandler(kycService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public + protected)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Product catalog (public, cached)
	productRoutes := apiV1.Group("/products")
	productRoutes.Use(middleware.CatalogCache())
	productRoutes.Get("/", productHandler.List)
	productRoutes.Get("/:id", productHandler.Get)

	// Cart routes (authenticated)
	cartRoutes := apiV1.Group("/cart")
	cartRoutes.Use(middleware.AuthMiddleware(cfg))
	setupCartRoutes(cartRoutes, cartHandler)

	// Order routes (authenticated)
	orderRoutes := apiV1.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware(cfg))
	orderRoutes.Post("/checkout", orderHandler.Checkout)
	orderRoutes.Get("/", orderHandler.List)
	orderRoutes.Get("/:id", orderHandler.Get)

	// Wallet routes (authenticated)
	walletRoutes := apiV1.Group("/wallet")
	walletRoutes.Use(middleware.AuthMiddleware(cfg))
	walletRoutes.Use(middleware.NoCacheHeaders())
	walletRoutes.Get("/", walletHandler.Summary)
	walletRoutes.Get("/transactions", walletHandler.Transactions)
	walletRoutes.Get("/withdraw/quote", walletHandler.Quote)
	walletRoutes.Post("/withdraw", walletHandler.Withdraw)

	// User routes (authenticated)
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	setupUserRoutes(userRoutes, userHandler)

	// KYC routes (authenticated, strict rate limit)
	kycRoutes := apiV1.Group("/kyc")
	kycRoutes.Use(middleware.AuthMiddleware(cfg))
	kycRoutes.Post("/request", middleware.StrictRateLimiter(), kycHandler.Request)
	kycRoutes.Post("/confirm", kycHandler.Confirm)

	// Notification routes (authenticated)
	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(middleware.AuthMiddleware(cfg))
	notificationRoutes.Get("/", notificationHandler.List)
	notificationRoutes.Patch("/:id/read", notificationHandler.MarkRead)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.AdminOnly())
	setupAdminRoutes(adminRoutes, productHandler, orderHandler, walletHandler, notificationHandler, dashboardHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (rate limited)
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
	router.Post("/pin", middleware.AuthMiddleware(cfg), handler.SetPin)
}

// setupCartRoutes configures cart routes
func setupCartRoutes(router fiber.Router, handler *handlers.CartHandler) {
	router.Get("/", handler.Get)
	router.Post("/items", handler.AddItem)
	router.Put("/items/:productId", handler.UpdateItem)
	router.Delete("/items/:productId", handler.RemoveItem)
	router.Post("/coupon", handler.ApplyCoupon)
	router.Delete("/coupon", handler.RemoveCoupon)
}

// setupUserRoutes configures profile, address, bank account and referral routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Post("/referrer", handler.SetReferrer)
	router.Get("/referral", handler.ReferralStats)

	router.Get("/addresses", handler.ListAddresses)
	router.Post("/addresses", handler.AddAddress)
	router.Patch("/addresses/:id/default", handler.SetDefaultAddress)
	router.Delete("/addresses/:id", handler.DeleteAddress)

	router.Get("/bank-accounts", handler.ListBankAccounts)
	router.Post("/bank-accounts", handler.AddBankAccount)
	router.Delete("/bank-accounts/:id", handler.DeleteBankAccount)
}

// setupAdminRoutes configures admin-only routes
func setupAdminRoutes(
	router fiber.Router,
	productHandler *handlers.ProductHandler,
	orderHandler *handlers.OrderHandler,
	walletHandler *handlers.WalletHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
) {
	router.Get("/dashboard", dashboardHandler.Stats)

	router.Post("/products", productHandler.Create)
	router.Put("/products/:id", productHandler.Update)

	router.Get("/orders", orderHandler.ListAll)
	router.Patch("/orders/:id/status", orderHandler.UpdateStatus)

	router.Get("/withdrawals", walletHandler.ListWithdrawals)
	router.Post("/withdrawals/:id/complete", walletHandler.CompleteWithdrawal)

	router.Post("/notifications/broadcast", notificationHandler.Broadcast)
}
