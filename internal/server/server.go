// Package server contains the HTTP handlers and routing for the marketplace API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "gatormarket/docs" // swagger docs
	"gatormarket/internal/auth"
	"gatormarket/internal/cache"
	"gatormarket/internal/config"
	"gatormarket/internal/database"
	"gatormarket/internal/jobs"
	"gatormarket/internal/mailer"
	"gatormarket/internal/middleware"
	"gatormarket/internal/models"
	"gatormarket/internal/repository"
	"gatormarket/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	scheduler      *jobs.Scheduler

	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	guard    *auth.Guard

	authService         *service.AuthService
	verificationService *service.VerificationService
	imageService        *service.ImageService
	productService      *service.ProductService
	conversationService *service.ConversationService
	wishlistService     *service.WishlistService
	reviewService       *service.ReviewService
	reportService       *service.ReportService
	adminService        *service.AdminService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	redisClient, err := cache.Connect(context.Background(), cfg.RedisURL)
	if err != nil {
		middleware.Logger.Warn("continuing without redis", slog.String("error", err.Error()))
		redisClient = nil
	}

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	m, err := mailer.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("mailer setup failed: %w", err)
	}
	return newServer(cfg, db, redisClient, m), nil
}

func newServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, m mailer.Mailer) *Server {
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	conversationRepo := repository.NewConversationRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	reportRepo := repository.NewReportRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)

	uploadDir := cfg.ImageUploadDir
	if uploadDir == "" {
		uploadDir = service.DefaultImageUploadDir
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("gatormarket-api"),
		scheduler:      jobs.NewScheduler(middleware.Logger),
		userRepo:       userRepo,
		tokens:         tokens,
		guard:          auth.NewGuard(tokens, userRepo),
	}

	s.verificationService = service.NewVerificationService(db, userRepo, m, cfg)
	s.authService = service.NewAuthService(userRepo, reviewRepo, tokens, s.verificationService, cfg)
	s.imageService = service.NewImageService(service.NewDiskImageStore(uploadDir), productRepo, cfg)
	s.productService = service.NewProductService(productRepo, reviewRepo, s.imageService, cfg)
	s.conversationService = service.NewConversationService(db, conversationRepo, productRepo, userRepo)
	s.wishlistService = service.NewWishlistService(wishlistRepo, productRepo)
	s.reviewService = service.NewReviewService(reviewRepo, userRepo)
	s.reportService = service.NewReportService(reportRepo, userRepo, productRepo)
	s.adminService = service.NewAdminService(db, adminRepo, productRepo, reportRepo, userRepo, s.verificationService)
	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())
	app.Use(middleware.TracingMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New(helmet.Config{
		// Listing images are embedded by the frontend origin.
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				models.NewRateLimitedError("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "GatorMarket Backend Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	authRoutes := api.Group("/auth")
	authRoutes.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	authRoutes.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	authRoutes.Post("/refresh-token", s.AuthRequired(), s.RefreshToken)
	authRoutes.Get("/verify-token", s.AuthRequired(), s.VerifyToken)
	authRoutes.Get("/profile", s.AuthRequired(), s.GetProfile)
	authRoutes.Post("/logout", s.AuthRequired(), s.Logout)
	authRoutes.Get("/users/:id", s.GetPublicProfile)
	authRoutes.Get("/reviews/:id", s.GetSellerReviews)

	// Bookmarks are aliases over the wishlist.
	bookmarks := authRoutes.Group("/bookmarks", s.AuthRequired())
	bookmarks.Post("/", s.AddBookmark)
	bookmarks.Get("/", s.GetBookmarks)
	bookmarks.Get("/check/:productId", s.CheckBookmark)
	bookmarks.Delete("/:productId", s.RemoveBookmark)

	// Email verification
	verify := api.Group("/verify")
	verify.Post("/send", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "verify_send"), s.SendVerification)
	verify.Get("/confirm", s.ConfirmEmail)
	verify.Get("/delete-account", s.DeleteUnverifiedAccount)
	verify.Post("/get-token", middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "verify_token"), s.GetTokenAfterVerification)

	// Products: specific paths before /:id
	products := api.Group("/products")
	products.Get("/search", middleware.RateLimit(
		s.redis, 60, time.Minute, "search"), s.SearchProducts)
	products.Get("/images/:filename", s.ServeProductImage)
	products.Post("/upload-image", s.VerifiedRequired(), middleware.RateLimit(
		s.redis, 30, 10*time.Minute, "upload_image"), s.UploadProductImage)
	products.Post("/", s.VerifiedRequired(), middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "create_product"), s.CreateProduct)
	products.Put("/:id/mark-sold", s.VerifiedRequired(), s.MarkProductSold)
	products.Put("/:id", s.VerifiedRequired(), s.UpdateProduct)
	products.Delete("/:id", s.VerifiedRequired(), s.DeleteProduct)
	products.Get("/:id", s.GetProduct)

	api.Get("/categories", s.GetCategories)

	// Messaging
	messaging := api.Group("/messaging", s.AuthRequired())
	messaging.Get("/unread-count", s.GetUnreadCount)
	messaging.Get("/conversations", s.GetConversations)
	messaging.Post("/conversations", middleware.RateLimit(
		s.redis, 20, time.Minute, "start_conversation"), s.StartConversation)
	messaging.Get("/conversations/:id/messages", s.GetMessages)
	messaging.Post("/conversations/:id/messages", middleware.RateLimit(
		s.redis, 30, time.Minute, "send_message"), s.SendMessage)
	messaging.Post("/conversations/:id/read", s.MarkConversationRead)
	messaging.Get("/conversations/:id", s.GetConversation)

	// Wishlist
	wishlist := api.Group("/wishlist", s.AuthRequired())
	wishlist.Post("/add", s.AddToWishlist)
	wishlist.Delete("/remove/:productId", s.RemoveFromWishlist)
	wishlist.Get("/user", s.GetWishlist)
	wishlist.Get("/notifications", s.GetWishlistNotifications)
	wishlist.Put("/archive/:productId", s.ArchiveWishlistItem)
	wishlist.Get("/archived", s.GetArchivedWishlist)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Post("/", s.VerifiedRequired(), middleware.RateLimit(
		s.redis, 10, 10*time.Minute, "create_review"), s.CreateReview)
	reviews.Get("/:sellerId", s.GetReviews)

	// Reports
	reports := api.Group("/reports", s.AuthRequired())
	reports.Post("/users", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "report"), s.ReportUser)
	reports.Post("/listings", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "report"), s.ReportListing)

	// Admin routes
	admin := api.Group("/admin", s.AdminRequired())
	admin.Get("/products/pending", s.GetPendingProducts)
	admin.Put("/products/:id/moderate", s.ModerateProduct)
	admin.Get("/reports", s.GetListingReports)
	admin.Put("/reports/:id", s.UpdateReportStatus)
	admin.Get("/user-reports", s.GetUserReports)
	admin.Get("/actions", s.GetAdminActions)
	admin.Get("/dashboard", s.GetDashboard)
	admin.Get("/users", s.GetUsers)
	admin.Put("/users/:id/role", s.UpdateUserRole)
	admin.Put("/users/:id/status", s.UpdateUserStatus)
	admin.Post("/cleanup-unverified", s.CleanupUnverified)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis only backs rate
// limiting, so its absence degrades the service without failing readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	switch {
	case dbStatus != "healthy":
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	case redisStatus != "healthy":
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "GatorMarket API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// App builds the Fiber application with middleware and routes mounted.
func (s *Server) App() *fiber.App {
	if s.app != nil {
		return s.app
	}

	bodyLimitMB := s.config.ImageMaxUploadSizeMB
	if bodyLimitMB <= 0 {
		bodyLimitMB = service.DefaultImageMaxUploadSizeMB
	}

	app := fiber.New(fiber.Config{
		AppName: "GatorMarket API",
		// A listing may carry several images.
		BodyLimit: 5 * bodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	s.app = app
	return app
}

// Start schedules the cleanup sweep and serves HTTP until Shutdown.
func (s *Server) Start() error {
	app := s.App()

	if err := s.scheduler.AddSweep(s.config.SweepSchedule, s.verificationService); err != nil {
		return fmt.Errorf("invalid sweep schedule: %w", err)
	}
	s.scheduler.Start()

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	s.scheduler.Stop(ctx)
	s.verificationService.Wait()

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
