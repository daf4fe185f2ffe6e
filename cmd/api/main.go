package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tutorhub/tutorhub-api/config"
	"github.com/tutorhub/tutorhub-api/internal/cache"
	"github.com/tutorhub/tutorhub-api/internal/database/filestore"
	"github.com/tutorhub/tutorhub-api/internal/database/postgres"
	"github.com/tutorhub/tutorhub-api/internal/handlers"
	"github.com/tutorhub/tutorhub-api/internal/middleware"
	"github.com/tutorhub/tutorhub-api/internal/models"
	"github.com/tutorhub/tutorhub-api/internal/repository"
	"github.com/tutorhub/tutorhub-api/internal/services"
	"github.com/tutorhub/tutorhub-api/pkg/db"
	"github.com/tutorhub/tutorhub-api/pkg/logger"
	"github.com/tutorhub/tutorhub-api/pkg/metrics"
	"github.com/tutorhub/tutorhub-api/pkg/profiling"
	"github.com/tutorhub/tutorhub-api/pkg/retry"
	"github.com/tutorhub/tutorhub-api/pkg/tracing"
)

// dataSources bundles one persistence implementation per entity store
type dataSources struct {
	schedule     repository.ScheduleDataSource
	booking      repository.BookingDataSource
	session      repository.SessionDataSource
	notification repository.NotificationDataSource
	directory    repository.DirectoryDataSource
	ping         func() error
	close        func()
}

// buildDataSources selects the storage backend from configuration
func buildDataSources(cfg *config.Config) (*dataSources, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pool, err := retry.DoWithResult(context.Background(), retry.DatabaseConfig(), "connect database", func() (*pgxpool.Pool, error) {
			return db.NewPool(context.Background(), db.PoolConfig{
				URL:      cfg.Database.URL,
				MaxConns: cfg.Database.MaxConns,
				MinConns: cfg.Database.MinConns,
			})
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		client := postgres.NewClient(pool)
		return &dataSources{
			schedule:     repository.NewPostgresScheduleDataSource(client),
			booking:      repository.NewPostgresBookingDataSource(client),
			session:      repository.NewPostgresSessionDataSource(client),
			notification: repository.NewPostgresNotificationDataSource(client),
			directory:    repository.NewPostgresDirectoryDataSource(client),
			ping: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return client.Ping(ctx)
			},
			close: client.Close,
		}, nil

	default:
		store, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize file store: %w", err)
		}
		return &dataSources{
			schedule:     repository.NewFileScheduleDataSource(store),
			booking:      repository.NewFileBookingDataSource(store),
			session:      repository.NewFileSessionDataSource(store),
			notification: repository.NewFileNotificationDataSource(store),
			directory:    repository.NewFileDirectoryDataSource(store),
			ping:         store.Ping,
			close:        func() {},
		}, nil
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting TutorHub API",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.Server.AppEnv,
		cfg.Observability.AlloyEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Initialize continuous profiling when enabled
	if cfg.Profiling.Enabled {
		stopProfiler, err := profiling.InitProfiler(
			cfg.Profiling,
			cfg.Observability.ServiceName,
			cfg.Observability.ServiceNamespace,
			cfg.Observability.ServiceVersion,
			cfg.Observability.ServiceInstanceID,
			cfg.Server.AppEnv,
		)
		if err != nil {
			logger.Fatal("Failed to initialize profiler", zap.Error(err))
		}
		defer stopProfiler()
	}

	// Initialize metrics with service name from config
	metrics.Init(cfg.Observability.ServiceName)

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize the storage backend
	stores, err := buildDataSources(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer stores.close()

	// NOTE: Postgres migrations are run separately via the migrate command

	// Initialize caches and repositories
	directoryCache := cache.NewDirectoryCache(stores.directory, cfg.Cache.DirectoryTTLSeconds)

	scheduleRepo := repository.NewScheduleRepository(stores.schedule)
	bookingRepo := repository.NewBookingRepository(stores.booking)
	sessionRepo := repository.NewSessionRepository(stores.session)
	notificationRepo := repository.NewNotificationRepository(stores.notification)
	directoryRepo := repository.NewDirectoryRepository(directoryCache)

	// Initialize services
	notificationService := services.NewNotificationService(notificationRepo, directoryRepo)
	scheduleService := services.NewScheduleService(scheduleRepo, directoryRepo, notificationService)
	bookingService := services.NewBookingService(bookingRepo, scheduleRepo, sessionRepo, directoryRepo, notificationService)
	sessionService := services.NewSessionService(sessionRepo, bookingRepo, directoryRepo, notificationService)
	directoryService := services.NewDirectoryService(directoryRepo, scheduleRepo, bookingRepo)
	authService := services.NewAuthService(directoryRepo, cfg)

	// Initialize handlers
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	studentHandler := handlers.NewStudentHandler(directoryService, bookingService)
	tutorHandler := handlers.NewTutorHandler(sessionService, bookingService, directoryService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(stores.ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// CORS configuration - only allow specific origins
	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // Required for session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters: tighter limits on login and mutation endpoints
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	mutationRateLimiter := middleware.NewRateLimiter(20, 40)  // 20 req/sec, burst of 40
	loginRateLimiter := middleware.NewRateLimiter(1, 5)       // 1 req/sec, burst of 5 (login abuse prevention)

	sessionRequired := middleware.SessionMiddleware(authService.GetTokenManager(), cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	api := router.Group("/api")

	// Utility endpoints
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/login", loginRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(16*1024), authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", sessionRequired, authHandler.Me)

	// Schedule routes (tutor-owned slot management)
	schedule := api.Group("/schedule")
	schedule.Use(sessionRequired)
	schedule.GET("/:tutor_id", generalRateLimiter.Middleware(), scheduleHandler.GetSchedule)
	schedule.POST("/:tutor_id/slot/new", mutationRateLimiter.Middleware(), middleware.RequireRole(models.RoleTutor), scheduleHandler.CreateSlot)
	schedule.PUT("/:tutor_id/slot/:slot_id", mutationRateLimiter.Middleware(), middleware.RequireRole(models.RoleTutor), scheduleHandler.UpdateSlot)
	schedule.DELETE("/:tutor_id/slot/:slot_id", mutationRateLimiter.Middleware(), middleware.RequireRole(models.RoleTutor), scheduleHandler.DeleteSlot)

	// Student routes
	student := api.Group("/student")
	student.Use(sessionRequired, middleware.RequireRole(models.RoleStudent))
	student.GET("/tutors/search", generalRateLimiter.Middleware(), studentHandler.SearchTutors)
	student.GET("/tutors/my-courses", generalRateLimiter.Middleware(), studentHandler.MyCourseTutors)
	student.GET("/tutors/:tutor_id", generalRateLimiter.Middleware(), studentHandler.GetTutorDetails)
	student.POST("/sessions/book", mutationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), studentHandler.Book)
	student.POST("/sessions/cancel/:booking_id", mutationRateLimiter.Middleware(), studentHandler.Cancel)
	student.GET("/sessions/my-bookings", generalRateLimiter.Middleware(), studentHandler.MyBookings)

	// Tutor routes
	tutor := api.Group("/tutor")
	tutor.Use(sessionRequired, middleware.RequireRole(models.RoleTutor))
	tutor.GET("/sessions", generalRateLimiter.Middleware(), tutorHandler.Sessions)
	tutor.PUT("/sessions/:session_id", mutationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), tutorHandler.UpdateSession)
	tutor.GET("/bookings", generalRateLimiter.Middleware(), tutorHandler.Bookings)
	tutor.POST("/bookings/:booking_id/approve", mutationRateLimiter.Middleware(), tutorHandler.ApproveBooking)
	tutor.POST("/bookings/:booking_id/reject", mutationRateLimiter.Middleware(), tutorHandler.RejectBooking)
	tutor.GET("/students", generalRateLimiter.Middleware(), tutorHandler.Students)

	// Notification routes
	notification := api.Group("/notification")
	notification.Use(sessionRequired)
	notification.POST("/send-manual", mutationRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(64*1024), notificationHandler.SendManual)
	notification.GET("/user/:user_id", generalRateLimiter.Middleware(), notificationHandler.ListForUser)
	notification.GET("/unread-count/:user_id", generalRateLimiter.Middleware(), notificationHandler.UnreadCount)
	notification.PUT("/:notification_id/read", mutationRateLimiter.Middleware(), notificationHandler.MarkRead)
	notification.PUT("/user/:user_id/read-all", mutationRateLimiter.Middleware(), notificationHandler.MarkAllRead)
	notification.DELETE("/:notification_id", mutationRateLimiter.Middleware(), notificationHandler.Delete)

	// Create HTTP server
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
