package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"streamvault/internal/core/domain"
	"streamvault/internal/core/ports"
	"streamvault/internal/core/services"
	httphandlers "streamvault/internal/handlers/http"
	"streamvault/internal/infrastructure/middleware"
	"streamvault/internal/infrastructure/monitoring"
	repositories "streamvault/internal/infrastructure/repositories"
	"streamvault/pkg/config"
	"streamvault/pkg/logger"
	"streamvault/pkg/tracing"
	"streamvault/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	startTime := time.Now()

	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Initialize tracing (no-op when disabled)
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Initialize repository factory
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}

	streamRepo := repoFactory.CreateStreamRepository()
	userRepo := repoFactory.CreateUserRepository()

	// Initialize services
	streamService := services.NewStreamService(streamRepo)
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Bootstrap the admin account if one is configured and absent
	if err := bootstrapAdmin(cfg, authService, userRepo, log); err != nil {
		log.Fatalw("failed to bootstrap admin account", "error", err)
	}

	// Initialize monitoring
	var collector *monitoring.PrometheusCollector
	if cfg.Monitoring.PrometheusEnabled {
		collector = monitoring.NewPrometheusCollector()
	}

	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("store", repoFactory.HealthCheck, 2*time.Second)

	// Initialize HTTP handlers
	authHandler := httphandlers.NewAuthHandler(authService, collector)
	streamHandler := httphandlers.NewStreamHandler(streamService, collector)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.TracingMiddleware())
	router.Use(middleware.LoggingMiddleware(logger.NewContextLogger(zapLogger)))
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))
	if collector != nil {
		router.Use(middleware.MetricsMiddleware(collector))
	}

	// Public routes
	api := router.Group("/api")
	{
		api.GET("/streams", streamHandler.ListStreams)
		api.GET("/streams/:id", streamHandler.GetStream)
		api.POST("/login", authHandler.Login)
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/streams", streamHandler.CreateStream)
		protected.PUT("/streams/:id", streamHandler.UpdateStream)
		protected.DELETE("/streams/:id", streamHandler.DeleteStream)
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status": status.Status,
			"checks": status.Checks,
			"uptime": time.Since(startTime).String(),
		})
	})

	// Readiness endpoint
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := repoFactory.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ready",
		})
	})

	// Prometheus metrics endpoint
	if collector != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting streamvault server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down streamvault server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error shutting down tracer provider", "error", err)
	}

	if err := repoFactory.Close(); err != nil {
		log.Errorw("Error closing repository factory", "error", err)
	}

	log.Info("streamvault server stopped")
}

// bootstrapAdmin inserts the configured admin account when it does not
// exist yet. User records have no HTTP surface; this is the only way the
// server itself ever writes one.
func bootstrapAdmin(cfg *config.Config, authService services.AuthService, userRepo ports.UserRepository, log *zap.SugaredLogger) error {
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		return nil
	}

	if err := validation.ValidateEmail(cfg.Auth.AdminEmail); err != nil {
		return err
	}
	if err := validation.ValidatePassword(cfg.Auth.AdminPassword); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := userRepo.GetByEmail(ctx, cfg.Auth.AdminEmail)
	if err == nil {
		return nil // already present
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := authService.HashPassword(cfg.Auth.AdminPassword)
	if err != nil {
		return err
	}

	user, err := domain.NewUser(cfg.Auth.AdminEmail, hash)
	if err != nil {
		return err
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Infow("bootstrapped admin account", "email", cfg.Auth.AdminEmail)
	return nil
}
