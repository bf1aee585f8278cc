package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/joho/godotenv"

	"github.com/elevate-workforce/jobportal/internal/config"
	"github.com/elevate-workforce/jobportal/internal/database"
	"github.com/elevate-workforce/jobportal/internal/handlers"
	"github.com/elevate-workforce/jobportal/internal/logging"
	"github.com/elevate-workforce/jobportal/internal/middleware"
	"github.com/elevate-workforce/jobportal/internal/notify"
	"github.com/elevate-workforce/jobportal/internal/ratelimit"
	"github.com/elevate-workforce/jobportal/internal/routes"
	"github.com/elevate-workforce/jobportal/internal/services"
	"github.com/elevate-workforce/jobportal/internal/site"
	"github.com/elevate-workforce/jobportal/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// A missing .env is fine; real deployments set the environment.
	_ = godotenv.Load()

	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	settings, err := site.LoadFromFile(cfg.SiteConfigPath)
	if err != nil {
		slog.Error("failed to load site settings", "path", cfg.SiteConfigPath, "error", err)
		os.Exit(1)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.AutoMigrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		logging.NewJSONHandler(os.Stdout),
		pgLogHandler,
	)))

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention, cleanupDone)

	// Object storage is optional; uploads answer 502 without it.
	var store storage.ObjectStore
	if cfg.MinioEndpoint != "" {
		minioStore, err := storage.NewMinioStore(context.Background(),
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			slog.Error("object storage init failed", "endpoint", cfg.MinioEndpoint, "error", err)
			os.Exit(1)
		}
		store = minioStore
		slog.Info("object storage ready", "bucket", cfg.MinioBucket)
	} else {
		slog.Warn("MINIO_ENDPOINT not set, file uploads are disabled")
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if addr := cfg.SMTPAddr(); addr != "" {
		smtpMailer, err := notify.NewSMTPMailer(addr, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
		if err != nil {
			slog.Error("failed to configure smtp", "error", err)
			os.Exit(1)
		}
		mailer = smtpMailer
	} else {
		slog.Warn("SMTP_HOST not set, outgoing mail is only logged")
	}

	var strictLimit fiber.Handler
	if cfg.RedisAddr != "" {
		client, err := ratelimit.NewClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.Error("redis connection failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		limiter, err := ratelimit.NewFixedWindowLimiter(client, "", 10, time.Minute)
		if err != nil {
			slog.Error("rate limiter init failed", "error", err)
			os.Exit(1)
		}
		strictLimit = ratelimit.Middleware(limiter)
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	profileService := services.NewProfileService(database.DB, store)
	jobService := services.NewJobService(database.DB, store)
	applicationService := services.NewApplicationService(database.DB, store)
	adminService := services.NewAdminService(database.DB)
	contactService := services.NewContactService(database.DB, mailer, cfg.ContactEmail, settings.Name)
	pagesService := services.NewPagesService(jobService, settings)

	if err := adminService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Error("admin bootstrap failed", "error", err)
		os.Exit(1)
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	routes.Setup(app, cfg, authService, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authService),
		Profile:     handlers.NewProfileHandler(profileService),
		Job:         handlers.NewJobHandler(jobService),
		Application: handlers.NewApplicationHandler(applicationService),
		Admin:       handlers.NewAdminHandler(adminService),
		Pages:       handlers.NewPagesHandler(pagesService, contactService, settings.Name),
		Health:      handlers.NewHealthHandler(database.Ping, store),
	}, strictLimit)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
