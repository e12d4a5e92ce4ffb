package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saturnino-fabrica-de-software/eventface/internal/api"
	"github.com/saturnino-fabrica-de-software/eventface/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/eventface/internal/audit"
	"github.com/saturnino-fabrica-de-software/eventface/internal/auth"
	"github.com/saturnino-fabrica-de-software/eventface/internal/config"
	"github.com/saturnino-fabrica-de-software/eventface/internal/database"
	"github.com/saturnino-fabrica-de-software/eventface/internal/face"
	"github.com/saturnino-fabrica-de-software/eventface/internal/ratelimit"
	"github.com/saturnino-fabrica-de-software/eventface/internal/repository"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
	"github.com/saturnino-fabrica-de-software/eventface/internal/storage"
)

const jwtIssuer = "eventface"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting EventFace API",
		slog.String("environment", cfg.Environment),
		slog.Int("port", cfg.Port),
		slog.String("provider", cfg.ProviderType),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPgxPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// The detector is loaded once; the API refuses to start without it
	detector, err := face.NewFaceDetector(cfg)
	if err != nil {
		return fmt.Errorf("failed to create face detector: %w", err)
	}

	readyChecks := map[string]handler.Checker{
		"database": handler.CheckerFunc(func(ctx context.Context) error {
			return database.HealthCheck(ctx, pool)
		}),
	}
	if p, ok := detector.(interface{ Ping(context.Context) error }); ok {
		readyChecks["detector"] = handler.CheckerFunc(p.Ping)
	}

	faceRepo := repository.NewFaceRecordRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	scanRepo := repository.NewScanLogRepository(pool)

	enrollment := service.NewEnrollmentService(faceRepo, detector, service.NewEventLocker(), logger).
		WithThreshold(cfg.SimilarityThreshold)
	faceRecords := service.NewFaceRecordService(faceRepo, logger)

	if cfg.ImageStorageEnabled() {
		images, err := storage.NewMinIOStore(storage.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to create image store: %w", err)
		}
		if err := images.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to prepare image bucket: %w", err)
		}
		enrollment = enrollment.WithImageStore(images)
		faceRecords = faceRecords.WithImageStore(images)
		readyChecks["storage"] = handler.CheckerFunc(images.Ping)
		logger.Info("enrollment images stored in minio", slog.String("bucket", cfg.MinioBucket))
	}

	tokens := auth.NewJWTService(cfg.JWTSecret, jwtIssuer, cfg.JWTTTL)

	organizers := service.NewOrganizerService(
		repository.NewOrganizerRepository(pool),
		auth.NewPasswordHasher(),
		tokens,
		logger,
	)
	if cfg.LoginMaxAttempts > 0 {
		loginLimiter := ratelimit.NewLimiter(pool, cfg.LoginAttemptWindow)
		organizers = organizers.WithLoginThrottle(loginLimiter, cfg.LoginMaxAttempts)
		go loginLimiter.RunCleanup(ctx, cfg.LoginAttemptWindow, logger)
	}

	router := api.NewRouter(logger, &api.Dependencies{
		Enrollment: enrollment,
		Verification: service.NewVerificationService(faceRepo, detector, logger).
			WithThreshold(cfg.SimilarityThreshold).
			WithScanLog(scanRepo),
		FaceRecords:   faceRecords,
		Events:        service.NewEventService(eventRepo, scanRepo, cfg.PublicBaseURL),
		Attendees:     service.NewAttendeeService(repository.NewAttendeeRepository(pool), eventRepo),
		Organizers:    organizers,
		Tokens:        tokens,
		Audit:         audit.NewSlogLogger(logger),
		ReadyChecks:   readyChecks,
		MaxImageSize:  int64(cfg.MaxImageSize),
		DocsHost:      fmt.Sprintf("localhost:%d", cfg.Port),
		FaceRateLimit: cfg.FaceRateLimit,
	})
	router.Setup()

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		logger.Info("server listening", slog.String("addr", addr))
		if err := router.Listen(addr); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- router.Shutdown() }()

	logger.Info("shutting down server...")
	select {
	case err := <-done:
		if err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	case <-time.After(10 * time.Second):
		logger.Warn("shutdown timed out")
	}

	logger.Info("server stopped")
	return nil
}
