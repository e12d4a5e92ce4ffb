package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/eventface/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/eventface/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/eventface/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/eventface/internal/audit"
)

const version = "1.0.0"

// Dependencies are the services the HTTP surface is built on
type Dependencies struct {
	Enrollment   handler.EnrollmentService
	Verification handler.VerificationService
	FaceRecords  handler.FaceRecordService
	Events       handler.EventService
	Attendees    handler.AttendeeService
	Organizers   handler.OrganizerService
	Tokens       middleware.TokenValidator
	// Audit receives biometric operations; nil disables the trail
	Audit        audit.Logger
	ReadyChecks  map[string]handler.Checker
	MaxImageSize int64
	DocsHost     string
	// FaceRateLimit bounds enroll and verify calls per client IP per minute
	FaceRateLimit int
}

type Router struct {
	app         *fiber.App
	logger      *slog.Logger
	deps        *Dependencies
	rateLimiter *middleware.RateLimiter
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	bodyLimit := 4 * 1024 * 1024
	if deps != nil && deps.MaxImageSize > 0 {
		// room for the other multipart fields
		bodyLimit = int(deps.MaxImageSize) + 1024*1024
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(logger),
		AppName:      "EventFace API",
		BodyLimit:    bodyLimit,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Metrics())
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	var readyChecks map[string]handler.Checker
	docsHost := "localhost:3000"
	if r.deps != nil {
		readyChecks = r.deps.ReadyChecks
		if r.deps.DocsHost != "" {
			docsHost = r.deps.DocsHost
		}
	}

	// Swagger documentation (no auth required)
	sw := docs.NewSwagger(docsHost)
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	healthHandler := handler.NewHealthHandler(version, readyChecks)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)
	r.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if r.deps == nil {
		return
	}

	v1 := r.app.Group("/v1")
	requireAuth := middleware.Auth(r.deps.Tokens, r.logger)

	authHandler := handler.NewAuthHandler(r.deps.Organizers)
	v1.Post("/auth/register", middleware.OptionalAuth(r.deps.Tokens, r.logger), authHandler.Register)
	v1.Post("/auth/login", authHandler.Login)

	eventHandler := handler.NewEventHandler(r.deps.Events)
	attendeeHandler := handler.NewAttendeeHandler(r.deps.Attendees)

	events := v1.Group("/events")
	events.Get("/", eventHandler.List)
	events.Post("/", requireAuth, eventHandler.Create)
	events.Get("/:id", eventHandler.Get)
	events.Put("/:id", requireAuth, eventHandler.Update)
	events.Get("/:id/registration-link", eventHandler.RegistrationLink)
	events.Post("/:id/attendees", attendeeHandler.Register)
	events.Get("/:id/attendees", requireAuth, attendeeHandler.List)
	events.Get("/:id/scans", requireAuth, eventHandler.Scans)

	// enroll and verify are public: attendees register themselves and the
	// entrance scanner calls verify
	r.rateLimiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Max: r.deps.FaceRateLimit,
	})
	limitFaces := r.rateLimiter.Handler()

	faceHandler := handler.NewFaceHandler(
		r.deps.Enrollment,
		r.deps.Verification,
		r.deps.FaceRecords,
		r.deps.MaxImageSize,
		r.logger,
	).WithAudit(r.deps.Audit)

	faces := v1.Group("/faces")
	faces.Post("/", limitFaces, faceHandler.Enroll)
	faces.Post("/verify", limitFaces, faceHandler.Verify)
	faces.Get("/", requireAuth, faceHandler.List)
	faces.Get("/:id", requireAuth, faceHandler.Get)
	faces.Delete("/:id", requireAuth, faceHandler.Delete)
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Stop()
	}
	return r.app.Shutdown()
}
