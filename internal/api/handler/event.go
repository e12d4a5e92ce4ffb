package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

const (
	defaultScanLimit = 100
	maxScanLimit     = 1000
)

type EventService interface {
	Create(ctx context.Context, actor *service.Actor, in service.EventInput) (*domain.Event, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, actor *service.Actor, id uuid.UUID, in service.EventInput) (*domain.Event, error)
	RegistrationLink(ctx context.Context, id uuid.UUID) (string, error)
	Scans(ctx context.Context, eventID string, limit int) ([]domain.ScanLog, error)
}

type EventHandler struct {
	service EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{service: svc}
}

type EventRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Date        time.Time `json:"date" validate:"required"`
	Facility    string    `json:"facility" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
}

func (r EventRequest) input() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Date:        r.Date,
		Facility:    r.Facility,
		Description: r.Description,
	}
}

type RegistrationLinkResponse struct {
	Link string `json:"link"`
}

// Create POST /v1/events
func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req EventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	event, err := h.service.Create(c.UserContext(), middleware.GetActor(c), req.input())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(event)
}

// List GET /v1/events
func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(events)
}

// Get GET /v1/events/:id
func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(event)
}

// Update PUT /v1/events/:id
func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	var req EventRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	event, err := h.service.Update(c.UserContext(), middleware.GetActor(c), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(event)
}

// RegistrationLink GET /v1/events/:id/registration-link
func (h *EventHandler) RegistrationLink(c *fiber.Ctx) error {
	id, err := paramUUID(c, "id", domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	link, err := h.service.RegistrationLink(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(RegistrationLinkResponse{Link: link})
}

// Scans GET /v1/events/:id/scans?limit=
func (h *EventHandler) Scans(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultScanLimit)
	if limit <= 0 || limit > maxScanLimit {
		limit = defaultScanLimit
	}

	scans, err := h.service.Scans(c.UserContext(), c.Params("id"), limit)
	if err != nil {
		return err
	}
	return c.JSON(scans)
}
