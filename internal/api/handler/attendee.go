package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

type AttendeeService interface {
	Register(ctx context.Context, eventID uuid.UUID, in service.AttendeeInput) (*domain.Attendee, error)
	List(ctx context.Context, eventID uuid.UUID) ([]domain.Attendee, error)
}

type AttendeeHandler struct {
	service AttendeeService
}

func NewAttendeeHandler(svc AttendeeService) *AttendeeHandler {
	return &AttendeeHandler{service: svc}
}

type AttendeeRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	School   string `json:"school" validate:"max=200"`
	IDNumber string `json:"id_number" validate:"max=50"`
	Email    string `json:"email" validate:"required,email"`
}

// Register POST /v1/events/:id/attendees
func (h *AttendeeHandler) Register(c *fiber.Ctx) error {
	eventID, err := paramUUID(c, "id", domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	var req AttendeeRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	attendee, err := h.service.Register(c.UserContext(), eventID, service.AttendeeInput{
		Name:     req.Name,
		School:   req.School,
		IDNumber: req.IDNumber,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(attendee)
}

// List GET /v1/events/:id/attendees
func (h *AttendeeHandler) List(c *fiber.Ctx) error {
	eventID, err := paramUUID(c, "id", domain.ErrEventNotFound)
	if err != nil {
		return err
	}

	attendees, err := h.service.List(c.UserContext(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(attendees)
}
