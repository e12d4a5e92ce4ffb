package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/eventface/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

type OrganizerService interface {
	Register(ctx context.Context, creator *service.Actor, in service.RegisterInput) (*domain.Organizer, error)
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
}

type AuthHandler struct {
	service OrganizerService
}

func NewAuthHandler(svc OrganizerService) *AuthHandler {
	return &AuthHandler{service: svc}
}

type RegisterRequest struct {
	Role           string     `json:"role" validate:"required,oneof=admin event_organizer event_monitoring"`
	Name           string     `json:"name" validate:"required,max=200"`
	Email          string     `json:"email" validate:"required,email"`
	Password       string     `json:"password" validate:"required,min=8,max=72"`
	ActivationDate *time.Time `json:"activation_date"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register POST /v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	organizer, err := h.service.Register(c.UserContext(), middleware.GetActor(c), service.RegisterInput{
		Role:           req.Role,
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		ActivationDate: req.ActivationDate,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(organizer)
}

// Login POST /v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	result, err := h.service.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
