package middleware

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/eventface/internal/auth"
	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
	"github.com/saturnino-fabrica-de-software/eventface/internal/service"
)

// LocalClaims is the key to retrieve the organizer token claims from context
const LocalClaims = "organizer_claims"

// TokenValidator parses and validates organizer tokens
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// Auth requires a valid organizer bearer token
func Auth(tokens TokenValidator, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return domain.ErrUnauthorized
		}

		claims, err := tokens.ValidateToken(token)
		if err != nil {
			logger.Debug("invalid organizer token",
				slog.Any("error", err),
				slog.String("path", c.Path()),
			)
			return domain.ErrUnauthorized
		}

		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// OptionalAuth stores the claims when a valid token is sent and lets
// anonymous requests through. A token that is present but invalid is
// still rejected.
func OptionalAuth(tokens TokenValidator, logger *slog.Logger) fiber.Handler {
	required := Auth(tokens, logger)
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return c.Next()
		}
		return required(c)
	}
}

// extractBearerToken extracts token from Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// GetClaims retrieves the organizer claims from Fiber context
func GetClaims(c *fiber.Ctx) (*auth.Claims, error) {
	claims, ok := c.Locals(LocalClaims).(*auth.Claims)
	if !ok || claims == nil {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// GetActor returns the authenticated organizer, or nil for anonymous calls
func GetActor(c *fiber.Ctx) *service.Actor {
	claims, err := GetClaims(c)
	if err != nil {
		return nil
	}
	return service.ActorFromClaims(claims)
}
