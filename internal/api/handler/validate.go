package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saturnino-fabrica-de-software/eventface/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseBody decodes the JSON body into dst and validates its tags
func parseBody(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return domain.ErrBadRequest.WithError(err)
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s:%s", fe.Field(), fe.Tag()))
			}
			return domain.ErrValidationFailed.WithError(errors.New(strings.Join(fields, ", ")))
		}
		return domain.ErrValidationFailed.WithError(err)
	}
	return nil
}

// paramUUID parses a uuid path parameter
func paramUUID(c *fiber.Ctx, name string, notFound *domain.AppError) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, notFound.WithError(err)
	}
	return id, nil
}

// formValue returns the first non-empty form field among names
func formValue(c *fiber.Ctx, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(c.FormValue(n)); v != "" {
			return v
		}
	}
	return ""
}
