package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/dto"
	"github.com/spec-kit/project-service/internal/repository"
	"github.com/spec-kit/project-service/internal/service"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

// decodeBody parses the request body as JSON regardless of Content-Type and
// validates it. Nothing downstream runs when either step fails.
func decodeBody(c *fiber.Ctx, payload dto.Validatable) error {
	body := c.Body()
	if len(body) == 0 {
		return apperrors.NewValidationError("request body must be JSON", nil)
	}
	if err := c.App().Config().JSONDecoder(body, payload); err != nil {
		return apperrors.NewValidationError("invalid JSON format", nil)
	}
	if err := payload.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	return nil
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive integer", nil)
	}
	return id, nil
}

// pageQuery reads limit and offset. Unparseable values are ignored.
func pageQuery(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
}

const invalidUserTypeMessage = "invalid user_type, must be one of: manager, employee"

// serviceError translates service sentinels into HTTP errors.
func serviceError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return apperrors.NewUnauthorized("invalid email or password")
	case errors.Is(err, service.ErrInvalidToken):
		return apperrors.NewUnauthorized("invalid or expired token")
	case errors.Is(err, service.ErrTooManyAttempts):
		return apperrors.NewTooManyRequests("too many login attempts, try again later")
	case errors.Is(err, service.ErrInvalidRole):
		return apperrors.NewValidationError(invalidUserTypeMessage, nil)
	case errors.Is(err, service.ErrDuplicateEmail):
		return apperrors.NewConflict("email already exists", nil)
	case errors.Is(err, service.ErrUserNotFound):
		return apperrors.NewNotFound("user", nil)
	case errors.Is(err, service.ErrProjectNotFound):
		return apperrors.NewNotFound("project", nil)
	case errors.Is(err, service.ErrTaskNotFound):
		return apperrors.NewNotFound("task", nil)
	default:
		return apperrors.MapError(err)
	}
}
