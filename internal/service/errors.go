package service

import (
	"errors"
	"strings"

	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = auth.ErrInvalidToken
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrDuplicateEmail     = repository.ErrDuplicateEmail
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidRole        = errors.New("invalid user_type")
)

// notFoundAs replaces repository.ErrNotFound with a resource specific error.
func notFoundAs(err, target error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return target
	}
	return err
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
