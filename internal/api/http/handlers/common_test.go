package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/project-service/internal/service"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

func TestServiceErrorStatus(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"credentials", service.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"token", service.ErrInvalidToken, http.StatusUnauthorized, "invalid or expired token"},
		{"throttled", service.ErrTooManyAttempts, http.StatusTooManyRequests, "too many login attempts, try again later"},
		{"role", service.ErrInvalidRole, http.StatusBadRequest, invalidUserTypeMessage},
		{"wrapped role", fmt.Errorf("register: %w", service.ErrInvalidRole), http.StatusBadRequest, invalidUserTypeMessage},
		{"duplicate", service.ErrDuplicateEmail, http.StatusConflict, "email already exists"},
		{"user", service.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"project", service.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{"task", service.ErrTaskNotFound, http.StatusNotFound, "task not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			domainErr := apperrors.ToDomainError(serviceError(tc.err))
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
			assert.Equal(t, tc.message, domainErr.Message)
		})
	}
}

func TestServiceErrorUnknownIsInternal(t *testing.T) {
	domainErr := apperrors.ToDomainError(serviceError(errors.New("connection reset")))
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.NotContains(t, domainErr.Message, "connection reset")
}
