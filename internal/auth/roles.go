package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/domain"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

// MsgManagerRequired is returned to authenticated callers lacking the manager role.
const MsgManagerRequired = "access denied, manager role required"

// IsManager reports whether the identity holds the manager role.
func IsManager(user *domain.User) bool {
	if user == nil {
		return false
	}
	switch user.Role {
	case domain.RoleManager:
		return true
	case domain.RoleEmployee:
		return false
	default:
		return false
	}
}

// RequireManager ensures the caller is an authenticated manager. When mounted
// without Handle in front of it, it authenticates the request first.
func (m *AuthMiddleware) RequireManager(c *fiber.Ctx) error {
	user, ok := IdentityFromContext(c)
	if !ok {
		if err := m.authenticate(c); err != nil {
			return err
		}
		user, _ = IdentityFromContext(c)
	}
	if !IsManager(user) {
		return apperrors.NewForbidden(MsgManagerRequired, map[string]any{
			"user_type": string(user.Role),
		})
	}
	return c.Next()
}
