package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/domain"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

const principalKey = "auth_principal"

// Messages returned by the middleware. They never reveal why a token failed.
const (
	MsgAuthorizationRequired = "authorization required"
	MsgMalformedHeader       = "malformed authorization header"
	MsgInvalidToken          = "invalid or expired token"
)

// ErrInvalidToken is the single outcome for any token that cannot be turned
// into a live identity.
var ErrInvalidToken = errors.New("invalid or expired token")

// IdentityResolver turns an access token into the identity it names.
// Implementations return ErrInvalidToken when the token is unusable or the
// identity no longer exists.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, accessToken string) (*domain.User, error)
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	if err := m.authenticate(c); err != nil {
		return err
	}
	return c.Next()
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx) error {
	token, err := BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return err
	}

	user, err := m.resolver.ResolveIdentity(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return apperrors.NewUnauthorized(MsgInvalidToken)
		}
		return apperrors.NewInternalError(err)
	}

	c.Locals(principalKey, user)
	return nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.NewUnauthorized(MsgAuthorizationRequired)
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.ContainsAny(token, " \t") {
		return "", apperrors.NewUnauthorized(MsgMalformedHeader)
	}
	return token, nil
}

// IdentityFromContext retrieves the authenticated user.
func IdentityFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok && user != nil
}
