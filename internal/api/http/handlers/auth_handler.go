package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/dto"
	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/service"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

// AuthHandler exposes the /auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(dto.LoginResponse{
		Message:      "login successful",
		AccessToken:  result.Access.Value,
		RefreshToken: result.Refresh.Value,
		User:         dto.NewUserResponse(result.User),
	})
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.UserType),
	})
	if err != nil {
		return serviceError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    dto.NewUserResponse(user),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			return apperrors.NewUnauthorized("invalid or expired refresh token")
		}
		return serviceError(err)
	}

	return c.JSON(dto.RefreshResponse{
		Message:     "token refreshed successfully",
		AccessToken: token.Value,
	})
}

// Logout handles POST /auth/logout. Tokens are stateless, so the client
// discards them; the route only confirms the caller was authenticated.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "logout successful"})
}

// Verify handles GET /auth/verify behind the authentication middleware.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	user, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(auth.MsgInvalidToken)
	}
	return c.JSON(dto.VerifyResponse{Valid: true, User: dto.NewUserResponse(user)})
}
