package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/dto"
	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/repository"
	"github.com/spec-kit/project-service/internal/service"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

// UsersHandler exposes user management endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{Page: pageQuery(c)}
	if raw := c.Query("user_type"); raw != "" {
		role := domain.Role(raw)
		if !role.IsValid() {
			return apperrors.NewValidationError(invalidUserTypeMessage, nil)
		}
		filter.Role = &role
	}

	users, err := h.users.List(c.UserContext(), filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(err)
	}

	resp := dto.NewUserResponse(user)
	if c.QueryBool("include_projects", false) {
		projects, err := h.users.ProjectsOf(c.UserContext(), id)
		if err != nil {
			return serviceError(err)
		}
		resp.Projects = dto.NewProjectResponses(projects)
	}
	return c.JSON(resp)
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	user, err := h.users.Create(c.UserContext(), actor, service.UserCreateInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     domain.Role(req.UserType),
		Password: req.Password,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UserUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	input := service.UserUpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.UserType != nil {
		role := domain.Role(*req.UserType)
		input.Role = &role
	}

	user, err := h.users.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	if err := h.users.Delete(c.UserContext(), actor, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "user deleted successfully"})
}
