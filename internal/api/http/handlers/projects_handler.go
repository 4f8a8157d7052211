package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/dto"
	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/repository"
	"github.com/spec-kit/project-service/internal/service"
)

// ProjectsHandler exposes project endpoints.
type ProjectsHandler struct {
	projects *service.ProjectService
}

// NewProjectsHandler constructs handler.
func NewProjectsHandler(projects *service.ProjectService) *ProjectsHandler {
	return &ProjectsHandler{projects: projects}
}

// List handles GET /projects.
func (h *ProjectsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProjectFilter{Page: pageQuery(c)}
	if ownerID := int64(c.QueryInt("user_id", 0)); ownerID > 0 {
		filter.UserID = &ownerID
	}

	projects, err := h.projects.List(c.UserContext(), filter)
	if err != nil {
		return serviceError(err)
	}

	resp := dto.ProjectListResponse{Projects: dto.NewProjectResponses(projects), Count: len(projects)}
	if c.QueryBool("include_tasks", false) {
		for i := range resp.Projects {
			if err := h.attachTasks(c, &resp.Projects[i]); err != nil {
				return err
			}
		}
	}
	return c.JSON(resp)
}

// Get handles GET /projects/:id.
func (h *ProjectsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	project, err := h.projects.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(err)
	}

	resp := dto.NewProjectResponse(project)
	if c.QueryBool("include_tasks", false) {
		if err := h.attachTasks(c, &resp); err != nil {
			return err
		}
	}
	return c.JSON(resp)
}

// Create handles POST /projects.
func (h *ProjectsHandler) Create(c *fiber.Ctx) error {
	var req dto.ProjectCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	project, err := h.projects.Create(c.UserContext(), actor, service.ProjectCreateInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     req.UserID,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewProjectResponse(project))
}

// Update handles PUT /projects/:id.
func (h *ProjectsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.ProjectUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	project, err := h.projects.Update(c.UserContext(), actor, id, service.ProjectUpdateInput{
		Name:             req.Name,
		Description:      req.Description.Value,
		ClearDescription: req.Description.IsNull(),
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.NewProjectResponse(project))
}

// Delete handles DELETE /projects/:id.
func (h *ProjectsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	if err := h.projects.Delete(c.UserContext(), actor, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "project deleted successfully"})
}

func (h *ProjectsHandler) attachTasks(c *fiber.Ctx, project *dto.ProjectResponse) error {
	tasks, err := h.projects.TasksOf(c.UserContext(), project.ID)
	if err != nil {
		return serviceError(err)
	}
	project.Tasks = dto.NewTaskResponses(tasks)
	return nil
}
