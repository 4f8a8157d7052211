package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/dto"
	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/service"
	apperrors "github.com/spec-kit/project-service/pkg/util"
)

// TasksHandler exposes task endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(tasks *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: tasks}
}

// ListForProject handles GET /projects/:id/tasks.
func (h *TasksHandler) ListForProject(c *fiber.Ctx) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	filter := service.TaskListFilter{Page: pageQuery(c)}
	if raw := c.Query("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.IsValid() {
			return apperrors.NewValidationError("invalid status, must be one of: pending, in_progress, completed", nil)
		}
		filter.Status = &status
	}

	tasks, err := h.tasks.ListForProject(c.UserContext(), projectID, filter)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.TaskListResponse{
		Tasks:     dto.NewTaskResponses(tasks),
		Count:     len(tasks),
		ProjectID: projectID,
	})
}

// Get handles GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.UserContext(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// Create handles POST /projects/:id/tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	projectID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskCreateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	task, err := h.tasks.Create(c.UserContext(), actor, projectID, service.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatus(req.Status),
	})
	if err != nil {
		return serviceError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTaskResponse(task))
}

// Update handles PUT /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req dto.TaskUpdateRequest
	if err := decodeBody(c, &req); err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	input := service.TaskUpdateInput{
		Title:            req.Title,
		Description:      req.Description.Value,
		ClearDescription: req.Description.IsNull(),
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	task, err := h.tasks.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// Delete handles DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor, _ := auth.IdentityFromContext(c)

	if err := h.tasks.Delete(c.UserContext(), actor, id); err != nil {
		return serviceError(err)
	}
	return c.JSON(dto.MessageResponse{Message: "task deleted successfully"})
}
