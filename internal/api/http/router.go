package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/project-service/internal/api/http/handlers"
	"github.com/spec-kit/project-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Index          *handlers.IndexHandler
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Projects       *handlers.ProjectsHandler
	Tasks          *handlers.TasksHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads require an access token and
// mutations additionally require the manager role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	authn := cfg.AuthMiddleware.Handle
	manager := cfg.AuthMiddleware.RequireManager

	app.Get("/", cfg.Index.Index)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", authn, cfg.Auth.Logout)
	authGroup.Get("/verify", authn, cfg.Auth.Verify)

	users := app.Group("/users", authn)
	users.Get("", cfg.Users.List)
	users.Get("/:id", cfg.Users.Get)
	users.Post("", manager, cfg.Users.Create)
	users.Put("/:id", manager, cfg.Users.Update)
	users.Delete("/:id", manager, cfg.Users.Delete)

	projects := app.Group("/projects", authn)
	projects.Get("", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Post("", manager, cfg.Projects.Create)
	projects.Put("/:id", manager, cfg.Projects.Update)
	projects.Delete("/:id", manager, cfg.Projects.Delete)
	projects.Get("/:id/tasks", cfg.Tasks.ListForProject)
	projects.Post("/:id/tasks", manager, cfg.Tasks.Create)

	tasks := app.Group("/tasks", authn)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", manager, cfg.Tasks.Update)
	tasks.Delete("/:id", manager, cfg.Tasks.Delete)
}
