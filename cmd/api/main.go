package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/project-service/internal/api/http"
	"github.com/spec-kit/project-service/internal/api/http/handlers"
	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/config"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/observability"
	"github.com/spec-kit/project-service/internal/persistence"
	"github.com/spec-kit/project-service/internal/repository"
	"github.com/spec-kit/project-service/internal/repository/memory"
	"github.com/spec-kit/project-service/internal/service"
	"github.com/spec-kit/project-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("using the development JWT secret; set AUTH_JWT_SECRET outside local development")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo    repository.UserRepository
		projectRepo repository.ProjectRepository
		taskRepo    repository.TaskRepository
		dbPinger    handlers.Pinger
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		projectRepo = repository.NewProjectRepository(pool)
		taskRepo = repository.NewTaskRepository(pool)
		dbPinger = pg
	} else {
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		userRepo, projectRepo, taskRepo = store.Users(), store.Projects(), store.Tasks()
	}

	dispatcher := events.NewInMemoryDispatcher(logger.Named("events"))
	worker.StartNotificationWorker(dispatcher, logger, cfg.Notification)

	limiter := auth.NewRedisLoginLimiter(redis.Cmdable(), cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		LoginLimiter: limiter,
		Dispatcher:   dispatcher,
		Logger:       logger.Named("auth"),
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:    userRepo,
		ProjectRepo: projectRepo,
		Dispatcher:  dispatcher,
		BcryptCost:  cfg.Auth.BcryptCost,
	})
	projectService := service.NewProjectService(service.ProjectDependencies{
		ProjectRepo: projectRepo,
		UserRepo:    userRepo,
		TaskRepo:    taskRepo,
		Dispatcher:  dispatcher,
	})
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:    taskRepo,
		ProjectRepo: projectRepo,
		Dispatcher:  dispatcher,
	})
	authMiddleware := auth.NewAuthMiddleware(authService)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.App.RequestTimeout(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Index:          handlers.NewIndexHandler(cfg.App.Name, cfg.App.Version),
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dbPinger, redis, metrics),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Projects:       handlers.NewProjectsHandler(projectService),
		Tasks:          handlers.NewTasksHandler(taskService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
