package service

import (
	"context"
	"strings"

	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository"
)

// UserService manages user records on behalf of managers.
type UserService struct {
	users      repository.UserRepository
	projects   repository.ProjectRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo    repository.UserRepository
	ProjectRepo repository.ProjectRepository
	Dispatcher  events.Dispatcher
	BcryptCost  int
}

// UserCreateInput describes a manager-created account. Password is optional;
// accounts without one cannot log in until a password is set.
type UserCreateInput struct {
	Name     string
	Email    string
	Role     domain.Role
	Password *string
}

// UserUpdateInput carries optional field changes.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Role     *domain.Role
	Password *string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		projects:   deps.ProjectRepo,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
	}
}

// List returns users matching the filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	return s.users.List(ctx, filter)
}

// Get returns a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}
	return user, nil
}

// ProjectsOf lists the projects owned by a user.
func (s *UserService) ProjectsOf(ctx context.Context, userID int64) ([]domain.Project, error) {
	return s.projects.List(ctx, repository.ProjectFilter{UserID: &userID})
}

// Create adds a user.
func (s *UserService) Create(ctx context.Context, actor *domain.User, input UserCreateInput) (*domain.User, error) {
	if !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	user := &domain.User{
		Name:  strings.TrimSpace(input.Name),
		Email: input.Email,
		Role:  input.Role,
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserCreated,
		ResourceID: user.ID,
		Actor:      actorOf(actor),
		Payload:    events.UserPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// Update applies the provided changes atomically.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id int64, input UserUpdateInput) (*domain.User, error) {
	if input.Role != nil && !input.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	var hash string
	if input.Password != nil {
		var err error
		if hash, err = auth.HashPassword(*input.Password, s.bcryptCost); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, id, func(u *domain.User) error {
		if input.Name != nil {
			u.Name = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil {
			u.Email = *input.Email
		}
		if input.Role != nil {
			u.Role = *input.Role
		}
		if input.Password != nil {
			u.PasswordHash = hash
		}
		return nil
	})
	if err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserUpdated,
		ResourceID: user.ID,
		Actor:      actorOf(actor),
		Payload:    events.UserPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// Delete removes the user with their projects and tasks. Outstanding tokens
// for the user stop resolving on the next request.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundAs(err, ErrUserNotFound)
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserDeleted,
		ResourceID: id,
		Actor:      actorOf(actor),
	})
	return nil
}
