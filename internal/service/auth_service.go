package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/project-service/internal/auth"
	"github.com/spec-kit/project-service/internal/config"
	"github.com/spec-kit/project-service/internal/domain"
	"github.com/spec-kit/project-service/internal/events"
	"github.com/spec-kit/project-service/internal/repository"
)

// AuthService coordinates registration, login and token flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	limiter    auth.LoginLimiter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo     repository.UserRepository
	LoginLimiter auth.LoginLimiter
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	// TokenManager overrides the manager built from cfg.Auth.JWTSecret.
	TokenManager *auth.TokenManager
}

// RegisterInput carries self-registration fields. An empty Role means employee.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// IssuedToken is a signed token and its expiry.
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User    *domain.User
	Access  IssuedToken
	Refresh IssuedToken
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := deps.TokenManager
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   tokens,
		limiter:    deps.LoginLimiter,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Authenticate checks credentials. Unknown emails and wrong passwords both
// yield ErrInvalidCredentials after the same amount of hashing work.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = auth.CompareDummy(s.dummy(), password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.HasPassword() {
		_ = auth.CompareDummy(s.dummy(), password)
		return nil, ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash unusable", zap.Int64("user_id", user.ID), zap.Error(err))
		}
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// dummy returns the hash compared against when no usable account exists. It
// is built once, at the cost used for stored hashes.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.NewDummyHash(s.bcryptCost)
		if err != nil {
			s.logger.Error("build dummy password hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// Login authenticates the user and issues an access/refresh pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			s.logger.Warn("login throttle check failed", zap.Error(err))
		} else if !allowed {
			return nil, ErrTooManyAttempts
		}
	}

	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, email)
	}

	access, err := s.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := s.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Access: access, Refresh: refresh}, nil
}

// IssueAccessToken signs a one hour token carrying identity and role.
func (s *AuthService) IssueAccessToken(user *domain.User) (IssuedToken, error) {
	value, exp, err := s.tokenMgr.Issue(auth.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, domain.TokenKindAccess, auth.AccessTokenTTL)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Value: value, ExpiresAt: exp}, nil
}

// IssueRefreshToken signs a thirty day token carrying only the user id.
func (s *AuthService) IssueRefreshToken(user *domain.User) (IssuedToken, error) {
	value, exp, err := s.tokenMgr.Issue(auth.Claims{UserID: user.ID}, domain.TokenKindRefresh, auth.RefreshTokenTTL)
	if err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{Value: value, ExpiresAt: exp}, nil
}

// Verify decodes the token and checks its kind. Expired, forged and
// mismatched tokens are indistinguishable to the caller.
func (s *AuthService) Verify(token string, expected domain.TokenKind) (*auth.Claims, bool) {
	claims, err := s.tokenMgr.Parse(token)
	if err != nil {
		return nil, false
	}
	if claims.Kind != expected {
		return nil, false
	}
	return claims, true
}

// ResolveIdentity maps an access token to the live user it names. A deleted
// user yields ErrInvalidToken like any other unusable token.
func (s *AuthService) ResolveIdentity(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, ok := s.Verify(accessToken, domain.TokenKindAccess)
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new access token. The role in the
// new token is read from the store, not from the refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (IssuedToken, error) {
	claims, ok := s.Verify(refreshToken, domain.TokenKindRefresh)
	if !ok {
		return IssuedToken{}, ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return IssuedToken{}, notFoundAs(err, ErrUserNotFound)
	}
	return s.IssueAccessToken(user)
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:       events.EventUserRegistered,
		ResourceID: user.ID,
		Payload:    events.UserPayload{Email: user.Email, Role: user.Role},
	})
	return user, nil
}

// IsManager reports whether the identity holds the manager role.
func (s *AuthService) IsManager(user *domain.User) bool {
	return auth.IsManager(user)
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
