package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/project-service/internal/domain"
)

// UserCreateRequest is the POST /users payload.
type UserCreateRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	UserType string  `json:"user_type"`
	Password *string `json:"password"`
}

// Validate checks the payload.
func (r UserCreateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Email, emailRules(true)...),
		validation.Field(&r.UserType, validation.Required.Error("user_type is required"), userTypeRule()),
		validation.Field(&r.Password, optionalPasswordRules()...),
	), "name", "email", "user_type", "password")
}

// UserUpdateRequest is the PUT /users/:id payload. Every field is optional.
type UserUpdateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	UserType *string `json:"user_type"`
	Password *string `json:"password"`
}

// Validate checks the fields that are present.
func (r UserUpdateRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Email, append([]validation.Rule{notBlank("email cannot be empty")}, emailRules(false)...)...),
		validation.Field(&r.UserType, notBlank("user_type cannot be empty"), userTypeRule()),
		validation.Field(&r.Password, optionalPasswordRules()...),
	), "name", "email", "user_type", "password")
}

func optionalPasswordRules() []validation.Rule {
	return append([]validation.Rule{notBlank("password cannot be empty")}, passwordRules(false)...)
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	UserType  domain.Role       `json:"user_type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	Projects  []ProjectResponse `json:"projects,omitempty"`
}

// UserListResponse wraps a user listing.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Count int            `json:"count"`
}

// NewUserResponse maps the domain user without its password hash.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		UserType:  u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// NewUserListResponse maps a user listing.
func NewUserListResponse(users []domain.User) UserListResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return UserListResponse{Users: out, Count: len(out)}
}
