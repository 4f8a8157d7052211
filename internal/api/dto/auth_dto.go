package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// LoginRequest is the POST /auth/login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks email format and password length.
func (r LoginRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Email, emailRules(true)...),
		validation.Field(&r.Password, passwordRules(true)...),
	), "email", "password")
}

// RegisterRequest is the POST /auth/register payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"user_type"`
}

// Validate checks every field; user_type is optional.
func (r RegisterRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules()...),
		validation.Field(&r.Email, emailRules(true)...),
		validation.Field(&r.Password, passwordRules(true)...),
		validation.Field(&r.UserType, userTypeRule()),
	), "name", "email", "password", "user_type")
}

// RefreshRequest is the POST /auth/refresh payload.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Validate requires the token.
func (r RefreshRequest) Validate() error {
	return firstViolation(validation.ValidateStruct(&r,
		validation.Field(&r.RefreshToken, validation.Required.Error("refresh token is required")),
	), "refresh_token")
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Message      string       `json:"message"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshResponse carries a freshly minted access token.
type RefreshResponse struct {
	Message     string `json:"message"`
	AccessToken string `json:"access_token"`
}

// VerifyResponse reports a valid access token and its identity.
type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  UserResponse `json:"user"`
}

// MessageResponse is a bare confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
