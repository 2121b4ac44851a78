package models

import "errors"

// Direction selects the points endpoint: add grants points, use spends them.
type Direction string

const (
	DirectionAdd Direction = "add"
	DirectionUse Direction = "use"
)

type PointsTransactionRequest struct {
	PointID string `json:"point_id" validate:"required"`
	Point   int    `json:"point" validate:"required,gt=0"`
	Shop    string `json:"shop" validate:"required"`
}

// APIError is the structured error body the backend attaches to non-2xx
// responses.
type APIError struct {
	Message string         `json:"message"`
	Errors  map[string]any `json:"errors"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=30"`
}

// User is the authoritative profile record shape. Optional backend fields
// stay pointers so absent and empty are distinguishable.
type User struct {
	ID          int     `json:"id"`
	Email       string  `json:"email"`
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Birthday    *string `json:"birthday"`
	PhoneNumber *string `json:"phone_number"`
	PointID     string  `json:"point_id"`
	Status      *string `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// AuthResponse covers both /api/login and /api/register: register replies
// without a token.
type AuthResponse struct {
	Token   *string `json:"token"`
	Message *string `json:"message,omitempty"`
	User    *User   `json:"user,omitempty"`
}

var (
	ErrUnauthenticated    = errors.New("no auth token present")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
