package dto

import (
	"time"

	"github.com/google/uuid"
)

// AccountRequest carries the registration fields every role shares.
type AccountRequest struct {
	UserName             string `json:"user_name" validate:"required,max=100"`
	FirstName            string `json:"first_name" validate:"required,max=100"`
	LastName             string `json:"last_name" validate:"required,max=100"`
	Email                string `json:"email" validate:"required,email,max=255"`
	Password             string `json:"password" validate:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required"`
	NationalIDNumber     string `json:"national_id_number" validate:"required,max=14"`
	PhoneNumber          string `json:"phone_number" validate:"required,max=20"`
	Address              string `json:"address" validate:"omitempty,max=200"`
	Gender               string `json:"gender" validate:"required,oneof=Male Female"`
}

// UpdateAccountRequest holds the editable account fields. Empty values keep
// the stored ones; user_name, email and the secret cannot be changed here.
type UpdateAccountRequest struct {
	FirstName   string `json:"first_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"omitempty,max=100"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	Address     string `json:"address" validate:"omitempty,max=200"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female"`
	Age         int    `json:"age" validate:"omitempty,gt=0"`
}

type ChangePasswordRequest struct {
	OldPassword             string `json:"old_password" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,min=8,max=72"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required"`
}

type SetActivationRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// Response DTOs

type AccountResponse struct {
	ID               uuid.UUID `json:"id"`
	UserName         string    `json:"user_name"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Email            string    `json:"email"`
	NationalIDNumber string    `json:"national_id_number"`
	PhoneNumber      string    `json:"phone_number"`
	Address          string    `json:"address"`
	Gender           string    `json:"gender"`
	Age              int       `json:"age"`
	Slug             string    `json:"slug"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
