package dto

import "github.com/google/uuid"

// Request DTOs

type RegisterPatientRequest struct {
	AccountRequest
	Age       int    `json:"age" validate:"required,gt=0"`
	BloodType string `json:"blood_type" validate:"omitempty,max=5"`
}

type UpdatePatientRequest struct {
	UpdateAccountRequest
	BloodType string `json:"blood_type" validate:"omitempty,max=5"`
}

// Response DTOs

type PatientResponse struct {
	AccountResponse
	BloodType string     `json:"blood_type"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
}
