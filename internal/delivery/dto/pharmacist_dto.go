package dto

import "github.com/google/uuid"

// Request DTOs

// RegisterPharmacistRequest takes age as a pointer because zero is an accepted
// value that must still be sent.
type RegisterPharmacistRequest struct {
	AccountRequest
	Age   *int   `json:"age" validate:"required,gte=0"`
	Shift string `json:"shift" validate:"required,oneof=Morning Evening"`
}

type UpdatePharmacistRequest struct {
	UpdateAccountRequest
	Shift string `json:"shift" validate:"omitempty,oneof=Morning Evening"`
}

// Response DTOs

type PharmacistResponse struct {
	AccountResponse
	Shift     string     `json:"shift"`
	Active    bool       `json:"active"`
	ProfileID *uuid.UUID `json:"profile_id,omitempty"`
}

type PharmacistListResponse struct {
	Pharmacists []PharmacistResponse `json:"pharmacists"`
	Total       int                  `json:"total"`
}
