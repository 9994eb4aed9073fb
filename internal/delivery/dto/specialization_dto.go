package dto

import "time"

// Request DTOs

type SpecializationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Response DTOs

type SpecializationResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type SpecializationListResponse struct {
	Specializations []SpecializationResponse `json:"specializations"`
	Total           int                      `json:"total"`
}
