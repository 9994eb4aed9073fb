package dto

import "github.com/google/uuid"

// Request DTOs

type RegisterDoctorRequest struct {
	AccountRequest
	Age              int    `json:"age" validate:"required,gt=0"`
	SpecializationID int    `json:"specialization_id" validate:"required,gt=0"`
	MembershipNo     string `json:"membership_no" validate:"required,max=30"`
	GraduationYear   int    `json:"graduation_year" validate:"required,gte=1970"`
}

type UpdateDoctorRequest struct {
	UpdateAccountRequest
	SpecializationID int `json:"specialization_id" validate:"omitempty,gt=0"`
	GraduationYear   int `json:"graduation_year" validate:"omitempty,gte=1970"`
}

// Response DTOs

type DoctorResponse struct {
	AccountResponse
	SpecializationID int                     `json:"specialization_id"`
	Specialization   *SpecializationResponse `json:"specialization,omitempty"`
	MembershipNo     string                  `json:"membership_no"`
	GraduationYear   int                     `json:"graduation_year"`
	Active           bool                    `json:"active"`
	ProfileID        *uuid.UUID              `json:"profile_id,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
