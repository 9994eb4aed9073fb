package repository

import (
	"context"

	"clinic-accounts/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (*entity.PatientProfile, error)
}

type DoctorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error)
}

type PharmacistProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.PharmacistProfile) error
	FindByPharmacistID(ctx context.Context, db *gorm.DB, pharmacistID uuid.UUID) (*entity.PharmacistProfile, error)
}
