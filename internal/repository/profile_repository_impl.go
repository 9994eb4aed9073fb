package repository

import (
	"context"
	"errors"

	"clinic-accounts/internal/domain/entity"
	domainRepo "clinic-accounts/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error)
}

func (r *patientProfileRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.WithContext(ctx).Where("patient_id = ?", patientID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error)
}

func (r *doctorProfileRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Where("doctor_id = ?", doctorID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

type pharmacistProfileRepository struct{}

func NewPharmacistProfileRepository() domainRepo.PharmacistProfileRepository {
	return &pharmacistProfileRepository{}
}

func (r *pharmacistProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PharmacistProfile) error {
	return translateWriteError(db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error)
}

func (r *pharmacistProfileRepository) FindByPharmacistID(ctx context.Context, db *gorm.DB, pharmacistID uuid.UUID) (*entity.PharmacistProfile, error) {
	var profile entity.PharmacistProfile
	err := db.WithContext(ctx).Where("pharmacist_id = ?", pharmacistID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
