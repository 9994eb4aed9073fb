package service

import (
	"context"
	"time"

	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfileService materializes the per-role profile rows. It is called
// explicitly after the owning account has been written, on the same
// transaction.
type ProfileService interface {
	// CreatePatientProfile creates the profile of a newly registered patient.
	CreatePatientProfile(ctx context.Context, tx *gorm.DB, patient *entity.Patient) error
	// MaterializeDoctorProfile creates the profile of an active doctor that has
	// none yet. It reports whether a profile was created.
	MaterializeDoctorProfile(ctx context.Context, tx *gorm.DB, doctor *entity.Doctor) (bool, error)
	// MaterializePharmacistProfile is MaterializeDoctorProfile for pharmacists.
	MaterializePharmacistProfile(ctx context.Context, tx *gorm.DB, pharmacist *entity.Pharmacist) (bool, error)
}

type profileService struct {
	log                   *logrus.Logger
	patientProfileRepo    repository.PatientProfileRepository
	doctorProfileRepo     repository.DoctorProfileRepository
	pharmacistProfileRepo repository.PharmacistProfileRepository
	now                   func() time.Time
}

func NewProfileService(
	log *logrus.Logger,
	patientProfileRepo repository.PatientProfileRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	pharmacistProfileRepo repository.PharmacistProfileRepository,
) ProfileService {
	return &profileService{
		log:                   log,
		patientProfileRepo:    patientProfileRepo,
		doctorProfileRepo:     doctorProfileRepo,
		pharmacistProfileRepo: pharmacistProfileRepo,
		now:                   time.Now,
	}
}

func (s *profileService) CreatePatientProfile(ctx context.Context, tx *gorm.DB, patient *entity.Patient) error {
	profile := entity.NewPatientProfile(patient, s.now())
	if err := s.patientProfileRepo.Create(ctx, tx, profile); err != nil {
		s.log.Warnf("Failed to create patient profile: %+v", err)
		return err
	}

	patient.Profile = profile
	return nil
}

func (s *profileService) MaterializeDoctorProfile(ctx context.Context, tx *gorm.DB, doctor *entity.Doctor) (bool, error) {
	if !doctor.Active {
		return false, nil
	}

	existing, err := s.doctorProfileRepo.FindByDoctorID(ctx, tx, doctor.ID)
	if err != nil {
		s.log.Warnf("Failed to find doctor profile: %+v", err)
		return false, err
	}
	if existing != nil {
		doctor.Profile = existing
		return false, nil
	}

	profile := entity.NewDoctorProfile(doctor, s.now())
	if err := s.doctorProfileRepo.Create(ctx, tx, profile); err != nil {
		s.log.Warnf("Failed to create doctor profile: %+v", err)
		return false, err
	}

	doctor.Profile = profile
	return true, nil
}

func (s *profileService) MaterializePharmacistProfile(ctx context.Context, tx *gorm.DB, pharmacist *entity.Pharmacist) (bool, error) {
	if !pharmacist.Active {
		return false, nil
	}

	existing, err := s.pharmacistProfileRepo.FindByPharmacistID(ctx, tx, pharmacist.ID)
	if err != nil {
		s.log.Warnf("Failed to find pharmacist profile: %+v", err)
		return false, err
	}
	if existing != nil {
		pharmacist.Profile = existing
		return false, nil
	}

	profile := entity.NewPharmacistProfile(pharmacist, s.now())
	if err := s.pharmacistProfileRepo.Create(ctx, tx, profile); err != nil {
		s.log.Warnf("Failed to create pharmacist profile: %+v", err)
		return false, err
	}

	pharmacist.Profile = profile
	return true, nil
}
