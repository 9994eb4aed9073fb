package usecase

import (
	"context"
	"time"

	"clinic-accounts/internal/converter"
	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/domain/repository"
	"clinic-accounts/internal/service"
	"clinic-accounts/pkg/hasher"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error)
	UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	ChangePassword(ctx context.Context, doctorID uuid.UUID, req *dto.ChangePasswordRequest) error
	GetAllDoctors(ctx context.Context, filter entity.AccountFilter) (*dto.DoctorListResponse, error)
	SetActive(ctx context.Context, actor service.Actor, doctorID uuid.UUID, active bool) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actor service.Actor, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	tx                 repository.Transactor
	log                *logrus.Logger
	doctorRepo         repository.DoctorRepository
	specializationRepo repository.SpecializationRepository
	profileService     service.ProfileService
	auditService       service.AuditService
	events             service.EventPublisher
	hasher             hasher.Hasher
	tokenStore         service.TokenStore
	now                func() time.Time
}

func NewDoctorUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	specializationRepo repository.SpecializationRepository,
	profileService service.ProfileService,
	auditService service.AuditService,
	events service.EventPublisher,
	hasher hasher.Hasher,
	tokenStore service.TokenStore,
) DoctorUsecase {
	return &doctorUsecase{
		tx:                 tx,
		log:                log,
		doctorRepo:         doctorRepo,
		specializationRepo: specializationRepo,
		profileService:     profileService,
		auditService:       auditService,
		events:             events,
		hasher:             hasher,
		tokenStore:         tokenStore,
		now:                time.Now,
	}
}

func (u *doctorUsecase) find(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrAccountNotFound
	}
	return doctor, nil
}

// findForUpdate locks the doctor row for the rest of the transaction and
// returns it with its associations loaded.
func (u *doctorUsecase) findForUpdate(ctx context.Context, tx *gorm.DB, doctorID uuid.UUID) (*entity.Doctor, error) {
	locked, err := u.doctorRepo.FindByIDForUpdate(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to lock doctor: %+v", err)
		return nil, err
	}
	if locked == nil {
		return nil, ErrAccountNotFound
	}
	return u.find(ctx, tx, doctorID)
}

func (u *doctorUsecase) GetProfile(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.find(ctx, u.tx.DB(ctx), doctorID)
	if err != nil {
		return nil, err
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) UpdateProfile(ctx context.Context, doctorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	var updated *entity.Doctor

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.findForUpdate(ctx, tx, doctorID)
		if err != nil {
			return err
		}
		oldValue := converter.DoctorToResponse(doctor)

		converter.ApplyAccountUpdate(&doctor.Account, &req.UpdateAccountRequest)
		if req.GraduationYear != 0 {
			doctor.GraduationYear = req.GraduationYear
		}
		if req.SpecializationID != 0 && req.SpecializationID != doctor.SpecializationID {
			specialization, err := u.specializationRepo.FindByID(ctx, tx, req.SpecializationID)
			if err != nil {
				return err
			}
			if specialization == nil {
				return unknownSpecialization()
			}
			doctor.SpecializationID = specialization.ID
			doctor.Specialization = specialization
		}

		now := u.now()
		if verr := doctor.Validate(now); verr != nil {
			return verr
		}
		if err := doctor.PrepareForSave(u.hasher, now); err != nil {
			return err
		}
		if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
			return err
		}

		updated = doctor
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(doctor.ID, entity.RoleDoctor), entity.AuditActionProfileUpdate,
			"doctor", doctor.ID.String(), oldValue, converter.DoctorToResponse(doctor))
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to update doctor: %+v", err)
		}
		return nil, err
	}

	return converter.DoctorToResponse(updated), nil
}

func (u *doctorUsecase) ChangePassword(ctx context.Context, doctorID uuid.UUID, req *dto.ChangePasswordRequest) error {
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.findForUpdate(ctx, tx, doctorID)
		if err != nil {
			return err
		}
		if !doctor.CheckPassword(u.hasher, req.OldPassword) {
			return wrongOldPassword()
		}

		now := u.now()
		doctor.SetPassword(req.NewPassword, req.NewPasswordConfirmation)
		if verr := doctor.Validate(now); verr != nil {
			return verr
		}
		if err := doctor.PrepareForSave(u.hasher, now); err != nil {
			return err
		}
		if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(doctor.ID, entity.RoleDoctor), entity.AuditActionPasswordChange,
			"doctor", doctor.ID.String(), nil, nil)
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to change doctor password: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to revoke doctor tokens: %+v", err)
	}
	return nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, filter entity.AccountFilter) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx, u.tx.DB(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	responses := converter.DoctorsToResponses(doctors)

	return &dto.DoctorListResponse{
		Doctors: responses,
		Total:   len(responses),
	}, nil
}

// SetActive approves or suspends a doctor. The profile is created the first
// time the doctor is seen active and never again afterwards.
func (u *doctorUsecase) SetActive(ctx context.Context, actor service.Actor, doctorID uuid.UUID, active bool) (*dto.DoctorResponse, error) {
	var changed bool
	var email string

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByIDForUpdate(ctx, tx, doctorID)
		if err != nil {
			return err
		}
		if doctor == nil {
			return ErrAccountNotFound
		}
		email = doctor.Email

		if doctor.Active != active {
			changed = true
			doctor.Active = active
			if err := doctor.PrepareForSave(u.hasher, u.now()); err != nil {
				return err
			}
			if err := u.doctorRepo.UpdateActive(ctx, tx, doctor); err != nil {
				return err
			}

			action := entity.AuditActionAccountDeactivate
			if active {
				action = entity.AuditActionAccountActivate
			}
			if err := u.auditService.LogUpdate(ctx, tx, actor, action, "doctor", doctor.ID.String(),
				map[string]bool{"active": !active}, map[string]bool{"active": active}); err != nil {
				return err
			}
		}

		created, err := u.profileService.MaterializeDoctorProfile(ctx, tx, doctor)
		if err != nil {
			return err
		}
		if created {
			return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionProfileCreate, "doctor_profile",
				doctor.Profile.ID.String(), map[string]string{"doctor_id": doctor.ID.String(), "slug": doctor.Profile.Slug})
		}
		return nil
	})
	if err != nil {
		if err != ErrAccountNotFound {
			u.log.Warnf("Failed to set doctor activation: %+v", err)
		}
		return nil, err
	}

	if changed {
		eventType := service.EventAccountDeactivated
		if active {
			eventType = service.EventAccountActivated
		} else if err := u.tokenStore.RevokeAll(ctx, doctorID); err != nil {
			u.log.Warnf("Failed to revoke doctor tokens: %+v", err)
		}
		u.events.Publish(ctx, service.NewAccountEvent(eventType, doctorID, entity.RoleDoctor, email))
	}

	return u.GetProfile(ctx, doctorID)
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actor service.Actor, doctorID uuid.UUID) error {
	var deleted *entity.Doctor

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.find(ctx, tx, doctorID)
		if err != nil {
			return err
		}
		if _, err := u.doctorRepo.Delete(ctx, tx, doctor.ID); err != nil {
			return err
		}

		deleted = doctor
		return u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete,
			"doctor", doctor.ID.String(), converter.DoctorToResponse(doctor))
	})
	if err != nil {
		if err != ErrAccountNotFound {
			u.log.Warnf("Failed to delete doctor: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, deleted.ID); err != nil {
		u.log.Warnf("Failed to revoke doctor tokens: %+v", err)
	}
	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountDeleted, deleted.ID, entity.RoleDoctor, deleted.Email))

	return nil
}
