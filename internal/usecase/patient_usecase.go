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

type PatientUsecase interface {
	GetProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error)
	UpdateProfile(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	ChangePassword(ctx context.Context, patientID uuid.UUID, req *dto.ChangePasswordRequest) error
	DeletePatient(ctx context.Context, actor service.Actor, patientID uuid.UUID) error
}

type patientUsecase struct {
	tx           repository.Transactor
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	events       service.EventPublisher
	hasher       hasher.Hasher
	tokenStore   service.TokenStore
	now          func() time.Time
}

func NewPatientUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	events service.EventPublisher,
	hasher hasher.Hasher,
	tokenStore service.TokenStore,
) PatientUsecase {
	return &patientUsecase{
		tx:           tx,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		events:       events,
		hasher:       hasher,
		tokenStore:   tokenStore,
		now:          time.Now,
	}
}

func (u *patientUsecase) find(ctx context.Context, db *gorm.DB, patientID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(ctx, db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrAccountNotFound
	}
	return patient, nil
}

// findForUpdate locks the patient row for the rest of the transaction and
// returns it with its associations loaded.
func (u *patientUsecase) findForUpdate(ctx context.Context, tx *gorm.DB, patientID uuid.UUID) (*entity.Patient, error) {
	locked, err := u.patientRepo.FindByIDForUpdate(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to lock patient: %+v", err)
		return nil, err
	}
	if locked == nil {
		return nil, ErrAccountNotFound
	}
	return u.find(ctx, tx, patientID)
}

func (u *patientUsecase) GetProfile(ctx context.Context, patientID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.find(ctx, u.tx.DB(ctx), patientID)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) UpdateProfile(ctx context.Context, patientID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	var updated *entity.Patient

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.findForUpdate(ctx, tx, patientID)
		if err != nil {
			return err
		}
		oldValue := converter.PatientToResponse(patient)

		converter.ApplyAccountUpdate(&patient.Account, &req.UpdateAccountRequest)
		if req.BloodType != "" {
			patient.BloodType = req.BloodType
		}

		if verr := patient.Validate(); verr != nil {
			return verr
		}
		if err := patient.PrepareForSave(u.hasher, u.now()); err != nil {
			return err
		}
		if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
			return err
		}

		updated = patient
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(patient.ID, entity.RolePatient), entity.AuditActionProfileUpdate,
			"patient", patient.ID.String(), oldValue, converter.PatientToResponse(patient))
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to update patient: %+v", err)
		}
		return nil, err
	}

	return converter.PatientToResponse(updated), nil
}

// ChangePassword replaces the secret after checking the old one and revokes
// every issued token of the account.
func (u *patientUsecase) ChangePassword(ctx context.Context, patientID uuid.UUID, req *dto.ChangePasswordRequest) error {
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.findForUpdate(ctx, tx, patientID)
		if err != nil {
			return err
		}
		if !patient.CheckPassword(u.hasher, req.OldPassword) {
			return wrongOldPassword()
		}

		patient.SetPassword(req.NewPassword, req.NewPasswordConfirmation)
		if verr := patient.Validate(); verr != nil {
			return verr
		}
		if err := patient.PrepareForSave(u.hasher, u.now()); err != nil {
			return err
		}
		if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(patient.ID, entity.RolePatient), entity.AuditActionPasswordChange,
			"patient", patient.ID.String(), nil, nil)
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to change patient password: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, patientID); err != nil {
		u.log.Warnf("Failed to revoke patient tokens: %+v", err)
	}
	return nil
}

// DeletePatient removes the account; its profile is removed by cascade.
func (u *patientUsecase) DeletePatient(ctx context.Context, actor service.Actor, patientID uuid.UUID) error {
	var deleted *entity.Patient

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.find(ctx, tx, patientID)
		if err != nil {
			return err
		}
		if _, err := u.patientRepo.Delete(ctx, tx, patient.ID); err != nil {
			return err
		}

		deleted = patient
		return u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete,
			"patient", patient.ID.String(), converter.PatientToResponse(patient))
	})
	if err != nil {
		if err != ErrAccountNotFound {
			u.log.Warnf("Failed to delete patient: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, deleted.ID); err != nil {
		u.log.Warnf("Failed to revoke patient tokens: %+v", err)
	}
	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountDeleted, deleted.ID, entity.RolePatient, deleted.Email))

	return nil
}
