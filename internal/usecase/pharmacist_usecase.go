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

type PharmacistUsecase interface {
	GetProfile(ctx context.Context, pharmacistID uuid.UUID) (*dto.PharmacistResponse, error)
	UpdateProfile(ctx context.Context, pharmacistID uuid.UUID, req *dto.UpdatePharmacistRequest) (*dto.PharmacistResponse, error)
	ChangePassword(ctx context.Context, pharmacistID uuid.UUID, req *dto.ChangePasswordRequest) error
	GetAllPharmacists(ctx context.Context, filter entity.AccountFilter) (*dto.PharmacistListResponse, error)
	SetActive(ctx context.Context, actor service.Actor, pharmacistID uuid.UUID, active bool) (*dto.PharmacistResponse, error)
	DeletePharmacist(ctx context.Context, actor service.Actor, pharmacistID uuid.UUID) error
}

type pharmacistUsecase struct {
	tx             repository.Transactor
	log            *logrus.Logger
	pharmacistRepo repository.PharmacistRepository
	profileService service.ProfileService
	auditService   service.AuditService
	events         service.EventPublisher
	hasher         hasher.Hasher
	tokenStore     service.TokenStore
	now            func() time.Time
}

func NewPharmacistUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	pharmacistRepo repository.PharmacistRepository,
	profileService service.ProfileService,
	auditService service.AuditService,
	events service.EventPublisher,
	hasher hasher.Hasher,
	tokenStore service.TokenStore,
) PharmacistUsecase {
	return &pharmacistUsecase{
		tx:             tx,
		log:            log,
		pharmacistRepo: pharmacistRepo,
		profileService: profileService,
		auditService:   auditService,
		events:         events,
		hasher:         hasher,
		tokenStore:     tokenStore,
		now:            time.Now,
	}
}

func (u *pharmacistUsecase) find(ctx context.Context, db *gorm.DB, pharmacistID uuid.UUID) (*entity.Pharmacist, error) {
	pharmacist, err := u.pharmacistRepo.FindByID(ctx, db, pharmacistID)
	if err != nil {
		u.log.Warnf("Failed to find pharmacist: %+v", err)
		return nil, err
	}
	if pharmacist == nil {
		return nil, ErrAccountNotFound
	}
	return pharmacist, nil
}

// findForUpdate locks the pharmacist row for the rest of the transaction and
// returns it with its associations loaded.
func (u *pharmacistUsecase) findForUpdate(ctx context.Context, tx *gorm.DB, pharmacistID uuid.UUID) (*entity.Pharmacist, error) {
	locked, err := u.pharmacistRepo.FindByIDForUpdate(ctx, tx, pharmacistID)
	if err != nil {
		u.log.Warnf("Failed to lock pharmacist: %+v", err)
		return nil, err
	}
	if locked == nil {
		return nil, ErrAccountNotFound
	}
	return u.find(ctx, tx, pharmacistID)
}

func (u *pharmacistUsecase) GetProfile(ctx context.Context, pharmacistID uuid.UUID) (*dto.PharmacistResponse, error) {
	pharmacist, err := u.find(ctx, u.tx.DB(ctx), pharmacistID)
	if err != nil {
		return nil, err
	}
	return converter.PharmacistToResponse(pharmacist), nil
}

func (u *pharmacistUsecase) UpdateProfile(ctx context.Context, pharmacistID uuid.UUID, req *dto.UpdatePharmacistRequest) (*dto.PharmacistResponse, error) {
	var updated *entity.Pharmacist

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		pharmacist, err := u.findForUpdate(ctx, tx, pharmacistID)
		if err != nil {
			return err
		}
		oldValue := converter.PharmacistToResponse(pharmacist)

		converter.ApplyAccountUpdate(&pharmacist.Account, &req.UpdateAccountRequest)
		if req.Shift != "" {
			pharmacist.Shift = entity.Shift(req.Shift)
		}

		if verr := pharmacist.Validate(); verr != nil {
			return verr
		}
		if err := pharmacist.PrepareForSave(u.hasher, u.now()); err != nil {
			return err
		}
		if err := u.pharmacistRepo.Update(ctx, tx, pharmacist); err != nil {
			return err
		}

		updated = pharmacist
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(pharmacist.ID, entity.RolePharmacist), entity.AuditActionProfileUpdate,
			"pharmacist", pharmacist.ID.String(), oldValue, converter.PharmacistToResponse(pharmacist))
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to update pharmacist: %+v", err)
		}
		return nil, err
	}

	return converter.PharmacistToResponse(updated), nil
}

func (u *pharmacistUsecase) ChangePassword(ctx context.Context, pharmacistID uuid.UUID, req *dto.ChangePasswordRequest) error {
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		pharmacist, err := u.findForUpdate(ctx, tx, pharmacistID)
		if err != nil {
			return err
		}
		if !pharmacist.CheckPassword(u.hasher, req.OldPassword) {
			return wrongOldPassword()
		}

		pharmacist.SetPassword(req.NewPassword, req.NewPasswordConfirmation)
		if verr := pharmacist.Validate(); verr != nil {
			return verr
		}
		if err := pharmacist.PrepareForSave(u.hasher, u.now()); err != nil {
			return err
		}
		if err := u.pharmacistRepo.Update(ctx, tx, pharmacist); err != nil {
			return err
		}
		return u.auditService.LogUpdate(ctx, tx, service.AccountActor(pharmacist.ID, entity.RolePharmacist), entity.AuditActionPasswordChange,
			"pharmacist", pharmacist.ID.String(), nil, nil)
	})
	if err != nil {
		if !isDomainError(err) && err != ErrAccountNotFound {
			u.log.Warnf("Failed to change pharmacist password: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, pharmacistID); err != nil {
		u.log.Warnf("Failed to revoke pharmacist tokens: %+v", err)
	}
	return nil
}

func (u *pharmacistUsecase) GetAllPharmacists(ctx context.Context, filter entity.AccountFilter) (*dto.PharmacistListResponse, error) {
	pharmacists, err := u.pharmacistRepo.FindAll(ctx, u.tx.DB(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all pharmacists: %+v", err)
		return nil, err
	}

	responses := converter.PharmacistsToResponses(pharmacists)

	return &dto.PharmacistListResponse{
		Pharmacists: responses,
		Total:       len(responses),
	}, nil
}

// SetActive approves or suspends a pharmacist, materializing the profile on
// first activation.
func (u *pharmacistUsecase) SetActive(ctx context.Context, actor service.Actor, pharmacistID uuid.UUID, active bool) (*dto.PharmacistResponse, error) {
	var changed bool
	var email string

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		pharmacist, err := u.pharmacistRepo.FindByIDForUpdate(ctx, tx, pharmacistID)
		if err != nil {
			return err
		}
		if pharmacist == nil {
			return ErrAccountNotFound
		}
		email = pharmacist.Email

		if pharmacist.Active != active {
			changed = true
			pharmacist.Active = active
			if err := pharmacist.PrepareForSave(u.hasher, u.now()); err != nil {
				return err
			}
			if err := u.pharmacistRepo.UpdateActive(ctx, tx, pharmacist); err != nil {
				return err
			}

			action := entity.AuditActionAccountDeactivate
			if active {
				action = entity.AuditActionAccountActivate
			}
			if err := u.auditService.LogUpdate(ctx, tx, actor, action, "pharmacist", pharmacist.ID.String(),
				map[string]bool{"active": !active}, map[string]bool{"active": active}); err != nil {
				return err
			}
		}

		created, err := u.profileService.MaterializePharmacistProfile(ctx, tx, pharmacist)
		if err != nil {
			return err
		}
		if created {
			return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionProfileCreate, "pharmacist_profile",
				pharmacist.Profile.ID.String(), map[string]string{"pharmacist_id": pharmacist.ID.String(), "slug": pharmacist.Profile.Slug})
		}
		return nil
	})
	if err != nil {
		if err != ErrAccountNotFound {
			u.log.Warnf("Failed to set pharmacist activation: %+v", err)
		}
		return nil, err
	}

	if changed {
		eventType := service.EventAccountDeactivated
		if active {
			eventType = service.EventAccountActivated
		} else if err := u.tokenStore.RevokeAll(ctx, pharmacistID); err != nil {
			u.log.Warnf("Failed to revoke pharmacist tokens: %+v", err)
		}
		u.events.Publish(ctx, service.NewAccountEvent(eventType, pharmacistID, entity.RolePharmacist, email))
	}

	return u.GetProfile(ctx, pharmacistID)
}

func (u *pharmacistUsecase) DeletePharmacist(ctx context.Context, actor service.Actor, pharmacistID uuid.UUID) error {
	var deleted *entity.Pharmacist

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		pharmacist, err := u.find(ctx, tx, pharmacistID)
		if err != nil {
			return err
		}
		if _, err := u.pharmacistRepo.Delete(ctx, tx, pharmacist.ID); err != nil {
			return err
		}

		deleted = pharmacist
		return u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionAccountDelete,
			"pharmacist", pharmacist.ID.String(), converter.PharmacistToResponse(pharmacist))
	})
	if err != nil {
		if err != ErrAccountNotFound {
			u.log.Warnf("Failed to delete pharmacist: %+v", err)
		}
		return err
	}

	if err := u.tokenStore.RevokeAll(ctx, deleted.ID); err != nil {
		u.log.Warnf("Failed to revoke pharmacist tokens: %+v", err)
	}
	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountDeleted, deleted.ID, entity.RolePharmacist, deleted.Email))

	return nil
}
