package usecase

import (
	"context"
	"strconv"
	"time"

	"clinic-accounts/internal/converter"
	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/domain/repository"
	"clinic-accounts/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SpecializationUsecase interface {
	CreateSpecialization(ctx context.Context, actor service.Actor, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error)
	GetSpecialization(ctx context.Context, id int) (*dto.SpecializationResponse, error)
	GetAllSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error)
	UpdateSpecialization(ctx context.Context, actor service.Actor, id int, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error)
	DeleteSpecialization(ctx context.Context, actor service.Actor, id int) error
}

type specializationUsecase struct {
	tx                 repository.Transactor
	log                *logrus.Logger
	specializationRepo repository.SpecializationRepository
	doctorRepo         repository.DoctorRepository
	auditService       service.AuditService
	now                func() time.Time
}

func NewSpecializationUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	specializationRepo repository.SpecializationRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) SpecializationUsecase {
	return &specializationUsecase{
		tx:                 tx,
		log:                log,
		specializationRepo: specializationRepo,
		doctorRepo:         doctorRepo,
		auditService:       auditService,
		now:                time.Now,
	}
}

func (u *specializationUsecase) CreateSpecialization(ctx context.Context, actor service.Actor, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error) {
	specialization := &entity.Specialization{Name: req.Name}
	if verr := specialization.Validate(); verr != nil {
		return nil, verr
	}
	specialization.PrepareForSave(u.now())

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.specializationRepo.Create(ctx, tx, specialization); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionSpecializationAdd, "specialization",
			strconv.Itoa(specialization.ID), converter.SpecializationToResponse(specialization))
	})
	if err != nil {
		if !isDomainError(err) {
			u.log.Warnf("Failed to create specialization: %+v", err)
		}
		return nil, err
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) GetSpecialization(ctx context.Context, id int) (*dto.SpecializationResponse, error) {
	specialization, err := u.specializationRepo.FindByID(ctx, u.tx.DB(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find specialization: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, ErrSpecializationNotFound
	}

	return converter.SpecializationToResponse(specialization), nil
}

func (u *specializationUsecase) GetAllSpecializations(ctx context.Context) (*dto.SpecializationListResponse, error) {
	specializations, err := u.specializationRepo.FindAll(ctx, u.tx.DB(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all specializations: %+v", err)
		return nil, err
	}

	responses := converter.SpecializationsToResponses(specializations)

	return &dto.SpecializationListResponse{
		Specializations: responses,
		Total:           len(responses),
	}, nil
}

// UpdateSpecialization renames a specialization. The slug keeps the value
// derived from the original name.
func (u *specializationUsecase) UpdateSpecialization(ctx context.Context, actor service.Actor, id int, req *dto.SpecializationRequest) (*dto.SpecializationResponse, error) {
	var updated *entity.Specialization

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		specialization, err := u.specializationRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if specialization == nil {
			return ErrSpecializationNotFound
		}
		oldValue := converter.SpecializationToResponse(specialization)

		specialization.Name = req.Name
		if verr := specialization.Validate(); verr != nil {
			return verr
		}
		if err := u.specializationRepo.Update(ctx, tx, specialization); err != nil {
			return err
		}

		updated = specialization
		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionSpecializationEdit, "specialization",
			strconv.Itoa(id), oldValue, converter.SpecializationToResponse(specialization))
	})
	if err != nil {
		if !isDomainError(err) && err != ErrSpecializationNotFound {
			u.log.Warnf("Failed to update specialization: %+v", err)
		}
		return nil, err
	}

	return converter.SpecializationToResponse(updated), nil
}

// DeleteSpecialization refuses with entity.ErrStillReferenced while any
// doctor points at the specialization.
func (u *specializationUsecase) DeleteSpecialization(ctx context.Context, actor service.Actor, id int) error {
	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		specialization, err := u.specializationRepo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if specialization == nil {
			return ErrSpecializationNotFound
		}

		count, err := u.doctorRepo.CountBySpecialization(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return entity.ErrStillReferenced
		}

		if _, err := u.specializationRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		return u.auditService.LogDelete(ctx, tx, actor, entity.AuditActionSpecializationDrop, "specialization",
			strconv.Itoa(id), converter.SpecializationToResponse(specialization))
	})
	if err != nil {
		if !isDomainError(err) && err != ErrSpecializationNotFound {
			u.log.Warnf("Failed to delete specialization: %+v", err)
		}
		return err
	}

	return nil
}
