package usecase

import (
	"context"
	"fmt"
	"sync"
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

// TokenIssuer signs access tokens. *jwt.JWTService satisfies it.
type TokenIssuer interface {
	GenerateAccessToken(accountID uuid.UUID, role, email string) (string, string, error)
	GetAccessExpiry() time.Duration
}

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error)
	RegisterPharmacist(ctx context.Context, req *dto.RegisterPharmacistRequest) (*dto.PharmacistResponse, error)
	Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, accountID uuid.UUID, tokenID string) error
}

type authUsecase struct {
	tx                 repository.Transactor
	log                *logrus.Logger
	patientRepo        repository.PatientRepository
	doctorRepo         repository.DoctorRepository
	pharmacistRepo     repository.PharmacistRepository
	specializationRepo repository.SpecializationRepository
	profileService     service.ProfileService
	auditService       service.AuditService
	events             service.EventPublisher
	hasher             hasher.Hasher
	tokens             TokenIssuer
	tokenStore         service.TokenStore
	now                func() time.Time

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthUsecase(
	tx repository.Transactor,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	pharmacistRepo repository.PharmacistRepository,
	specializationRepo repository.SpecializationRepository,
	profileService service.ProfileService,
	auditService service.AuditService,
	events service.EventPublisher,
	hasher hasher.Hasher,
	tokens TokenIssuer,
	tokenStore service.TokenStore,
) AuthUsecase {
	return &authUsecase{
		tx:                 tx,
		log:                log,
		patientRepo:        patientRepo,
		doctorRepo:         doctorRepo,
		pharmacistRepo:     pharmacistRepo,
		specializationRepo: specializationRepo,
		profileService:     profileService,
		auditService:       auditService,
		events:             events,
		hasher:             hasher,
		tokens:             tokens,
		tokenStore:         tokenStore,
		now:                time.Now,
	}
}

func (u *authUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	exists, err := u.patientRepo.ExistsByEmail(ctx, u.tx.DB(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check patient email: %+v", err)
		return nil, err
	}
	if exists {
		return nil, duplicateEmail()
	}

	patient := &entity.Patient{
		Account:   converter.AccountRequestToEntity(&req.AccountRequest),
		BloodType: req.BloodType,
	}
	patient.Age = req.Age

	if verr := patient.Validate(); verr != nil {
		return nil, verr
	}
	if err := patient.PrepareForSave(u.hasher, u.now()); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			return err
		}
		if err := u.profileService.CreatePatientProfile(ctx, tx, patient); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, service.Actor{Role: entity.RolePatient}, entity.AuditActionAccountRegister,
			"patient", patient.ID.String(), converter.PatientToResponse(patient))
	})
	if err != nil {
		if !isDomainError(err) {
			u.log.Warnf("Failed to register patient: %+v", err)
		}
		return nil, err
	}

	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountRegistered, patient.ID, entity.RolePatient, patient.Email))

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
	db := u.tx.DB(ctx)

	exists, err := u.doctorRepo.ExistsByEmail(ctx, db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check doctor email: %+v", err)
		return nil, err
	}
	if exists {
		return nil, duplicateEmail()
	}

	doctor := &entity.Doctor{
		Account:          converter.AccountRequestToEntity(&req.AccountRequest),
		SpecializationID: req.SpecializationID,
		MembershipNo:     req.MembershipNo,
		GraduationYear:   req.GraduationYear,
	}
	doctor.Age = req.Age

	now := u.now()
	if verr := doctor.Validate(now); verr != nil {
		return nil, verr
	}

	specialization, err := u.specializationRepo.FindByID(ctx, db, doctor.SpecializationID)
	if err != nil {
		u.log.Warnf("Failed to find specialization: %+v", err)
		return nil, err
	}
	if specialization == nil {
		return nil, unknownSpecialization()
	}

	if err := doctor.PrepareForSave(u.hasher, now); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
			return err
		}
		if _, err := u.profileService.MaterializeDoctorProfile(ctx, tx, doctor); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, service.Actor{Role: entity.RoleDoctor}, entity.AuditActionAccountRegister,
			"doctor", doctor.ID.String(), converter.DoctorToResponse(doctor))
	})
	if err != nil {
		if !isDomainError(err) {
			u.log.Warnf("Failed to register doctor: %+v", err)
		}
		return nil, err
	}

	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountRegistered, doctor.ID, entity.RoleDoctor, doctor.Email))

	doctor.Specialization = specialization
	return converter.DoctorToResponse(doctor), nil
}

func (u *authUsecase) RegisterPharmacist(ctx context.Context, req *dto.RegisterPharmacistRequest) (*dto.PharmacistResponse, error) {
	exists, err := u.pharmacistRepo.ExistsByEmail(ctx, u.tx.DB(ctx), req.Email)
	if err != nil {
		u.log.Warnf("Failed to check pharmacist email: %+v", err)
		return nil, err
	}
	if exists {
		return nil, duplicateEmail()
	}

	pharmacist := &entity.Pharmacist{
		Account: converter.AccountRequestToEntity(&req.AccountRequest),
		Shift:   entity.Shift(req.Shift),
	}
	if req.Age != nil {
		pharmacist.Age = *req.Age
	}

	if verr := pharmacist.Validate(); verr != nil {
		return nil, verr
	}
	if err := pharmacist.PrepareForSave(u.hasher, u.now()); err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.pharmacistRepo.Create(ctx, tx, pharmacist); err != nil {
			return err
		}
		if _, err := u.profileService.MaterializePharmacistProfile(ctx, tx, pharmacist); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, service.Actor{Role: entity.RolePharmacist}, entity.AuditActionAccountRegister,
			"pharmacist", pharmacist.ID.String(), converter.PharmacistToResponse(pharmacist))
	})
	if err != nil {
		if !isDomainError(err) {
			u.log.Warnf("Failed to register pharmacist: %+v", err)
		}
		return nil, err
	}

	u.events.Publish(ctx, service.NewAccountEvent(service.EventAccountRegistered, pharmacist.ID, entity.RolePharmacist, pharmacist.Email))

	return converter.PharmacistToResponse(pharmacist), nil
}

// loginSubject is the role-independent view of an account used by Login.
type loginSubject struct {
	account *entity.Account
	active  bool
	view    interface{}
}

func (u *authUsecase) findLoginSubject(ctx context.Context, role, email string) (*loginSubject, error) {
	db := u.tx.DB(ctx)

	switch role {
	case entity.RolePatient:
		patient, err := u.patientRepo.FindByEmail(ctx, db, email)
		if err != nil || patient == nil {
			return nil, err
		}
		return &loginSubject{account: &patient.Account, active: true, view: converter.PatientToResponse(patient)}, nil
	case entity.RoleDoctor:
		doctor, err := u.doctorRepo.FindByEmail(ctx, db, email)
		if err != nil || doctor == nil {
			return nil, err
		}
		return &loginSubject{account: &doctor.Account, active: doctor.Active, view: converter.DoctorToResponse(doctor)}, nil
	case entity.RolePharmacist:
		pharmacist, err := u.pharmacistRepo.FindByEmail(ctx, db, email)
		if err != nil || pharmacist == nil {
			return nil, err
		}
		return &loginSubject{account: &pharmacist.Account, active: pharmacist.Active, view: converter.PharmacistToResponse(pharmacist)}, nil
	}

	return nil, fmt.Errorf("unsupported role %q", role)
}

// Login answers every failure (unknown email, wrong secret, account awaiting
// approval) with ErrInvalidCredentials.
func (u *authUsecase) Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	subject, err := u.findLoginSubject(ctx, role, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find %s by email: %+v", role, err)
		return nil, err
	}
	if subject == nil {
		// Spend the same hashing time as a real check.
		u.hasher.Verify(req.Password, u.dummyPasswordDigest())
		return nil, ErrInvalidCredentials
	}

	if !subject.account.CheckPassword(u.hasher, req.Password) || !subject.active {
		return nil, ErrInvalidCredentials
	}

	accessToken, tokenID, err := u.tokens.GenerateAccessToken(subject.account.ID, role, subject.account.Email)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	expiry := u.tokens.GetAccessExpiry()
	if err := u.tokenStore.Store(ctx, subject.account.ID, tokenID, expiry); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(expiry.Seconds()),
		Account:     subject.view,
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, accountID uuid.UUID, tokenID string) error {
	if err := u.tokenStore.Revoke(ctx, accountID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) dummyPasswordDigest() string {
	u.dummyOnce.Do(func() {
		digest, err := u.hasher.Hash(uuid.NewString())
		if err != nil {
			u.log.Warnf("Failed to hash dummy password: %+v", err)
			return
		}
		u.dummyDigest = digest
	})
	return u.dummyDigest
}
