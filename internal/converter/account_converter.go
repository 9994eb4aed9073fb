package converter

import (
	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

func accountToResponse(a *entity.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:               a.ID,
		UserName:         a.UserName,
		FirstName:        a.FirstName,
		LastName:         a.LastName,
		Email:            a.Email,
		NationalIDNumber: a.NationalIDNumber,
		PhoneNumber:      a.PhoneNumber,
		Address:          a.Address,
		Gender:           string(a.Gender),
		Age:              a.Age,
		Slug:             a.Slug,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

// AccountRequestToEntity copies the shared registration fields and stages the
// secret. Age is set by the caller since its type differs per role.
func AccountRequestToEntity(req *dto.AccountRequest) entity.Account {
	account := entity.Account{
		UserName:         req.UserName,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		NationalIDNumber: req.NationalIDNumber,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		Gender:           entity.Gender(req.Gender),
	}
	account.SetPassword(req.Password, req.PasswordConfirmation)
	return account
}

// ApplyAccountUpdate copies the non-empty fields of req onto a.
func ApplyAccountUpdate(a *entity.Account, req *dto.UpdateAccountRequest) {
	if req.FirstName != "" {
		a.FirstName = req.FirstName
	}
	if req.LastName != "" {
		a.LastName = req.LastName
	}
	if req.PhoneNumber != "" {
		a.PhoneNumber = req.PhoneNumber
	}
	if req.Address != "" {
		a.Address = req.Address
	}
	if req.Gender != "" {
		a.Gender = entity.Gender(req.Gender)
	}
	if req.Age != 0 {
		a.Age = req.Age
	}
}

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(p *entity.Patient) *dto.PatientResponse {
	if p == nil {
		return nil
	}

	var profileID *uuid.UUID
	if p.Profile != nil {
		profileID = lo.ToPtr(p.Profile.ID)
	}

	return &dto.PatientResponse{
		AccountResponse: accountToResponse(&p.Account),
		BloodType:       p.BloodType,
		ProfileID:       profileID,
	}
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(d *entity.Doctor) *dto.DoctorResponse {
	if d == nil {
		return nil
	}

	var profileID *uuid.UUID
	if d.Profile != nil {
		profileID = lo.ToPtr(d.Profile.ID)
	}

	return &dto.DoctorResponse{
		AccountResponse:  accountToResponse(&d.Account),
		SpecializationID: d.SpecializationID,
		Specialization:   SpecializationToResponse(d.Specialization),
		MembershipNo:     d.MembershipNo,
		GraduationYear:   d.GraduationYear,
		Active:           d.Active,
		ProfileID:        profileID,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	return lo.Map(doctors, func(d entity.Doctor, _ int) dto.DoctorResponse {
		return *DoctorToResponse(&d)
	})
}

// PharmacistToResponse converts a Pharmacist entity to PharmacistResponse DTO
func PharmacistToResponse(p *entity.Pharmacist) *dto.PharmacistResponse {
	if p == nil {
		return nil
	}

	var profileID *uuid.UUID
	if p.Profile != nil {
		profileID = lo.ToPtr(p.Profile.ID)
	}

	return &dto.PharmacistResponse{
		AccountResponse: accountToResponse(&p.Account),
		Shift:           string(p.Shift),
		Active:          p.Active,
		ProfileID:       profileID,
	}
}

// PharmacistsToResponses converts a slice of Pharmacist entities to PharmacistResponse DTOs
func PharmacistsToResponses(pharmacists []entity.Pharmacist) []dto.PharmacistResponse {
	return lo.Map(pharmacists, func(p entity.Pharmacist, _ int) dto.PharmacistResponse {
		return *PharmacistToResponse(&p)
	})
}
