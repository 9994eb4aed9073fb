package usecase

import (
	"context"
	"fmt"
	"testing"

	"clinic-accounts/internal/delivery/dto"

	"github.com/stretchr/testify/require"
)

func accountRequest(n int) dto.AccountRequest {
	return dto.AccountRequest{
		UserName:             fmt.Sprintf("User %d", n),
		FirstName:            "Jane",
		LastName:             "Doe",
		Email:                fmt.Sprintf("user%d@example.com", n),
		Password:             "password123",
		PasswordConfirmation: "password123",
		NationalIDNumber:     fmt.Sprintf("2900101%07d", n),
		PhoneNumber:          fmt.Sprintf("0100%07d", n),
		Address:              "12 Nile St",
		Gender:               "Female",
	}
}

func patientRequest(n int) *dto.RegisterPatientRequest {
	return &dto.RegisterPatientRequest{AccountRequest: accountRequest(n), Age: 34, BloodType: "O+"}
}

func doctorRequest(n, specializationID int) *dto.RegisterDoctorRequest {
	return &dto.RegisterDoctorRequest{
		AccountRequest:   accountRequest(n),
		Age:              45,
		SpecializationID: specializationID,
		MembershipNo:     fmt.Sprintf("MEM-%d", n),
		GraduationYear:   2005,
	}
}

func pharmacistRequest(n int) *dto.RegisterPharmacistRequest {
	age := 29
	return &dto.RegisterPharmacistRequest{AccountRequest: accountRequest(n), Age: &age, Shift: "Morning"}
}

func (e *testEnv) mustSpecialization(t *testing.T, name string) int {
	t.Helper()
	resp, err := e.specializations.CreateSpecialization(context.Background(), adminActor, &dto.SpecializationRequest{Name: name})
	require.NoError(t, err)
	return resp.ID
}

func (e *testEnv) mustDoctor(t *testing.T, n int) *dto.DoctorResponse {
	t.Helper()
	specializationID := e.mustSpecialization(t, fmt.Sprintf("Specialty %d", n))
	resp, err := e.auth.RegisterDoctor(context.Background(), doctorRequest(n, specializationID))
	require.NoError(t, err)
	return resp
}
