package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/service"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/response"
	"clinic-accounts/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthUsecase struct {
	usecase.AuthUsecase
	loginRole      string
	loginErr       error
	registerDoctor func(req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error)
}

func (s *stubAuthUsecase) Login(ctx context.Context, role string, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	s.loginRole = role
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.LoginResponse{AccessToken: "token", TokenType: "Bearer", ExpiresIn: 900}, nil
}

func (s *stubAuthUsecase) RegisterDoctor(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
	return s.registerDoctor(req)
}

type stubDoctorUsecase struct {
	usecase.DoctorUsecase
	filter entity.AccountFilter
}

func (s *stubDoctorUsecase) GetAllDoctors(ctx context.Context, filter entity.AccountFilter) (*dto.DoctorListResponse, error) {
	s.filter = filter
	return &dto.DoctorListResponse{Doctors: []dto.DoctorResponse{}}, nil
}

type stubSpecializationUsecase struct {
	usecase.SpecializationUsecase
	deleteErr error
	actor     service.Actor
}

func (s *stubSpecializationUsecase) DeleteSpecialization(ctx context.Context, actor service.Actor, id int) error {
	s.actor = actor
	return s.deleteErr
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

func TestWriteError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", &entity.ValidationError{Field: "age", Rule: entity.RuleRange, Message: "age must be greater than 0"}, http.StatusBadRequest, "Validation failed"},
		{"duplicate", &entity.DuplicateKeyError{Field: "email"}, http.StatusBadRequest, "email already exists"},
		{"credentials", usecase.ErrInvalidCredentials, http.StatusBadRequest, "Invalid email or password"},
		{"still referenced", entity.ErrStillReferenced, http.StatusConflict, "Specialization is still assigned to doctors"},
		{"account not found", usecase.ErrAccountNotFound, http.StatusNotFound, "Account not found"},
		{"specialization not found", usecase.ErrSpecializationNotFound, http.StatusNotFound, "Specialization not found"},
		{"wrapped", errors.Join(errors.New("tx"), usecase.ErrAuditLogNotFound), http.StatusNotFound, "Audit log not found"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "fallback"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err, "fallback")

			assert.Equal(t, tc.status, rec.Code)
			body := decodeResponse(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestWriteError_ValidationNamesField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, &entity.ValidationError{Field: "password_confirmation", Rule: entity.RuleMismatch, Message: "passwords do not match"}, "fallback")

	body := decodeResponse(t, rec)
	assert.Equal(t, map[string]interface{}{"password_confirmation": "passwords do not match"}, body.Error)
}

func TestLogin_UsesRouteRole(t *testing.T) {
	stub := &stubAuthUsecase{}
	h := NewAuthHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctor/login", jsonBody(t, dto.LoginRequest{Email: "house@example.com", Password: "secret-123"}))
	h.DoctorLogin(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.RoleDoctor, stub.loginRole)
}

func TestLogin_FailuresShareOneMessage(t *testing.T) {
	stub := &stubAuthUsecase{loginErr: usecase.ErrInvalidCredentials}
	h := NewAuthHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pharmacist/login", jsonBody(t, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever1"}))
	h.PharmacistLogin(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeResponse(t, rec).Message)
}

func TestLogin_RejectsMalformedBody(t *testing.T) {
	h := NewAuthHandler(&stubAuthUsecase{}, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.PatientLogin(rec, httptest.NewRequest(http.MethodPost, "/api/v1/patient/login", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.PatientLogin(rec, httptest.NewRequest(http.MethodPost, "/api/v1/patient/login", jsonBody(t, dto.LoginRequest{Email: "not-an-email"})))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeResponse(t, rec).Message)
}

func TestRegisterDoctor_PendingApprovalMessage(t *testing.T) {
	stub := &stubAuthUsecase{
		registerDoctor: func(req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
			return &dto.DoctorResponse{SpecializationID: req.SpecializationID}, nil
		},
	}
	h := NewAuthHandler(stub, validator.NewValidator())

	payload := dto.RegisterDoctorRequest{
		AccountRequest: dto.AccountRequest{
			UserName:             "house",
			FirstName:            "Gregory",
			LastName:             "House",
			Email:                "house@example.com",
			Password:             "vicodin-42",
			PasswordConfirmation: "vicodin-42",
			NationalIDNumber:     "12345678901234",
			PhoneNumber:          "+15550100",
			Gender:               "Male",
		},
		Age:              50,
		SpecializationID: 3,
		MembershipNo:     "MD-1",
		GraduationYear:   1990,
	}

	rec := httptest.NewRecorder()
	h.RegisterDoctor(rec, httptest.NewRequest(http.MethodPost, "/api/v1/doctor_signup", jsonBody(t, payload)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Account created successfully, wait for approval", decodeResponse(t, rec).Message)
}

func TestRegisterDoctor_DuplicateEmail(t *testing.T) {
	stub := &stubAuthUsecase{
		registerDoctor: func(req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
			return nil, &entity.DuplicateKeyError{Field: "email"}
		},
	}
	h := NewAuthHandler(stub, validator.NewValidator())

	payload := dto.RegisterDoctorRequest{
		AccountRequest: dto.AccountRequest{
			UserName:             "wilson",
			FirstName:            "James",
			LastName:             "Wilson",
			Email:                "wilson@example.com",
			Password:             "oncology-1",
			PasswordConfirmation: "oncology-1",
			NationalIDNumber:     "99999999999999",
			PhoneNumber:          "+15550101",
			Gender:               "Male",
		},
		Age:              45,
		SpecializationID: 1,
		MembershipNo:     "MD-2",
		GraduationYear:   1995,
	}

	rec := httptest.NewRecorder()
	h.RegisterDoctor(rec, httptest.NewRequest(http.MethodPost, "/api/v1/doctor_signup", jsonBody(t, payload)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, map[string]interface{}{"email": "email already exists"}, body.Error)
}

func TestGetAllDoctors_ActiveFilter(t *testing.T) {
	stub := &stubDoctorUsecase{}
	h := NewDoctorHandler(stub, validator.NewValidator())

	rec := httptest.NewRecorder()
	h.GetAllDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/doctors?active=false", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, stub.filter.Active)
	assert.False(t, *stub.filter.Active)

	rec = httptest.NewRecorder()
	h.GetAllDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/doctors", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, stub.filter.Active)

	rec = httptest.NewRecorder()
	h.GetAllDoctors(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/doctors?active=maybe", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetActivation_RequiresFlag(t *testing.T) {
	h := NewDoctorHandler(&stubDoctorUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/doctors/x/activation", bytes.NewBufferString(`{}`))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.SetActivation(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", decodeResponse(t, rec).Message)
}

func TestDeleteSpecialization_StillReferenced(t *testing.T) {
	stub := &stubSpecializationUsecase{deleteErr: entity.ErrStillReferenced}
	h := NewSpecializationHandler(stub, validator.NewValidator())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/specializations/4", nil), map[string]string{"id": "4"})
	rec := httptest.NewRecorder()
	h.DeleteSpecialization(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, entity.RoleAdmin, stub.actor.Role)
}

func TestDeleteSpecialization_InvalidID(t *testing.T) {
	h := NewSpecializationHandler(&stubSpecializationUsecase{}, validator.NewValidator())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/api/v1/specializations/abc", nil), map[string]string{"id": "abc"})
	rec := httptest.NewRecorder()
	h.DeleteSpecialization(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
