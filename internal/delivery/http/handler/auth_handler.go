package handler

import (
	"encoding/json"
	"net/http"

	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/delivery/http/middleware"
	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/response"
	"clinic-accounts/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// RegisterPatient handles patient self-registration
// @Summary Register a new patient
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /signup [post]
func (h *AuthHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.authUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register patient")
		return
	}

	response.Success(w, http.StatusCreated, "Account created successfully", patient)
}

// RegisterDoctor handles doctor registration; the account stays inactive until approved
// @Summary Register a new doctor
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterDoctorRequest true "Register Doctor Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /doctor_signup [post]
func (h *AuthHandler) RegisterDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.authUsecase.RegisterDoctor(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Account created successfully, wait for approval", doctor)
}

// RegisterPharmacist handles pharmacist registration; the account stays inactive until approved
// @Summary Register a new pharmacist
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterPharmacistRequest true "Register Pharmacist Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /pharmacist_signup [post]
func (h *AuthHandler) RegisterPharmacist(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPharmacistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pharmacist, err := h.authUsecase.RegisterPharmacist(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register pharmacist")
		return
	}

	response.Success(w, http.StatusCreated, "Account created successfully, wait for approval", pharmacist)
}

// PatientLogin handles patient login
// @Summary Login as patient
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /patient/login [post]
func (h *AuthHandler) PatientLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, entity.RolePatient)
}

// DoctorLogin handles doctor login
// @Summary Login as doctor
// @Tags Auth
// @Router /doctor/login [post]
func (h *AuthHandler) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, entity.RoleDoctor)
}

// PharmacistLogin handles pharmacist login
// @Summary Login as pharmacist
// @Tags Auth
// @Router /pharmacist/login [post]
func (h *AuthHandler) PharmacistLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, entity.RolePharmacist)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role string) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.authUsecase.Login(r.Context(), role, &req)
	if err != nil {
		writeError(w, err, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", result)
}

// Logout revokes the access token the request was made with
// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}
	tokenID, ok := middleware.GetTokenIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	if err := h.authUsecase.Logout(r.Context(), accountID, tokenID); err != nil {
		response.InternalServerError(w, "Failed to logout")
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}
