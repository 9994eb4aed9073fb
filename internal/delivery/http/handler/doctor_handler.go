package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/delivery/http/middleware"
	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/service"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/response"
	"clinic-accounts/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	doctor, err := h.doctorUsecase.GetProfile(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", doctor)
}

func (h *DoctorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", doctor)
}

func (h *DoctorHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	if err := h.doctorUsecase.ChangePassword(r.Context(), doctorID, &req); err != nil {
		writeError(w, err, "Failed to change password")
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully, please login again", nil)
}

// GetAllDoctors lists doctors, optionally filtered by approval state
// @Summary List doctors (admin)
// @Tags Admin
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Response
// @Router /admin/doctors [get]
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseAccountFilter(w, r)
	if !ok {
		return
	}

	doctors, err := h.doctorUsecase.GetAllDoctors(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

// SetActivation approves or suspends a doctor. Approval creates the doctor profile once.
// @Summary Activate or deactivate a doctor (admin)
// @Tags Admin
// @Param id path string true "Doctor ID"
// @Param request body dto.SetActivationRequest true "Activation Request"
// @Success 200 {object} response.Response
// @Router /admin/doctors/{id}/activation [put]
func (h *DoctorHandler) SetActivation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var req dto.SetActivationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.SetActive(r.Context(), service.AdminActor, doctorID, *req.Active)
	if err != nil {
		writeError(w, err, "Failed to update doctor activation")
		return
	}

	response.Success(w, http.StatusOK, "Doctor activation updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := h.doctorUsecase.DeleteDoctor(r.Context(), service.AdminActor, doctorID); err != nil {
		writeError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// parseAccountFilter reads the optional ?active= query flag. It writes the
// 400 itself and reports false when the flag is malformed.
func parseAccountFilter(w http.ResponseWriter, r *http.Request) (entity.AccountFilter, bool) {
	var filter entity.AccountFilter

	raw := r.URL.Query().Get("active")
	if raw == "" {
		return filter, true
	}

	active, err := strconv.ParseBool(raw)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid active filter", nil)
		return filter, false
	}
	filter.Active = &active

	return filter, true
}
