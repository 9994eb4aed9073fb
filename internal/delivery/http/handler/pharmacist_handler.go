package handler

import (
	"encoding/json"
	"net/http"

	"clinic-accounts/internal/delivery/dto"
	"clinic-accounts/internal/delivery/http/middleware"
	"clinic-accounts/internal/service"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/response"
	"clinic-accounts/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PharmacistHandler struct {
	pharmacistUsecase usecase.PharmacistUsecase
	validator         *validator.CustomValidator
}

func NewPharmacistHandler(pharmacistUsecase usecase.PharmacistUsecase, validator *validator.CustomValidator) *PharmacistHandler {
	return &PharmacistHandler{
		pharmacistUsecase: pharmacistUsecase,
		validator:         validator,
	}
}

func (h *PharmacistHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	pharmacistID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	pharmacist, err := h.pharmacistUsecase.GetProfile(r.Context(), pharmacistID)
	if err != nil {
		writeError(w, err, "Failed to get profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", pharmacist)
}

func (h *PharmacistHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	pharmacistID, ok := middleware.GetAccountIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req dto.UpdatePharmacistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	pharmacist, err := h.pharmacistUsecase.UpdateProfile(r.Context(), pharmacistID, &req)
	if err != nil {
		writeError(w, err, "Failed to update profile")
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", pharmacist)
}

func (h *PharmacistHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	pharmacistID, ok := middleware.GetAccountIDFromContext(r.Context())
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

	if err := h.pharmacistUsecase.ChangePassword(r.Context(), pharmacistID, &req); err != nil {
		writeError(w, err, "Failed to change password")
		return
	}

	response.Success(w, http.StatusOK, "Password changed successfully, please login again", nil)
}

// GetAllPharmacists lists pharmacists, optionally filtered by approval state
// @Summary List pharmacists (admin)
// @Tags Admin
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Response
// @Router /admin/pharmacists [get]
func (h *PharmacistHandler) GetAllPharmacists(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseAccountFilter(w, r)
	if !ok {
		return
	}

	pharmacists, err := h.pharmacistUsecase.GetAllPharmacists(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get pharmacists")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacists retrieved successfully", pharmacists)
}

// SetActivation approves or suspends a pharmacist. Approval creates the pharmacist profile once.
// @Summary Activate or deactivate a pharmacist (admin)
// @Tags Admin
// @Param id path string true "Pharmacist ID"
// @Param request body dto.SetActivationRequest true "Activation Request"
// @Success 200 {object} response.Response
// @Router /admin/pharmacists/{id}/activation [put]
func (h *PharmacistHandler) SetActivation(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pharmacistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pharmacist ID", nil)
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

	pharmacist, err := h.pharmacistUsecase.SetActive(r.Context(), service.AdminActor, pharmacistID, *req.Active)
	if err != nil {
		writeError(w, err, "Failed to update pharmacist activation")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacist activation updated successfully", pharmacist)
}

func (h *PharmacistHandler) DeletePharmacist(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pharmacistID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid pharmacist ID", nil)
		return
	}

	if err := h.pharmacistUsecase.DeletePharmacist(r.Context(), service.AdminActor, pharmacistID); err != nil {
		writeError(w, err, "Failed to delete pharmacist")
		return
	}

	response.Success(w, http.StatusOK, "Pharmacist deleted successfully", nil)
}
