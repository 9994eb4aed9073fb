package handler

import (
	"errors"
	"net/http"

	"clinic-accounts/internal/domain/entity"
	"clinic-accounts/internal/usecase"
	"clinic-accounts/pkg/response"
)

// writeError maps usecase and domain errors onto the response envelope.
// Anything unrecognised becomes a 500 carrying fallback.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *entity.ValidationError
	var duplicateErr *entity.DuplicateKeyError

	switch {
	case errors.As(err, &validationErr):
		response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Message})
	case errors.As(err, &duplicateErr):
		response.Error(w, http.StatusBadRequest, duplicateErr.Error(), map[string]string{duplicateErr.Field: duplicateErr.Error()})
	case errors.Is(err, usecase.ErrInvalidCredentials):
		response.BadRequest(w, "Invalid email or password")
	case errors.Is(err, entity.ErrStillReferenced):
		response.Conflict(w, "Specialization is still assigned to doctors")
	case errors.Is(err, usecase.ErrAccountNotFound):
		response.NotFound(w, "Account not found")
	case errors.Is(err, usecase.ErrSpecializationNotFound):
		response.NotFound(w, "Specialization not found")
	case errors.Is(err, usecase.ErrAuditLogNotFound):
		response.NotFound(w, "Audit log not found")
	default:
		response.InternalServerError(w, fallback)
	}
}
