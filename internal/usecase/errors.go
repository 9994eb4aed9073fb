package usecase

import (
	"errors"

	"clinic-accounts/internal/domain/entity"
)

var (
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountNotFound        = errors.New("account not found")
	ErrSpecializationNotFound = errors.New("specialization not found")
	ErrAuditLogNotFound       = errors.New("audit log not found")
)

func duplicateEmail() error {
	return &entity.DuplicateKeyError{Field: "email"}
}

func unknownSpecialization() error {
	return &entity.ValidationError{
		Field:   "specialization_id",
		Rule:    entity.RuleReference,
		Message: "specialization does not exist",
	}
}

func wrongOldPassword() error {
	return &entity.ValidationError{
		Field:   "old_password",
		Rule:    entity.RuleMismatch,
		Message: "old password is incorrect",
	}
}

// isDomainError reports whether err is an expected outcome the caller maps
// to a client error, so it is not logged as a failure.
func isDomainError(err error) bool {
	var validationErr *entity.ValidationError
	var duplicateErr *entity.DuplicateKeyError
	return errors.As(err, &validationErr) || errors.As(err, &duplicateErr) || errors.Is(err, entity.ErrStillReferenced)
}
