package entity

import (
	"errors"
	"fmt"
)

// ValidationError describes the first rule a candidate record failed.
type ValidationError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation rule identifiers
const (
	RuleRequired  = "required"
	RuleMismatch  = "mismatch"
	RuleMinLength = "min_length"
	RuleMaxLength = "max_length"
	RuleRange     = "range"
	RuleChoice    = "choice"
	RuleReference = "reference"
)

func invalid(field, rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// DuplicateKeyError is returned when a write collides with a unique column.
type DuplicateKeyError struct {
	Field string `json:"field"`
}

func (e *DuplicateKeyError) Error() string {
	if e.Field == "" {
		return "record already exists"
	}
	return e.Field + " already exists"
}

// ErrStillReferenced is returned when a delete is refused because other rows
// point at the record.
var ErrStillReferenced = errors.New("record is still referenced")
