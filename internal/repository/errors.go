package repository

import (
	"errors"
	"strings"

	"clinic-accounts/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgStringTooLong       = "22001"
)

// uniqueColumns lists the columns covered by uq_<table>_<column> constraints.
// Longer names come first so user_name is not reported as name.
var uniqueColumns = []string{
	"national_id_number",
	"membership_no",
	"pharmacist_id",
	"phone_number",
	"patient_id",
	"user_name",
	"doctor_id",
	"email",
	"slug",
	"name",
}

// translateWriteError maps constraint violations raised by an insert or
// update to domain errors. Other errors pass through unchanged.
func translateWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return &entity.DuplicateKeyError{Field: columnFromConstraint(pgErr.ConstraintName)}
	case pgForeignKeyViolation:
		field := "reference"
		if strings.Contains(strings.ToLower(pgErr.ConstraintName), "specialization") {
			field = "specialization_id"
		}
		return &entity.ValidationError{Field: field, Rule: entity.RuleReference, Message: field + " does not exist"}
	case pgStringTooLong:
		// PostgreSQL leaves ColumnName empty for this code.
		return &entity.ValidationError{Field: pgErr.ColumnName, Rule: entity.RuleMaxLength, Message: pgErr.Message}
	}
	return err
}

// translateDeleteError maps a foreign key violation on delete to
// entity.ErrStillReferenced.
func translateDeleteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return entity.ErrStillReferenced
	}
	return err
}

func columnFromConstraint(constraint string) string {
	constraint = strings.ToLower(constraint)
	for _, column := range uniqueColumns {
		if strings.HasSuffix(constraint, "_"+column) {
			return column
		}
	}
	return ""
}
