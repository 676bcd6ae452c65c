package util

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// InvalidFieldError reports a field-keyed repository operation that named a
// column the managed entity does not have. It is raised before any query is
// issued, so the store never sees the bad identifier.
type InvalidFieldError struct {
	Entity string
	Field  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q does not exist on %s", e.Field, e.Entity)
}

// NewInvalidField constructs an InvalidFieldError.
func NewInvalidField(entity, field string) error {
	return &InvalidFieldError{Entity: entity, Field: field}
}

// ConfigurationError reports a repository registered without a complete
// entity mapping. It is fatal at process start.
type ConfigurationError struct {
	Repository string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("repository %s misconfigured: %s", e.Repository, e.Reason)
}

// NewConfiguration constructs a ConfigurationError.
func NewConfiguration(repository, reason string) error {
	return &ConfigurationError{Repository: repository, Reason: reason}
}

// Postgres error class 23 covers integrity constraint violations.
const (
	integrityClass      = "23"
	uniqueViolationCode = "23505"
)

// IsIntegrityError reports whether err is a store-level constraint violation.
// The underlying *pgconn.PgError is left intact so callers can still inspect
// the constraint name.
func IsIntegrityError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return len(pgErr.Code) >= 2 && pgErr.Code[:2] == integrityClass
}

// IsUniqueViolation reports whether err is a unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == uniqueViolationCode
}

// ConstraintName extracts the violated constraint from an integrity error,
// or "" when err is not one.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return ""
	}
	return pgErr.ConstraintName
}
