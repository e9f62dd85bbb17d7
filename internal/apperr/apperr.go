package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ValidationError means the caller-supplied data violates a domain
// invariant. It is safe to show the message to the user.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

// ConflictError means a uniqueness or referential constraint was violated
// at write time. Retrying the same write will fail again.
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// TransientError wraps a connectivity or service failure. The operation
// did not complete and is safe to retry.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient failure: " + e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// FromDB translates a gorm error into the taxonomy. entity names the
// record the caller was reading or writing. Requires the connection to be
// opened with TranslateError so driver-level constraint violations surface
// as the gorm sentinels.
func FromDB(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Entity: entity}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &ConflictError{Msg: entity + " already exists"}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConflictError{Msg: entity + " references a missing record"}
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return &ValidationError{Msg: entity + " violates a data constraint"}
	default:
		return &TransientError{Err: err}
	}
}
