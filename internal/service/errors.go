package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Course service errors. Handlers map these to the HTTP statuses of the
// REST surface; conflict messages are shown to the user verbatim.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrNotOwner       = errors.New("course owned by another user")
)

// Conflict messages, checked in this fixed order on every create/update.
const (
	MsgCodeExists      = "Course Code already exists"
	MsgTitleExists     = "Descriptive Title already exists"
	MsgCodeSlotExists  = "Schedule conflict: Course Code already exists"
	MsgTitleSlotExists = "Schedule conflict: Descriptive Title already exists"
)

// Unique index names declared in migrations. The store enforces per-owner
// uniqueness as a hard constraint; these names map a rejected write back
// to the matching conflict message when two concurrent requests pass the
// pre-flight checks.
const (
	ConstraintOwnerCode  = "courses_owner_email_course_code_idx"
	ConstraintOwnerTitle = "courses_owner_email_title_idx"
)

// ValidationError carries a user-facing message for a draft that fails
// field validation before any store check runs.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError carries the human-readable reason for a rejected
// create/update.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UniqueViolationError is the store-agnostic form of a unique constraint
// rejection, used by non-SQL store implementations.
type UniqueViolationError struct {
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return "unique constraint violated: " + e.Constraint
}

// NewUniqueViolation builds a UniqueViolationError for the named constraint.
func NewUniqueViolation(constraint string) error {
	return &UniqueViolationError{Constraint: constraint}
}

// violatedConstraint extracts the constraint name from a unique-violation
// write error, or "" when the error is something else.
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return pgErr.ConstraintName
	}
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv.Constraint
	}
	return ""
}

// conflictFromConstraint converts a violated constraint into the matching
// ConflictError, or nil for an unrecognized constraint.
func conflictFromConstraint(name string) *ConflictError {
	switch name {
	case ConstraintOwnerCode:
		return &ConflictError{Message: MsgCodeExists}
	case ConstraintOwnerTitle:
		return &ConflictError{Message: MsgTitleExists}
	default:
		return nil
	}
}
