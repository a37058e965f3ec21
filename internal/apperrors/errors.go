package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found (or belongs
// to a different tenant, which is reported identically to avoid leaking existence).
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates a lifecycle transition attempted from the wrong state.
var ErrInvalidState = errors.New("invalid state for requested transition")

// ErrPeriodLocked indicates the target accounting period is missing or not open for posting.
var ErrPeriodLocked = errors.New("accounting period is not open for posting")

// ErrCutoverLocked indicates the opening-balance journal can no longer be edited because
// regular postings have already landed after the cutover date.
var ErrCutoverLocked = errors.New("opening balance is locked by post-cutover activity")

// ErrAlreadyRun indicates a run-once batch job was already executed for the target period.
var ErrAlreadyRun = errors.New("job already ran for this period")

// ErrNoEligiblePreparer indicates no active user satisfies the segregation-of-duties
// requirements to prepare a system-generated journal.
var ErrNoEligiblePreparer = errors.New("no eligible preparer found")

// ErrSoDConflict indicates a role combination violates a configured segregation-of-duties rule.
var ErrSoDConflict = errors.New("segregation of duties conflict")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict with current resource state")

// ErrForbidden indicates the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level failure with a stable code and message. Repositories
// use it so storage errors never leak raw to service callers.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError wrapping the given cause (which may be nil).
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
