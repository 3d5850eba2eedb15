package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
	ErrInvalidFormat    = errors.New("invalid token format")

	// Storage errors
	ErrStorageUnavailable = errors.New("file storage unavailable")
)

// Entity errors. Each wraps ErrResourceNotFound or ErrConflict so the
// boundary can map them without knowing every entity.
var (
	ErrUserNotFound       = wrap(ErrResourceNotFound, "user not found")
	ErrMemberNotFound     = wrap(ErrResourceNotFound, "member not found")
	ErrEventNotFound      = wrap(ErrResourceNotFound, "event not found")
	ErrNewsNotFound       = wrap(ErrResourceNotFound, "News not found")
	ErrNonMemberNotFound  = wrap(ErrResourceNotFound, "non-member not found")
	ErrEventUserNotFound  = wrap(ErrResourceNotFound, "event registration not found")
	ErrNominationNotFound = wrap(ErrResourceNotFound, "nomination not found")
	ErrDocumentNotFound   = wrap(ErrResourceNotFound, "document not found")
	ErrLuminanceNotFound  = wrap(ErrResourceNotFound, "luminance award not found")

	ErrEmailAlreadyExists   = wrap(ErrConflict, "email already exists")
	ErrEventTitleExists     = wrap(ErrConflict, "an event with this title already exists")
	ErrAlreadyRegistered    = wrap(ErrConflict, "already registered for this event")
	ErrSingletonFlagClaimed = wrap(ErrConflict, "another record was flagged concurrently")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Message returns the user-facing message of err when it carries one.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return ""
}

func wrap(base error, message string) error {
	return &CustomError{Err: base, Message: message}
}
