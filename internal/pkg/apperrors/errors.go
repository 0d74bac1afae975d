package apperrors

import "errors"

// Common errors
var (
	// Authorization header errors
	ErrAuthHeaderMissing     = errors.New("authorization header missing")
	ErrMalformedAuthHeader   = errors.New("invalid authorization header")
	ErrUnsupportedAuthScheme = errors.New("authorization type not supported")

	// Authentication errors
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordMismatch   = errors.New("invalid authorization")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// Authorization errors
	ErrNotResourceOwner = errors.New("not authorized to access other user's data")

	// Validation errors
	ErrInvalidFields = errors.New("please provide correct parameters")
	ErrOutOfRange    = errors.New("value out of range")
	ErrTypeMismatch  = errors.New("value has wrong type")

	// User errors
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Assignment errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Submission errors
var (
	ErrDeadlinePassed       = errors.New("submission deadline has passed")
	ErrAttemptLimitExceeded = errors.New("submission limit exceeded")
)

// Infrastructure errors
var (
	ErrStoreUnavailable = errors.New("database is not connected")
	ErrTimeout          = errors.New("request timed out")
)

// NewFieldError creates a validation error scoped to a single payload field.
func NewFieldError(kind error, field, message string) error {
	return &CustomError{
		Err:     kind,
		Field:   field,
		Message: message,
	}
}

// Field returns the offending payload field carried by err, if any.
func Field(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
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
