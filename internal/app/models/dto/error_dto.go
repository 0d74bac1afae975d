package dto

import (
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeMissingAuthHeader ErrorCode = "AUTH_001"
	ErrorCodeMalformedHeader   ErrorCode = "AUTH_002"
	ErrorCodeUnsupportedScheme ErrorCode = "AUTH_003"
	ErrorCodeUserNotFound      ErrorCode = "AUTH_004"
	ErrorCodePasswordMismatch  ErrorCode = "AUTH_005"
	ErrorCodeInvalidLogin      ErrorCode = "AUTH_006"
	ErrorCodeForbidden         ErrorCode = "AUTH_007"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation errors
	ErrorCodeInvalidFields ErrorCode = "VAL_001"
	ErrorCodeOutOfRange    ErrorCode = "VAL_002"
	ErrorCodeTypeMismatch  ErrorCode = "VAL_003"

	// Submission errors
	ErrorCodeDeadlinePassed       ErrorCode = "SUB_001"
	ErrorCodeAttemptLimitExceeded ErrorCode = "SUB_002"

	// Server errors
	ErrorCodeInternalServer   ErrorCode = "SRV_001"
	ErrorCodeStoreUnavailable ErrorCode = "SRV_002"
	ErrorCodeTimeout          ErrorCode = "SRV_003"
	ErrorCodeMethodNotAllowed ErrorCode = "SRV_004"
)

// ErrorDetail represents detailed error information
type ErrorDetail struct {
	Code    ErrorCode   `json:"code" example:"AUTH_005"`
	Message string      `json:"message" example:"Invalid authorization"`
	Field   string      `json:"field,omitempty" example:"points"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool         `json:"success" example:"false"`
	Error     *ErrorDetail `json:"error"`
	Timestamp time.Time    `json:"timestamp" example:"2025-11-23T12:01:05.123Z"`
}

// NewErrorDetail creates a new error detail
func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithField adds a field name to the error detail
func (e *ErrorDetail) WithField(field string) *ErrorDetail {
	e.Field = field
	return e
}

// WithDetails adds additional details to the error
func (e *ErrorDetail) WithDetails(details interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(errorDetail *ErrorDetail) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     errorDetail,
		Timestamp: time.Now(),
	}
}
