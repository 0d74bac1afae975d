package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
	"github.com/assignhub/assignhub/internal/pkg/dberrors"
)

// HandleAPIError maps service errors onto the wire contract. Precedence is
// decided in the services; this function only translates.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrAuthHeaderMissing):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeMissingAuthHeader, "Authorization header is missing")))
	case errors.Is(err, apperrors.ErrMalformedAuthHeader):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeMalformedHeader, "Authorization header is malformed")))
	case errors.Is(err, apperrors.ErrUnsupportedAuthScheme):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnsupportedScheme, "Authorization scheme must be Basic")))
	case errors.Is(err, apperrors.ErrUserNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUserNotFound, "User not found")))
	case errors.Is(err, apperrors.ErrPasswordMismatch):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodePasswordMismatch, "Invalid authorization")))
	case errors.Is(err, apperrors.ErrMissingCredentials):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidLogin, "Email and password are required")))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInvalidLogin, "Incorrect email or password")))
	case errors.Is(err, apperrors.ErrNotResourceOwner):
		c.JSON(403, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "You do not own this assignment")))
	case errors.Is(err, apperrors.ErrAssignmentNotFound):
		c.JSON(404, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Assignment not found")))
	case errors.Is(err, apperrors.ErrInvalidFields):
		c.JSON(400, dto.NewErrorResponse(fieldErrorDetail(dto.ErrorCodeInvalidFields, err, "Please provide correct parameters")))
	case errors.Is(err, apperrors.ErrTypeMismatch):
		c.JSON(400, dto.NewErrorResponse(fieldErrorDetail(dto.ErrorCodeTypeMismatch, err, "Field has the wrong type")))
	case errors.Is(err, apperrors.ErrOutOfRange):
		c.JSON(400, dto.NewErrorResponse(fieldErrorDetail(dto.ErrorCodeOutOfRange, err, "Field value is out of range")))
	case errors.Is(err, apperrors.ErrDeadlinePassed):
		c.JSON(400, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeDeadlinePassed, "Assignment deadline has passed")))
	case errors.Is(err, apperrors.ErrAttemptLimitExceeded):
		c.JSON(400, dto.NewErrorResponse(fieldErrorDetail(dto.ErrorCodeAttemptLimitExceeded, err, "Submission limit exceeded")))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		c.JSON(409, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists")))
	case errors.Is(err, apperrors.ErrStoreUnavailable) || dberrors.IsUnavailable(err):
		c.JSON(503, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeStoreUnavailable, "Service unavailable")))
	case errors.Is(err, apperrors.ErrTimeout) || dberrors.IsTimeout(err):
		c.JSON(408, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeTimeout, "Request timed out")))
	default:
		c.JSON(500, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}

// fieldErrorDetail carries the offending field name and the rule message
// from a CustomError into the response body.
func fieldErrorDetail(code dto.ErrorCode, err error, fallback string) *dto.ErrorDetail {
	message := fallback
	var customErr *apperrors.CustomError
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	detail := dto.NewErrorDetail(code, message)
	if field := apperrors.Field(err); field != "" {
		detail = detail.WithField(field)
	}
	return detail
}
