package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func handle(t *testing.T, err error) (int, *dto.ErrorResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)
	HandleAPIError(ctx, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, &body
}

func TestHandleAPIErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"missing header", apperrors.ErrAuthHeaderMissing, 400, dto.ErrorCodeMissingAuthHeader},
		{"malformed header", apperrors.ErrMalformedAuthHeader, 400, dto.ErrorCodeMalformedHeader},
		{"wrong scheme", apperrors.ErrUnsupportedAuthScheme, 400, dto.ErrorCodeUnsupportedScheme},
		{"user not found", apperrors.ErrUserNotFound, 404, dto.ErrorCodeUserNotFound},
		{"password mismatch", apperrors.ErrPasswordMismatch, 401, dto.ErrorCodePasswordMismatch},
		{"missing credentials", apperrors.ErrMissingCredentials, 400, dto.ErrorCodeInvalidLogin},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401, dto.ErrorCodeInvalidLogin},
		{"not owner", apperrors.ErrNotResourceOwner, 403, dto.ErrorCodeForbidden},
		{"assignment not found", apperrors.ErrAssignmentNotFound, 404, dto.ErrorCodeResourceNotFound},
		{"deadline passed", apperrors.ErrDeadlinePassed, 400, dto.ErrorCodeDeadlinePassed},
		{"limit exceeded", apperrors.ErrAttemptLimitExceeded, 400, dto.ErrorCodeAttemptLimitExceeded},
		{"email exists", apperrors.ErrEmailAlreadyExists, 409, dto.ErrorCodeResourceAlreadyExists},
		{"store unavailable", apperrors.ErrStoreUnavailable, 503, dto.ErrorCodeStoreUnavailable},
		{"timeout", apperrors.ErrTimeout, 408, dto.ErrorCodeTimeout},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := handle(t, tc.err)
			assert.Equal(t, tc.status, status)
			require.NotNil(t, body.Error)
			assert.Equal(t, tc.code, body.Error.Code)
			assert.False(t, body.Success)
		})
	}
}

// Wrapped field errors keep the offending field name and rule message.
func TestHandleAPIErrorFieldDetail(t *testing.T) {
	err := apperrors.NewFieldError(apperrors.ErrOutOfRange, "points", "points must be between 1 and 10")

	status, body := handle(t, err)
	assert.Equal(t, 400, status)
	assert.Equal(t, dto.ErrorCodeOutOfRange, body.Error.Code)
	assert.Equal(t, "points", body.Error.Field)
	assert.Equal(t, "points must be between 1 and 10", body.Error.Message)
}

// Unknown errors collapse to a generic 500 and never leak internals.
func TestHandleAPIErrorUnknown(t *testing.T) {
	status, body := handle(t, assertionError{})
	assert.Equal(t, 500, status)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
	assert.NotContains(t, body.Error.Message, "pg_hba.conf")
}

type assertionError struct{}

func (assertionError) Error() string { return `FATAL: no pg_hba.conf entry for host "10.0.0.7"` }
