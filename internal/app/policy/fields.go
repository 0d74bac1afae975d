package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/assignhub/assignhub/internal/app/models"
	"github.com/assignhub/assignhub/internal/app/models/dto"
	"github.com/assignhub/assignhub/internal/pkg/apperrors"
)

// allowedAssignmentFields is the exact payload field set for create and
// update. Anything outside it, and any required field missing, rejects the
// whole payload.
var allowedAssignmentFields = map[string]bool{
	"name":           true,
	"points":         true,
	"num_of_attemps": true,
	"deadline":       true,
}

// deadline accepts RFC 3339 or a bare local timestamp.
var deadlineFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DecodeAssignmentPayload validates a raw create/update body against the
// assignment field rules and returns the typed payload.
//
// The original service guarded against dynamic type confusion (string where
// integer expected and vice versa); here the same error taxonomy is produced
// from strict JSON decoding so the wire contract is unchanged: one
// distinguishable error per offending field.
func DecodeAssignmentPayload(raw []byte) (*dto.AssignmentPayload, error) {
	var fields map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return nil, apperrors.ErrInvalidFields
	}

	for name := range fields {
		if !allowedAssignmentFields[name] {
			return nil, apperrors.NewFieldError(apperrors.ErrInvalidFields, name, "Please provide correct parameters")
		}
	}
	for name := range allowedAssignmentFields {
		if _, ok := fields[name]; !ok {
			return nil, apperrors.NewFieldError(apperrors.ErrInvalidFields, name, "field required")
		}
	}

	payload := &dto.AssignmentPayload{}

	name, err := decodeStringField(fields["name"], "name")
	if err != nil {
		return nil, err
	}
	payload.Name = name

	points, err := decodeIntField(fields["points"], "points")
	if err != nil {
		return nil, err
	}
	if points < models.MinPoints || points > models.MaxPoints {
		return nil, apperrors.NewFieldError(apperrors.ErrOutOfRange, "points",
			fmt.Sprintf("points must be between %d and %d", models.MinPoints, models.MaxPoints))
	}
	payload.Points = points

	attempts, err := decodeIntField(fields["num_of_attemps"], "num_of_attemps")
	if err != nil {
		return nil, err
	}
	if attempts < models.MinAttempts || attempts > models.MaxAttempts {
		return nil, apperrors.NewFieldError(apperrors.ErrOutOfRange, "num_of_attemps",
			fmt.Sprintf("num_of_attemps must be between %d and %d", models.MinAttempts, models.MaxAttempts))
	}
	payload.NumOfAttempts = attempts

	deadlineStr, err := decodeStringField(fields["deadline"], "deadline")
	if err != nil {
		return nil, err
	}
	deadline, err := parseDeadline(deadlineStr)
	if err != nil {
		return nil, apperrors.NewFieldError(apperrors.ErrTypeMismatch, "deadline", "The value should be a timestamp")
	}
	payload.Deadline = deadline

	return payload, nil
}

// decodeStringField decodes a field that must be a JSON string.
func decodeStringField(raw json.RawMessage, field string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", apperrors.NewFieldError(apperrors.ErrTypeMismatch, field, "The value should be string")
	}
	return s, nil
}

// decodeIntField decodes a field that must be a JSON integer: strings,
// floats, and booleans are all rejected. Quoted tokens are checked up front
// because json.Number otherwise accepts strings holding number literals.
func decodeIntField(raw json.RawMessage, field string) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' {
		return 0, apperrors.NewFieldError(apperrors.ErrTypeMismatch, field, "The value should be Integer")
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, apperrors.NewFieldError(apperrors.ErrTypeMismatch, field, "The value should be Integer")
	}
	if strings.ContainsAny(n.String(), ".eE") {
		return 0, apperrors.NewFieldError(apperrors.ErrTypeMismatch, field, "The value should be Integer")
	}
	v, err := n.Int64()
	if err != nil {
		return 0, apperrors.NewFieldError(apperrors.ErrTypeMismatch, field, "The value should be Integer")
	}
	return int(v), nil
}

func parseDeadline(value string) (time.Time, error) {
	var lastErr error
	for _, format := range deadlineFormats {
		t, err := time.Parse(format, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
