package dentalapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	apierrors "github.com/zatekoja/dentaldesk/pkg/errors"
)

// errorPayload covers both the plain {message, code, details, errors} body
// and ASP.NET problem details ({title, status, errors}).
type errorPayload struct {
	Message string          `json:"message"`
	Title   string          `json:"title"`
	Code    string          `json:"code"`
	Details interface{}     `json:"details"`
	Errors  json.RawMessage `json:"errors"`
}

func isJSONContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "application/json") || strings.Contains(contentType, "+json")
}

// interpretResponse turns a fully read response into nil (out populated) or
// a classified *APIError / *ValidationError.
func interpretResponse(status int, contentType string, body []byte, out interface{}) error {
	isJSON := isJSONContentType(contentType)

	if status < 200 || status >= 300 {
		return interpretFailure(status, isJSON, body)
	}

	if out == nil {
		return nil
	}

	if !isJSON {
		return apierrors.NewAPIError(status, "", "expected JSON response", nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return apierrors.NewAPIError(status, "", "invalid JSON response", err.Error())
	}

	return nil
}

func interpretFailure(status int, isJSON bool, body []byte) error {
	message := fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	if !isJSON || len(body) == 0 {
		return apierrors.NewAPIError(status, "", message, nil)
	}

	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return apierrors.NewAPIError(status, "", message, nil)
	}

	switch {
	case payload.Message != "":
		message = payload.Message
	case payload.Title != "":
		message = payload.Title
	}

	fields := decodeFieldErrors(payload.Errors)
	if status == http.StatusBadRequest && len(fields) > 0 {
		return apierrors.NewValidationError(message, fields)
	}

	details := payload.Details
	if details == nil && len(payload.Errors) > 0 && string(payload.Errors) != "null" {
		if fields != nil {
			details = fields
		} else {
			details = payload.Errors
		}
	}

	return apierrors.NewAPIError(status, payload.Code, message, details)
}

// decodeFieldErrors accepts {"field": ["msg", ...]} and {"field": "msg"}
func decodeFieldErrors(raw json.RawMessage) map[string][]string {
	if len(raw) == 0 {
		return nil
	}

	var fields map[string][]string
	if err := json.Unmarshal(raw, &fields); err == nil {
		return fields
	}

	var single map[string]string
	if err := json.Unmarshal(raw, &single); err == nil {
		fields = make(map[string][]string, len(single))
		for k, v := range single {
			fields[k] = []string{v}
		}
		return fields
	}

	return nil
}
