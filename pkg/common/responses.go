package common

import (
	"encoding/json"
	"net/http"

	apperrors "studymesh-backend/pkg/errors"
)

// APIResponse is the envelope shared by all JSON endpoints. The field set
// matches what the front end already consumes: success, data, an optional
// row count for table reads, and error text with best-effort details.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

// RespondJSON sends a JSON success response.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, APIResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// RespondList sends a JSON success response with a row count.
func RespondList(w http.ResponseWriter, status int, data interface{}, count int) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Data:    data,
		Count:   &count,
	})
}

// RespondMessage sends a JSON success response carrying only a message.
func RespondMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{
		Success: true,
		Message: message,
	})
}

// RespondError sends an error response.
func RespondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// RespondErrorWithDetails sends an error response with diagnostic details.
func RespondErrorWithDetails(w http.ResponseWriter, status int, message string, details interface{}) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// RespondAppError maps an error to its HTTP status. Unrecognized errors are
// reported as a generic internal failure without leaking internals.
func RespondAppError(w http.ResponseWriter, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		writeJSON(w, appErr.HTTPStatus, APIResponse{
			Success: false,
			Error:   appErr.Message,
			Details: appErr.Details,
		})
		return
	}
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

// WriteRawJSON sends a response body that does not fit the envelope.
func WriteRawJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeJSON(w http.ResponseWriter, status int, body APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// ParseJSONBody parses a JSON request body with a size limit and strict
// field checking.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
