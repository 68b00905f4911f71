package server

import (
	"encoding/json"
	"net/http"

	"github.com/liblens/liblens/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]any {
	return map[string]any{"status": "error", "message": message}
}

// writeError maps a structured error to its HTTP status and the
// original error envelope.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorBody(errors.UserMessage(err)))
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLibrary, errors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLibraryNotFound,
		errors.ErrCodeElementNotFound, errors.ErrCodePackageNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
