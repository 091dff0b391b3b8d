package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// decodeBody decodes a JSON request body into v. An empty body leaves v
// untouched. It writes the error response itself and reports whether the
// handler should continue.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

// writeServiceError maps generation and validation failures to 422 with
// field-level messages, and everything else to 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var fieldErr *service.FieldError
	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse(fieldErr.Field, fieldErr.Message))
	case errors.Is(err, crypto.ErrEmptyPool):
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse(service.FieldOptions, err.Error()))
	case errors.Is(err, service.ErrSessionNotFound):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func validationResponse(field, msg string) map[string]any {
	return map[string]any{
		"error":  "validation failed",
		"fields": map[string]string{field: msg},
	}
}
