// Package handlers implements the JSON API of the catalog: categories,
// books, audiobooks, user libraries, purchases, the merchandise shop, users
// and image uploads. Handlers are grouped by concern and hold the stores
// they need; all state lives in the store package.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// messageResponse is the body of every error and of plain acknowledgements.
type messageResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeMessage sends {"message": msg}.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeValidation sends a 400 with itemized field errors.
func writeValidation(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid data", Errors: errs})
}

// writeServerError logs err and sends a generic 500 with msg.
func writeServerError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	slog.Error(msg, "error", err, "method", r.Method, "path", r.URL.Path)
	writeMessage(w, http.StatusInternalServerError, msg)
}

// pathID parses a numeric URL parameter. Anything that is not an integer
// is reported as absent so callers answer 404.
func pathID(r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	return id, true
}

// errMalformedBody is returned by decodeJSON for unreadable payloads.
var errMalformedBody = errors.New("malformed JSON body")

// maxJSONBody caps JSON request bodies; book texts are the largest payload.
const maxJSONBody = 1 << 20

// decodeJSON reads the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errMalformedBody
		}
		return errors.Join(errMalformedBody, err)
	}
	return nil
}

// decodeValid decodes and validates a payload. On failure it has already
// written the 400 response and returns false.
func decodeValid(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := decodeJSON(w, r, dst); err != nil {
		writeValidation(w, []FieldError{{Field: "body", Message: "request body must be a valid JSON object"}})
		return false
	}
	if errs := Validate(dst); len(errs) > 0 {
		writeValidation(w, errs)
		return false
	}
	return true
}
