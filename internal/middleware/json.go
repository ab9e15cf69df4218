package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError sends the API's standard {"message": ...} error body.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
