package middleware

import (
	"encoding/json"
	"net/http"
)

// writeError mirrors the handlers' error envelope so clients see one shape
// whether a request is rejected here or further down.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
