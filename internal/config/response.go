package config

import (
	"encoding/json"
	"net/http"

	"github.com/saulo-duarte/atarax-lambda/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Logger.WithError(err).Error("Failed to encode response")
	}
}

// Error writes err as {"error": ...} with the status of its kind.
func Error(w http.ResponseWriter, err error) {
	JSON(w, apperr.Status(err), map[string]string{"error": apperr.Message(err)})
}
