package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/iudanet/niplan/pkg/api"
)

// writeJSONError пишет ответ в формате api.ErrorResponse
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   strings.ToLower(strings.ReplaceAll(http.StatusText(statusCode), " ", "_")),
		Message: message,
	})
}
