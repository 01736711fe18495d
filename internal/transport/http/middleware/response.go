package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/alphasourceai/upload-portal/internal/domain"
)

// writeJSONError writes a portal error with the correct Content-Type.
func writeJSONError(w http.ResponseWriter, e *domain.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": e.Message, "code": e.Code})
}
