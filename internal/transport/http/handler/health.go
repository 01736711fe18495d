package handler

import "net/http"

// HealthHandler reports service liveness.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "upload-portal",
	})
}
