package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alphasourceai/upload-portal/internal/application/portal"
	"github.com/alphasourceai/upload-portal/internal/domain"
	"github.com/alphasourceai/upload-portal/internal/transport/http/middleware"
)

// PortalHandler exposes the upload portal flow over JSON.
type PortalHandler struct {
	svc portal.Service
}

func NewPortalHandler(svc portal.Service) *PortalHandler {
	return &PortalHandler{svc: svc}
}

// bearerToken extracts the session token from the Authorization header.
// An absent or malformed header yields the empty token, which the service
// rejects as an invalid session.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}

func (h *PortalHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidJSON)
		return
	}
	result, err := h.svc.CreateRequest(r.Context(), req.Email, middleware.RealIP(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (h *PortalHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidJSON)
		return
	}
	result, err := h.svc.VerifyToken(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (h *PortalHandler) SignedUploadURL(w http.ResponseWriter, r *http.Request) {
	var in portal.SignedUploadInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, domain.ErrInvalidJSON)
		return
	}
	result, err := h.svc.CreateSignedUploadURL(r.Context(), bearerToken(r), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

func (h *PortalHandler) CompleteUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UploadID string `json:"upload_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.ErrInvalidJSON)
		return
	}
	result, err := h.svc.CompleteUpload(r.Context(), bearerToken(r), req.UploadID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}
