package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func originHandler() http.Handler {
	return RequireOrigin([]string{"https://upload.example.com"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
}

func TestRequireOrigin_Allowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/request", nil)
	req.Header.Set("Origin", "https://upload.example.com")
	rec := httptest.NewRecorder()
	originHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireOrigin_Rejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/request", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	originHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "forbidden")
}

func TestRequireOrigin_NoHeaderPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/request", nil)
	rec := httptest.NewRecorder()
	originHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
