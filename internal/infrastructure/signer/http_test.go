package signer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSigner_Sign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "docs", req.Bucket)
		assert.Equal(t, "PUT", req.Method)
		json.NewEncoder(w).Encode(map[string]string{"signed_url": "https://storage.example/put"})
	}))
	defer srv.Close()

	s := NewHTTPSigner(srv.URL, "secret")
	url, err := s.Sign(context.Background(), Request{
		Bucket: "docs", ObjectName: "portal/x/y", ContentType: "application/pdf", Method: "PUT",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://storage.example/put", url)
}

func TestHTTPSigner_Sign_AlternateFieldNames(t *testing.T) {
	for _, field := range []string{"signedUrl", "url"} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{field: "https://storage.example/alt"})
		}))
		s := NewHTTPSigner(srv.URL, "secret")
		url, err := s.Sign(context.Background(), Request{Method: "PUT"})
		srv.Close()
		require.NoError(t, err, "field %s", field)
		assert.Equal(t, "https://storage.example/alt", url)
	}
}

func TestHTTPSigner_Sign_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := NewHTTPSigner(srv.URL, "secret")
	_, err := s.Sign(context.Background(), Request{Method: "PUT"})
	assert.ErrorContains(t, err, "status 403")
}

func TestHTTPSigner_Sign_MissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
	}))
	defer srv.Close()

	s := NewHTTPSigner(srv.URL, "secret")
	_, err := s.Sign(context.Background(), Request{Method: "PUT"})
	assert.ErrorContains(t, err, "missing signed URL")
}
