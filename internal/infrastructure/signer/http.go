package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// HTTPSigner calls an external signing service over HTTPS with a bearer
// API key. The service signs exactly one object per call and keeps no
// record of issued URLs.
type HTTPSigner struct {
	url    string
	apiKey string
	client *http.Client
}

func NewHTTPSigner(url, apiKey string) *HTTPSigner {
	return &HTTPSigner{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

type signResponse struct {
	SignedURL  string `json:"signed_url"`
	SignedURL2 string `json:"signedUrl"`
	URL        string `json:"url"`
}

func (s *HTTPSigner) Sign(ctx context.Context, req Request) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal sign request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build sign request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call signer service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("signer service returned status %d", resp.StatusCode)
	}
	var out signResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode signer response: %w", err)
	}
	// Deployed signer services disagree on the field name.
	for _, u := range []string{out.SignedURL, out.SignedURL2, out.URL} {
		if u != "" {
			return u, nil
		}
	}
	return "", fmt.Errorf("signer response missing signed URL")
}
