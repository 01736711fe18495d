// Package signer obtains time-boxed, method-scoped signed URLs for single
// objects. The portal never holds storage credentials itself; it delegates
// to an implementation of Signer chosen at startup.
package signer

import "context"

// Request describes one object to sign. Method is the HTTP verb the
// returned URL is scoped to, normally PUT.
type Request struct {
	Bucket      string `json:"bucket"`
	ObjectName  string `json:"object_name"`
	ContentType string `json:"content_type"`
	Method      string `json:"method"`
}

// Signer returns a signed URL for the described object, or an error. The
// URL is single-use by construction of the backing service and cannot be
// re-derived from stored state.
type Signer interface {
	Sign(ctx context.Context, req Request) (string, error)
}
