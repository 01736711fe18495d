package domain

import "errors"

// ErrNotFound is the storage-level sentinel for a missing row. Services
// translate it into the portal error appropriate for the operation so the
// API never reveals why a token, session, or upload failed to resolve.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned by conditional writes that lost a race, e.g. a
// second redemption of the same upload request.
var ErrConflict = errors.New("conflict")

// Error is a member of the portal's closed error set. Code and Status are
// part of the wire contract; Detail is optional operator-facing context.
type Error struct {
	Code    string
	Message string
	Status  int
	Detail  string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

// WithDetail returns a copy carrying operator-facing detail.
func (e *Error) WithDetail(detail string) *Error {
	c := *e
	c.Detail = detail
	return &c
}

// Is lets errors.Is match any instance of the same code, so wrapped and
// detailed copies compare equal to the canonical value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// The closed portal error set. Handlers map these one-to-one onto HTTP
// responses; services must not invent codes outside this list.
var (
	ErrInvalidEmail       = &Error{Code: "invalid_email", Message: "Email is required", Status: 400}
	ErrInvalidJSON        = &Error{Code: "invalid_json", Message: "Invalid JSON payload", Status: 400}
	ErrInvalidToken       = &Error{Code: "invalid_token", Message: "Upload link is invalid", Status: 404}
	ErrTokenUsed          = &Error{Code: "token_used", Message: "Upload link already used", Status: 409}
	ErrTokenExpired       = &Error{Code: "token_expired", Message: "Upload link expired", Status: 410}
	ErrInvalidSession     = &Error{Code: "invalid_session", Message: "Session expired", Status: 401}
	ErrSessionExpired     = &Error{Code: "session_expired", Message: "Session expired", Status: 401}
	ErrInvalidByteSize    = &Error{Code: "invalid_byte_size", Message: "File size is invalid", Status: 400}
	ErrFileTooLarge       = &Error{Code: "file_too_large", Message: "File exceeds size limit", Status: 413}
	ErrInvalidContentType = &Error{Code: "invalid_content_type", Message: "Unsupported content type", Status: 400}
	ErrInvalidFilename    = &Error{Code: "invalid_filename", Message: "Invalid file name", Status: 400}
	ErrInvalidObjectPath  = &Error{Code: "invalid_object_path", Message: "Invalid object path", Status: 400}
	ErrSignerFailed       = &Error{Code: "signer_failed", Message: "Unable to sign upload", Status: 502}
	ErrEmailFailed        = &Error{Code: "email_failed", Message: "Unable to send email", Status: 502}
	ErrUnknownUserEmail   = &Error{Code: "unknown_user_email", Message: "No matching user found", Status: 404}
	ErrUploadNotFound     = &Error{Code: "upload_not_found", Message: "Upload record not found", Status: 404}
	ErrConfigMissing      = &Error{Code: "config_missing", Message: "Missing portal configuration", Status: 500}
	ErrDBWrite            = &Error{Code: "db_write_failed", Message: "Storage write failed", Status: 500}
	ErrDBRead             = &Error{Code: "db_read_failed", Message: "Storage read failed", Status: 500}
	ErrRateLimited        = &Error{Code: "rate_limited", Message: "Too many requests", Status: 429}
	ErrForbiddenOrigin    = &Error{Code: "forbidden", Message: "Origin not allowed", Status: 403}
	ErrRouteNotFound      = &Error{Code: "not_found", Message: "Not found", Status: 404}
	ErrServer             = &Error{Code: "server_error", Message: "Server error", Status: 500}
)
