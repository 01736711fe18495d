package domain

import "time"

// UploadSession is the short-lived elevated credential minted by redeeming
// an upload request. Expiry is absolute; LastUsedAt is bookkeeping only
// and never extends the session.
type UploadSession struct {
	SessionID  string     `json:"id" dynamodbav:"session_id"`
	RequestID  string     `json:"request_id" dynamodbav:"request_id"`
	TokenHash  string     `json:"-" dynamodbav:"token_hash"`
	CreatedAt  time.Time  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at" dynamodbav:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty" dynamodbav:"last_used_at,omitempty"`
}
