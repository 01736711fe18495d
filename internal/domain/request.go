package domain

import "time"

// UploadRequest is a one-time magic-link grant. The raw token is emailed
// to the requester; only its hash is stored. A request transitions
// unused -> used exactly once, when it is redeemed for a session.
type UploadRequest struct {
	RequestID      string     `json:"id" dynamodbav:"request_id"`
	RequesterEmail string     `json:"requester_email" dynamodbav:"requester_email"`
	TokenHash      string     `json:"-" dynamodbav:"token_hash"`
	CreatedAt      time.Time  `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt      time.Time  `json:"expires_at" dynamodbav:"expires_at"`
	UsedAt         *time.Time `json:"used_at,omitempty" dynamodbav:"used_at,omitempty"`
	RequestIP      string     `json:"-" dynamodbav:"request_ip,omitempty"`
}
