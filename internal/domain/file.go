package domain

import "time"

// UploadFile is one intended upload. The object name is always generated
// server-side; the client only influences the sanitized filename suffix.
// AccountID and AccountEmail are resolved at completion time.
type UploadFile struct {
	FileID           string     `json:"id" dynamodbav:"file_id"`
	RequestID        string     `json:"request_id" dynamodbav:"request_id"`
	SessionID        string     `json:"session_id" dynamodbav:"session_id"`
	AccountID        *string    `json:"user_id,omitempty" dynamodbav:"account_id,omitempty"`
	AccountEmail     *string    `json:"user_email,omitempty" dynamodbav:"account_email,omitempty"`
	Bucket           string     `json:"-" dynamodbav:"bucket"`
	ObjectName       string     `json:"-" dynamodbav:"object_name"`
	OriginalFilename string     `json:"-" dynamodbav:"original_filename"`
	ContentType      string     `json:"content_type" dynamodbav:"content_type"`
	ByteSize         int64      `json:"byte_size" dynamodbav:"byte_size"`
	CreatedAt        time.Time  `json:"created_at" dynamodbav:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" dynamodbav:"completed_at,omitempty"`
}

// UploadSummary is the dashboard inbox view of an UploadFile. It omits the
// object name and original filename on purpose.
type UploadSummary struct {
	FileID       string     `json:"id"`
	RequestID    string     `json:"request_id"`
	SessionID    string     `json:"session_id"`
	AccountID    *string    `json:"user_id"`
	AccountEmail *string    `json:"user_email"`
	Bucket       string     `json:"bucket"`
	ContentType  string     `json:"content_type"`
	ByteSize     int64      `json:"byte_size"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// Summary returns the inbox view of f.
func (f *UploadFile) Summary() UploadSummary {
	return UploadSummary{
		FileID:       f.FileID,
		RequestID:    f.RequestID,
		SessionID:    f.SessionID,
		AccountID:    f.AccountID,
		AccountEmail: f.AccountEmail,
		Bucket:       f.Bucket,
		ContentType:  f.ContentType,
		ByteSize:     f.ByteSize,
		CreatedAt:    f.CreatedAt,
		CompletedAt:  f.CompletedAt,
	}
}
