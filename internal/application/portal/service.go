// Package portal implements the secure upload portal: magic-link request
// issuance, one-time token redemption, signed upload URL issuance, and
// idempotent upload completion. All durable state lives in the injected
// stores; the service itself is stateless between calls.
package portal

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/alphasourceai/upload-portal/internal/domain"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/signer"
	"github.com/alphasourceai/upload-portal/internal/infrastructure/smtp"
	"github.com/alphasourceai/upload-portal/internal/pkg/emailaddr"
	"github.com/alphasourceai/upload-portal/internal/pkg/id"
	"github.com/alphasourceai/upload-portal/internal/pkg/token"
	"github.com/alphasourceai/upload-portal/internal/pkg/validate"
)

// RequestStore persists upload requests.
type RequestStore interface {
	Put(ctx context.Context, req *domain.UploadRequest) error
	Get(ctx context.Context, requestID string) (*domain.UploadRequest, error)
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UploadRequest, error)
	// Redeem atomically marks the request used and persists its session.
	// A request already marked used fails with domain.ErrConflict.
	Redeem(ctx context.Context, requestID string, usedAt time.Time, sess *domain.UploadSession) error
}

// SessionStore persists upload sessions.
type SessionStore interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.UploadSession, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
}

// FileStore persists upload file records.
type FileStore interface {
	Put(ctx context.Context, f *domain.UploadFile) error
	Get(ctx context.Context, fileID string) (*domain.UploadFile, error)
	// Complete sets the resolved account and completion time exactly once;
	// an already-completed record fails with domain.ErrConflict.
	Complete(ctx context.Context, fileID, accountID, accountEmail string, at time.Time) error
	ListRecent(ctx context.Context, limit int) ([]domain.UploadFile, error)
}

// AccountStore resolves requester emails to existing accounts.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// Config carries the portal's operational limits.
type Config struct {
	BaseURL             string
	RequestTTL          time.Duration
	SessionTTL          time.Duration
	MaxFileSizeBytes    int64
	AllowedContentTypes []string
	Bucket              string
}

type CreateRequestResult struct {
	RequestID string    `json:"request_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type VerifyResult struct {
	SessionToken     string    `json:"session_token"`
	SessionExpiresAt time.Time `json:"session_expires_at"`
	RequestID        string    `json:"request_id"`
}

type SignedUploadInput struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	ByteSize    *int64 `json:"byte_size"`
}

type SignedUploadResult struct {
	UploadID  string `json:"upload_id"`
	SignedURL string `json:"signed_url"`
}

type CompleteResult struct {
	UploadID string `json:"upload_id"`
	Status   string `json:"status"` // "completed" | "already_completed"
}

type Service interface {
	CreateRequest(ctx context.Context, email, clientIP string) (*CreateRequestResult, error)
	VerifyToken(ctx context.Context, rawToken string) (*VerifyResult, error)
	CreateSignedUploadURL(ctx context.Context, sessionToken string, in SignedUploadInput) (*SignedUploadResult, error)
	CompleteUpload(ctx context.Context, sessionToken, uploadID string) (*CompleteResult, error)
	ListRecentUploads(ctx context.Context, limit int) ([]domain.UploadSummary, error)
}

// ServiceDeps holds everything the portal service needs. All external
// clients are injected so tests can substitute fakes.
type ServiceDeps struct {
	Requests   RequestStore
	Sessions   SessionStore
	Files      FileStore
	Accounts   AccountStore
	Signer     signer.Signer
	Dispatcher smtp.Dispatcher
	Config     Config
}

type service struct {
	requests     RequestStore
	sessions     SessionStore
	files        FileStore
	accounts     AccountStore
	signer       signer.Signer
	dispatcher   smtp.Dispatcher
	cfg          Config
	contentTypes map[string]struct{}
}

func NewService(deps ServiceDeps) Service {
	ct := make(map[string]struct{}, len(deps.Config.AllowedContentTypes))
	for _, t := range deps.Config.AllowedContentTypes {
		ct[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
	}
	return &service{
		requests:     deps.Requests,
		sessions:     deps.Sessions,
		files:        deps.Files,
		accounts:     deps.Accounts,
		signer:       deps.Signer,
		dispatcher:   deps.Dispatcher,
		cfg:          deps.Config,
		contentTypes: ct,
	}
}

func (s *service) requireRequestConfig() error {
	var missing []string
	if s.cfg.BaseURL == "" {
		missing = append(missing, "PORTAL_BASE_URL")
	}
	if s.dispatcher == nil {
		missing = append(missing, "SMTP_HOST, SMTP_FROM")
	}
	if len(missing) > 0 {
		return domain.ErrConfigMissing.WithDetail(strings.Join(missing, ", "))
	}
	return nil
}

func (s *service) requireSignerConfig() error {
	var missing []string
	if s.signer == nil {
		missing = append(missing, "PORTAL_SIGNER_SERVICE_URL, PORTAL_SIGNER_API_KEY")
	}
	if s.cfg.Bucket == "" {
		missing = append(missing, "PORTAL_BUCKET")
	}
	if len(missing) > 0 {
		return domain.ErrConfigMissing.WithDetail(strings.Join(missing, ", "))
	}
	return nil
}

// CreateRequest issues a magic-link upload request. The raw token exists
// only inside the emailed link; storage holds its hash. A delivery
// failure after the row is written surfaces email_failed and leaves the
// request valid for out-of-band retry.
func (s *service) CreateRequest(ctx context.Context, email, clientIP string) (*CreateRequestResult, error) {
	if err := s.requireRequestConfig(); err != nil {
		return nil, err
	}
	normalized := emailaddr.Normalize(email)
	if normalized == "" || !validate.Email(normalized) {
		return nil, domain.ErrInvalidEmail
	}

	raw, err := token.Generate()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	req := &domain.UploadRequest{
		RequestID:      id.New(),
		RequesterEmail: normalized,
		TokenHash:      token.Hash(raw),
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.cfg.RequestTTL),
		RequestIP:      clientIP,
	}
	if err := s.requests.Put(ctx, req); err != nil {
		slog.Error("portal request write failed", "requester_email", emailaddr.Mask(normalized), "err", err)
		return nil, domain.ErrDBWrite
	}

	if err := s.dispatcher.SendMagicLink(normalized, raw, req.ExpiresAt); err != nil {
		slog.Warn("portal magic link delivery failed",
			"request_id", req.RequestID, "requester_email", emailaddr.Mask(normalized))
		return nil, domain.ErrEmailFailed
	}

	slog.Info("portal request created",
		"request_id", req.RequestID, "requester_email", emailaddr.Mask(normalized))
	return &CreateRequestResult{RequestID: req.RequestID, ExpiresAt: req.ExpiresAt}, nil
}

// VerifyToken exchanges a one-time request token for a session. The
// redeem step is atomic: of two concurrent verifications, exactly one
// mints a session and the other observes token_used.
func (s *service) VerifyToken(ctx context.Context, rawToken string) (*VerifyResult, error) {
	if rawToken == "" {
		return nil, domain.ErrInvalidToken
	}
	req, err := s.requests.GetByTokenHash(ctx, token.Hash(rawToken))
	if errors.Is(err, domain.ErrNotFound) {
		slog.Info("portal token invalid")
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		slog.Error("portal token lookup failed", "err", err)
		return nil, domain.ErrDBRead
	}
	now := time.Now().UTC()
	if req.UsedAt != nil {
		slog.Info("portal token used", "request_id", req.RequestID)
		return nil, domain.ErrTokenUsed
	}
	if now.After(req.ExpiresAt) {
		slog.Info("portal token expired", "request_id", req.RequestID)
		return nil, domain.ErrTokenExpired
	}

	sessionToken, err := token.Generate()
	if err != nil {
		return nil, err
	}
	sess := &domain.UploadSession{
		SessionID:  id.New(),
		RequestID:  req.RequestID,
		TokenHash:  token.Hash(sessionToken),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.cfg.SessionTTL),
		LastUsedAt: &now,
	}
	if err := s.requests.Redeem(ctx, req.RequestID, now, sess); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			slog.Info("portal token used", "request_id", req.RequestID)
			return nil, domain.ErrTokenUsed
		}
		slog.Error("portal verify failed", "request_id", req.RequestID, "err", err)
		return nil, domain.ErrDBWrite
	}

	slog.Info("portal verified", "request_id", req.RequestID, "session_id", sess.SessionID)
	return &VerifyResult{
		SessionToken:     sessionToken,
		SessionExpiresAt: sess.ExpiresAt,
		RequestID:        req.RequestID,
	}, nil
}

// sessionContext is the request context a valid session grants.
type sessionContext struct {
	SessionID      string
	RequestID      string
	RequesterEmail string
}

// loadSession is the sole authorization gate for the signed-URL and
// completion operations. Every resolution failure looks identical to the
// caller.
func (s *service) loadSession(ctx context.Context, rawSessionToken string) (*sessionContext, error) {
	if rawSessionToken == "" {
		return nil, domain.ErrInvalidSession
	}
	sess, err := s.sessions.GetByTokenHash(ctx, token.Hash(rawSessionToken))
	if errors.Is(err, domain.ErrNotFound) {
		slog.Info("portal session invalid")
		return nil, domain.ErrInvalidSession
	}
	if err != nil {
		slog.Error("portal session load failed", "err", err)
		return nil, domain.ErrDBRead
	}
	now := time.Now().UTC()
	if now.After(sess.ExpiresAt) {
		slog.Info("portal session expired", "session_id", sess.SessionID)
		return nil, domain.ErrSessionExpired
	}
	req, err := s.requests.Get(ctx, sess.RequestID)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Warn("portal request missing", "session_id", sess.SessionID)
		return nil, domain.ErrInvalidSession
	}
	if err != nil {
		slog.Error("portal session load failed", "session_id", sess.SessionID, "err", err)
		return nil, domain.ErrDBRead
	}
	if err := s.sessions.Touch(ctx, sess.SessionID, now); err != nil {
		slog.Error("portal session touch failed", "session_id", sess.SessionID, "err", err)
		return nil, domain.ErrDBRead
	}
	return &sessionContext{
		SessionID:      sess.SessionID,
		RequestID:      req.RequestID,
		RequesterEmail: req.RequesterEmail,
	}, nil
}

// CreateSignedUploadURL validates the declared file metadata, builds the
// server-side object name, and exchanges it for a signed PUT URL. The
// file record is written only after the signer succeeds.
func (s *service) CreateSignedUploadURL(ctx context.Context, sessionToken string, in SignedUploadInput) (*SignedUploadResult, error) {
	if err := s.requireSignerConfig(); err != nil {
		return nil, err
	}
	if in.ByteSize == nil || *in.ByteSize < 0 {
		return nil, domain.ErrInvalidByteSize
	}
	if *in.ByteSize > s.cfg.MaxFileSizeBytes {
		return nil, domain.ErrFileTooLarge
	}
	ct := strings.ToLower(strings.TrimSpace(in.ContentType))
	if _, ok := s.contentTypes[ct]; ct == "" || !ok {
		return nil, domain.ErrInvalidContentType
	}

	sc, err := s.loadSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	safeFilename, err := sanitizeFilename(in.Filename)
	if err != nil {
		return nil, err
	}
	objectName, err := buildObjectName(sc.RequestID, safeFilename)
	if err != nil {
		return nil, err
	}
	// Defense in depth: the template output must satisfy the validator
	// even though the sanitizer already constrained every component.
	if err := validateObjectName(objectName); err != nil {
		return nil, err
	}

	signedURL, err := s.signer.Sign(ctx, signer.Request{
		Bucket:      s.cfg.Bucket,
		ObjectName:  objectName,
		ContentType: in.ContentType,
		Method:      "PUT",
	})
	if err != nil {
		slog.Warn("portal signer failed", "request_id", sc.RequestID, "session_id", sc.SessionID)
		return nil, domain.ErrSignerFailed
	}

	now := time.Now().UTC()
	f := &domain.UploadFile{
		FileID:           id.New(),
		RequestID:        sc.RequestID,
		SessionID:        sc.SessionID,
		Bucket:           s.cfg.Bucket,
		ObjectName:       objectName,
		OriginalFilename: safeFilename,
		ContentType:      in.ContentType,
		ByteSize:         *in.ByteSize,
		CreatedAt:        now,
	}
	if err := s.files.Put(ctx, f); err != nil {
		slog.Error("portal file record failed", "request_id", sc.RequestID, "session_id", sc.SessionID, "err", err)
		return nil, domain.ErrDBWrite
	}

	slog.Info("portal signed url issued",
		"request_id", sc.RequestID, "session_id", sc.SessionID, "byte_size", *in.ByteSize)
	return &SignedUploadResult{UploadID: f.FileID, SignedURL: signedURL}, nil
}

// CompleteUpload resolves the requester to an existing account and marks
// the record finished. Completion is idempotent; repeating it reports
// already_completed without touching the original timestamp. Accounts are
// never created here.
func (s *service) CompleteUpload(ctx context.Context, sessionToken, uploadID string) (*CompleteResult, error) {
	sc, err := s.loadSession(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	f, err := s.files.Get(ctx, uploadID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUploadNotFound
	}
	if err != nil {
		slog.Error("portal complete failed", "request_id", sc.RequestID, "err", err)
		return nil, domain.ErrDBRead
	}
	// A record owned by another session is reported exactly like a
	// missing one so the API cannot confirm existence to the wrong caller.
	if f.SessionID != sc.SessionID {
		return nil, domain.ErrUploadNotFound
	}
	if f.CompletedAt != nil {
		return &CompleteResult{UploadID: f.FileID, Status: "already_completed"}, nil
	}

	normalized := emailaddr.Normalize(sc.RequesterEmail)
	acct, err := s.accounts.GetByEmail(ctx, normalized)
	if errors.Is(err, domain.ErrNotFound) {
		slog.Info("portal unknown user",
			"requester_email", emailaddr.Mask(normalized), "request_id", sc.RequestID)
		return nil, domain.ErrUnknownUserEmail
	}
	if err != nil {
		slog.Error("portal complete failed", "request_id", sc.RequestID, "err", err)
		return nil, domain.ErrDBRead
	}

	now := time.Now().UTC()
	if err := s.files.Complete(ctx, f.FileID, acct.AccountID, normalized, now); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return &CompleteResult{UploadID: f.FileID, Status: "already_completed"}, nil
		}
		slog.Error("portal complete failed", "request_id", sc.RequestID, "err", err)
		return nil, domain.ErrDBWrite
	}

	slog.Info("portal upload completed", "request_id", sc.RequestID, "session_id", sc.SessionID)
	return &CompleteResult{UploadID: f.FileID, Status: "completed"}, nil
}

// ListRecentUploads returns the newest upload records for the dashboard
// inbox, trimmed of object names and filenames.
func (s *service) ListRecentUploads(ctx context.Context, limit int) ([]domain.UploadSummary, error) {
	if limit <= 0 {
		limit = 25
	}
	files, err := s.files.ListRecent(ctx, limit)
	if err != nil {
		slog.Error("portal list failed", "err", err)
		return nil, domain.ErrDBRead
	}
	summaries := make([]domain.UploadSummary, 0, len(files))
	for i := range files {
		summaries = append(summaries, files[i].Summary())
	}
	return summaries, nil
}
