// Package smtp delivers the magic-link email. The raw token appears only
// in the constructed link; it is never logged here or anywhere else.
package smtp

import (
	"fmt"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/alphasourceai/upload-portal/internal/config"
)

// Dispatcher delivers a magic link to a requester.
type Dispatcher interface {
	SendMagicLink(email, rawToken string, expiresAt time.Time) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
	baseURL  string
}

// NewMailer builds the SMTP dispatcher, or nil when SMTP host or sender
// address are not configured. Callers treat a nil Dispatcher as missing
// delivery configuration.
func NewMailer(cfg *config.Config) Dispatcher {
	if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
		return nil
	}
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		baseURL:  cfg.BaseURL,
	}
}

func (m *mailer) SendMagicLink(email, rawToken string, expiresAt time.Time) error {
	link := strings.TrimRight(m.baseURL, "/") + "/?upload_token=" + url.QueryEscape(rawToken)
	expiration := expiresAt.UTC().Format("2006-01-02 15:04 UTC")

	plain := fmt.Sprintf(
		"Your secure upload link is ready.\r\n\r\nLink: %s\r\nExpires: %s\r\n\r\n"+
			"If you did not request this link, you can ignore this email.\r\n",
		link, expiration,
	)
	html := fmt.Sprintf(
		`<html><body style="font-family:Arial,sans-serif;color:#1c2430;">`+
			`<h2>Secure Upload Link</h2>`+
			`<p>Use the secure link below to upload your documents. This link expires on <strong>%s</strong>.</p>`+
			`<p><a href="%s" style="background:#00cfc8;color:#102a2f;text-decoration:none;padding:12px 18px;border-radius:999px;font-weight:600;display:inline-block;">Upload Documents</a></p>`+
			`<p style="font-size:12px;color:#6b7686;">If you did not request this link, you can ignore this email.</p>`+
			`</body></html>`,
		expiration, link,
	)

	const boundary = "upload-portal-alt"
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", email)
	fmt.Fprintf(&b, "Subject: Secure upload link\r\n")
	fmt.Fprintf(&b, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n", boundary, plain)
	fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s\r\n", boundary, html)
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%s", m.host, m.port)
	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{email}, []byte(b.String()))
}
