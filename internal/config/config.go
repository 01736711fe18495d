package config

import (
	"os"
	"strconv"
	"strings"
)

// DefaultAllowedContentTypes covers the document formats clients send for
// analysis: PDF, CSV, plain text, and legacy/modern spreadsheets.
var DefaultAllowedContentTypes = []string{
	"application/pdf",
	"text/csv",
	"text/plain",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// DefaultAllowedOrigins is used when PORTAL_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"https://upload.alphasourceai.com",
	"https://alphasourceai.com",
	"https://www.alphasourceai.com",
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	BaseURL             string // public URL the magic link points at
	TokenTTLMinutes     int
	SessionTTLMinutes   int
	MaxFileSizeMB       int
	AllowedContentTypes []string
	AllowedOrigins      []string

	SignerServiceURL string
	SignerAPIKey     string
	Bucket           string

	RateLimitWindowSeconds int
	RateLimitMax           int

	StaticDir string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Requests string
	Sessions string
	Files    string
	Accounts string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("PORTAL_PORT", "8090"),
		AppEnv:  getEnv("APP_ENV", "development"),

		BaseURL:             getEnv("PORTAL_BASE_URL", ""),
		TokenTTLMinutes:     getEnvInt("PORTAL_TOKEN_TTL_MINUTES", 60),
		SessionTTLMinutes:   getEnvInt("PORTAL_SESSION_TTL_MINUTES", 30),
		MaxFileSizeMB:       getEnvInt("PORTAL_MAX_FILE_SIZE_MB", 50),
		AllowedContentTypes: getEnvList("PORTAL_ALLOWED_CONTENT_TYPES", DefaultAllowedContentTypes),
		AllowedOrigins:      getEnvList("PORTAL_ALLOWED_ORIGINS", DefaultAllowedOrigins),

		SignerServiceURL: getEnv("PORTAL_SIGNER_SERVICE_URL", ""),
		SignerAPIKey:     getEnv("PORTAL_SIGNER_API_KEY", ""),
		Bucket:           getEnv("PORTAL_BUCKET", ""),

		RateLimitWindowSeconds: getEnvInt("PORTAL_RATE_LIMIT_WINDOW_SECONDS", 600),
		RateLimitMax:           getEnvInt("PORTAL_RATE_LIMIT_MAX", 5),

		StaticDir: getEnv("PORTAL_STATIC_DIR", "./web/static"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Requests: getEnv("DYNAMO_TABLE_REQUESTS", "portal_requests"),
			Sessions: getEnv("DYNAMO_TABLE_SESSIONS", "portal_sessions"),
			Files:    getEnv("DYNAMO_TABLE_FILES", "portal_files"),
			Accounts: getEnv("DYNAMO_TABLE_ACCOUNTS", "accounts"),
		},

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
