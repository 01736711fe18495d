package portal

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/alphasourceai/upload-portal/internal/domain"
	"github.com/alphasourceai/upload-portal/internal/pkg/token"
)

var (
	unsafeFilenameRuns = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

	// Object names follow portal/<ULID>/<YYYY-MM-DD>/<12 hex>_<filename>.
	objectNamePattern = regexp.MustCompile(
		`^portal/[0-9A-HJKMNP-TV-Z]{26}/\d{4}-\d{2}-\d{2}/[0-9a-f]{12}_[A-Za-z0-9._-]+$`)
)

// sanitizeFilename reduces a client-supplied filename to a single safe
// path component. Directory parts are dropped, NUL bytes removed, runs of
// disallowed characters collapsed to one underscore, and ".." neutralized.
// A name with nothing left after cleaning fails as invalid.
func sanitizeFilename(name string) (string, error) {
	cleaned := strings.TrimSpace(path.Base(name))
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")
	cleaned = unsafeFilenameRuns.ReplaceAllString(cleaned, "_")
	cleaned = strings.ReplaceAll(cleaned, "..", "_")
	cleaned = strings.Trim(cleaned, "._")
	if cleaned == "" {
		return "", domain.ErrInvalidFilename
	}
	return cleaned, nil
}

// buildObjectName constructs the storage key for an upload. The random
// suffix makes repeated uploads of the same filename distinct objects.
func buildObjectName(requestID, safeFilename string) (string, error) {
	suffix, err := token.Hex(6)
	if err != nil {
		return "", err
	}
	date := time.Now().UTC().Format("2006-01-02")
	return fmt.Sprintf("portal/%s/%s/%s_%s", requestID, date, suffix, safeFilename), nil
}

// validateObjectName rejects anything that does not match the generated
// key shape, including traversal sequences and absolute paths.
func validateObjectName(name string) error {
	if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return domain.ErrInvalidObjectPath
	}
	if !objectNamePattern.MatchString(name) {
		return domain.ErrInvalidObjectPath
	}
	return nil
}
