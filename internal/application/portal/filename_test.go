package portal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphasourceai/upload-portal/internal/domain"
	"github.com/alphasourceai/upload-portal/internal/pkg/id"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "report.pdf", "report.pdf"},
		{"absolute path stripped", "/etc/passwd", "passwd"},
		{"traversal stripped", "../../secret.txt", "secret.txt"},
		{"spaces and punctuation collapsed", "my report (final).pdf", "my_report_final_.pdf"},
		{"nul bytes removed", "bad\x00name.txt", "badname.txt"},
		{"unicode collapsed", "données.csv", "donn_es.csv"},
		{"trailing dots trimmed", "notes.txt...", "notes.txt"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sanitizeFilename(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSanitizeFilename_NothingLeft(t *testing.T) {
	for _, in := range []string{"", " ", ".", "..", "...", "/", "___", ".__."} {
		_, err := sanitizeFilename(in)
		assert.True(t, errors.Is(err, domain.ErrInvalidFilename), "input %q", in)
	}
}

func TestBuildObjectName_AlwaysValidates(t *testing.T) {
	inputs := []string{
		"report.pdf",
		"../../../etc/shadow",
		"a b c d.xlsx",
		"..\\..\\boot.ini",
		"weird%20name?.csv",
		"résumé final.PDF",
		"x",
	}
	requestID := id.New()
	for _, in := range inputs {
		safe, err := sanitizeFilename(in)
		require.NoError(t, err, "input %q", in)
		assert.NotContains(t, safe, "..")

		name, err := buildObjectName(requestID, safe)
		require.NoError(t, err)
		assert.NoError(t, validateObjectName(name), "object name %q from input %q", name, in)
	}
}

func TestValidateObjectName(t *testing.T) {
	requestID := id.New()
	safe, err := sanitizeFilename("report.pdf")
	require.NoError(t, err)
	valid, err := buildObjectName(requestID, safe)
	require.NoError(t, err)

	assert.NoError(t, validateObjectName(valid))

	bad := []string{
		"",
		"/" + valid,
		"portal/../secrets/a.pdf",
		"other/" + requestID + "/2026-01-01/abcdefabcdef_a.pdf",
		"portal/" + requestID + "/2026-01-01/short_a.pdf",
		"portal/notaulid/2026-01-01/abcdefabcdef_a.pdf",
		"portal/" + requestID + "/2026-01-01/abcdefabcdef_",
	}
	for _, name := range bad {
		err := validateObjectName(name)
		assert.True(t, errors.Is(err, domain.ErrInvalidObjectPath), "object name %q", name)
	}
}
