// Package emailaddr normalizes and masks requester email addresses.
// Masked forms are the only shape an address may take in log output.
package emailaddr

import "strings"

// Normalize lower-cases and trims an address. Empty input stays empty.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Mask reduces an address to a log-safe hint: j***@e***.com.
func Mask(raw string) string {
	normalized := Normalize(raw)
	at := strings.Index(normalized, "@")
	if at < 0 {
		return "***"
	}
	local, domain := normalized[:at], normalized[at+1:]
	localMask := "***"
	if local != "" {
		localMask = local[:1] + "***"
	}
	parts := strings.Split(domain, ".")
	if len(parts) >= 2 {
		return localMask + "@" + firstChar(parts[0]) + "***." + parts[len(parts)-1]
	}
	return localMask + "@" + firstChar(domain) + "***"
}

func firstChar(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}
