package discovery

import (
	"fmt"
	"net/url"
	"strings"
)

// File-style suffixes that never identify an auditable page
var skippedExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".rar", ".tar", ".gz",
	".mp3", ".wav", ".mp4", ".avi", ".mov", ".webm",
	".css", ".js",
}

// Schemes that are link noise rather than navigable targets
var skippedPrefixes = []string{"mailto:", "javascript:", "tel:", "#"}

// ParseBase validates a base URL for an audit run. An invalid base URL
// is a contract error and is the only discovery failure that surfaces
// to the caller.
func ParseBase(raw string) (*url.URL, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", raw)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("base URL %q has no host", raw)
	}
	return parsed, nil
}

// Normalize resolves a raw link against the base URL and validates it
// as a same-origin page candidate. It returns ("", false) on any
// rejection; callers simply skip the link. Pure, no I/O.
func Normalize(raw string, base *url.URL) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, prefix := range skippedPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return "", false
		}
	}

	resolved, err := base.Parse(raw)
	if err != nil {
		return "", false
	}

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}

	// Exact hostname match only; subdomains are treated as foreign
	if resolved.Hostname() != base.Hostname() {
		return "", false
	}

	lowerPath := strings.ToLower(resolved.Path)
	for _, ext := range skippedExtensions {
		if strings.HasSuffix(lowerPath, ext) {
			return "", false
		}
	}

	return resolved.String(), true
}
