package errors

import (
	"strings"
	"unicode"
)

// fileOpts are the upload modes accepted by the plotting service.
var fileOpts = map[string]bool{
	"new":       true,
	"overwrite": true,
	"extend":    true,
	"append":    true,
}

// ValidateFilename validates a remote plot filename.
// The service accepts folder-style names ("reports/q3/latency"), so forward
// slashes are allowed, but traversal sequences and control characters are not.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidFilename, "filename too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidFilename, "filename contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateFileOpt validates an upload mode for the plotting service.
func ValidateFileOpt(opt string) error {
	if !fileOpts[opt] {
		return New(ErrCodeInvalidFileOpt, "invalid fileopt: %q (must be one of: new, overwrite, extend, append)", opt)
	}
	return nil
}

// ValidateUsername validates a plotting service username.
func ValidateUsername(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "username cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "username too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "username contains invalid characters")
		}
	}
	return nil
}

// ValidateAPIKey validates an API key for the plotting service.
// Keys are opaque tokens; only shape is checked, never content.
func ValidateAPIKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "api key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidInput, "api key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "api key contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateCoordinates validates an artist coordinate system identifier.
// The exporter understands the four matplotlib coordinate frames.
func ValidateCoordinates(coords string) error {
	switch coords {
	case "data", "axes", "figure", "display":
		return nil
	default:
		return New(ErrCodeInvalidInput, "invalid coordinates: %q (must be one of: data, axes, figure, display)", coords)
	}
}
