package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateTrendName validates a curated trend name for safety and sanity.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 120 characters
//
// Display-level truncation is handled separately by the renderer.
func ValidateTrendName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidTrend, "trend name cannot be empty")
	}

	if len(name) > 120 {
		return New(ErrCodeInvalidTrend, "trend name too long (max 120 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTrend, "trend name contains invalid control characters")
		}
	}

	return nil
}

// ValidateTrendSize validates a layout weight. The layout engine only
// accepts positive weights, so reject everything else at the edge.
func ValidateTrendSize(size float64) error {
	if size <= 0 {
		return New(ErrCodeInvalidTrend, "trend size must be positive, got %g", size)
	}
	if size != size { // NaN
		return New(ErrCodeInvalidTrend, "trend size must be a number")
	}
	return nil
}

// ValidateKeyword validates a watchlist keyword.
func ValidateKeyword(keyword string) error {
	if strings.TrimSpace(keyword) == "" {
		return New(ErrCodeInvalidKeyword, "keyword cannot be empty")
	}
	if len(keyword) > 64 {
		return New(ErrCodeInvalidKeyword, "keyword too long (max 64 characters)")
	}
	for _, r := range keyword {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKeyword, "keyword contains invalid control characters")
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

// hexColorRegex matches 3- or 6-digit CSS hex colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a tile color hint. Empty is allowed; the
// renderer falls back to the category palette.
func ValidateHexColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidTrend, "invalid hex color: %q", color)
	}
	return nil
}

// categoryRegex matches category slugs: lowercase words joined by hyphens.
var categoryRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateCategory validates a category slug. Empty is allowed and maps
// to the implicit "uncategorized" group.
func ValidateCategory(category string) error {
	if category == "" {
		return nil
	}
	if len(category) > 48 {
		return New(ErrCodeInvalidInput, "category too long (max 48 characters)")
	}
	if !categoryRegex.MatchString(category) {
		return New(ErrCodeInvalidInput, "invalid category slug: %q", category)
	}
	return nil
}
