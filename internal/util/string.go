package util

import (
	"regexp"
	"strconv"
	"strings"
)

var steamAppURLPattern = regexp.MustCompile(`store\.steampowered\.com/app/(\d+)`)

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeTitle canonicalizes a game title into a comparable key: lowercase,
// every run of characters outside [a-z0-9] and the Arabic block becomes a
// single space, leading/trailing whitespace trimmed. Idempotent.
func NormalizeTitle(s string) string {
	s = Normalize(s)
	if s == "" {
		return ""
	}

	var builder strings.Builder
	lastSpace := true
	for _, r := range s {
		if isTitleRune(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}

func isTitleRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r >= 0x0600 && r <= 0x06FF: // Arabic
		return true
	default:
		return false
	}
}

// ExtractSteamAppID recognizes a Steam store link containing a numeric app id,
// or input that is entirely numeric, and returns the id. Lets the lookup
// pipeline skip fuzzy search when the user supplies a direct identifier.
func ExtractSteamAppID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := steamAppURLPattern.FindStringSubmatch(s); m != nil {
		if id, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			return id, true
		}
	}

	if id, err := strconv.ParseInt(s, 10, 64); err == nil && id > 0 {
		return id, true
	}

	return 0, false
}

// Contains checks if a string slice contains a specific item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
