// Package urlcheck classifies YouTube video URLs and extracts video IDs.
//
// Validation is anchored: only the canonical watch, shortened, mobile, and
// embed forms are accepted, each followed by an 11-character video ID. The
// functions are pure and never panic on malformed input.
package urlcheck

import "regexp"

var validPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?(youtube\.com/watch\?v=|youtu\.be/)[a-zA-Z0-9_-]{11}`),
	regexp.MustCompile(`^https?://m\.youtube\.com/watch\?v=[a-zA-Z0-9_-]{11}`),
	regexp.MustCompile(`^https?://youtube\.com/embed/[a-zA-Z0-9_-]{11}`),
}

var extractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`embed/([a-zA-Z0-9_-]{11})`),
}

// IsValid reports whether s is a well-formed YouTube video URL in one of the
// four accepted forms.
func IsValid(s string) bool {
	for _, pattern := range validPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

// ExtractID returns the 11-character video ID captured by the first matching
// extraction pattern, or false when no pattern matches.
func ExtractID(s string) (string, bool) {
	for _, pattern := range extractPatterns {
		if match := pattern.FindStringSubmatch(s); match != nil {
			return match[1], true
		}
	}
	return "", false
}
