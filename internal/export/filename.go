package export

import (
	"fmt"
	"regexp"
	"strings"

	"viralclip/internal/clip"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// sanitizeFileName reduces free text to a filesystem-safe stem: strip
// everything outside letters, digits, and spaces, collapse whitespace runs to
// single underscores, lowercase, and cap at 30 characters.
func sanitizeFileName(text string) string {
	s := nonAlphanumeric.ReplaceAllString(text, "")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = strings.ToLower(s)
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

// ReportFileName names the text report download for a clip.
func ReportFileName(c clip.Clip) string {
	return fmt.Sprintf("viral-clip-%s-%s.txt", c.ID, strings.ToLower(string(c.SourceType)))
}

// MediaFileName names the downloaded media file for a clip at a quality tier.
func MediaFileName(c clip.Clip, tier QualityTier) string {
	return fmt.Sprintf("%s_%sp_clip_%s.mp4", sanitizeFileName(c.HookText), tier, c.ID)
}
