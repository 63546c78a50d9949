package export

import (
	"fmt"
	"strings"

	"viralclip/internal/services"
)

// QualityTier is a supported media download resolution.
type QualityTier string

const (
	Quality1080 QualityTier = "1080"
	Quality720  QualityTier = "720"
	Quality480  QualityTier = "480"
)

// DefaultQuality is used when the user does not pick a tier.
const DefaultQuality = Quality1080

// ParseQuality resolves a user-supplied tier, accepting forms like "720" and
// "720p".
func ParseQuality(value string) (QualityTier, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	trimmed = strings.TrimSuffix(trimmed, "p")
	switch QualityTier(trimmed) {
	case Quality1080, Quality720, Quality480:
		return QualityTier(trimmed), nil
	case "":
		return DefaultQuality, nil
	default:
		return "", services.Wrap(services.ErrValidation, "export", "quality",
			fmt.Sprintf("unsupported quality %q (use 1080, 720, or 480)", value), nil)
	}
}

// FormatSelector returns the downloader format expression for this tier.
func (q QualityTier) FormatSelector() string {
	return fmt.Sprintf("bestvideo[height<=%s]+bestaudio/best[height<=%s]", q, q)
}
