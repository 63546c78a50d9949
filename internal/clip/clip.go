package clip

import (
	"strconv"
	"strings"
)

// SourceType identifies where a clip's content came from.
type SourceType string

const (
	SourceYouTube      SourceType = "YouTube"
	SourceSubtitleFile SourceType = "SubtitleFile"
)

// ParseSourceType converts a wire value into a known SourceType.
func ParseSourceType(value string) (SourceType, bool) {
	switch strings.TrimSpace(value) {
	case string(SourceYouTube):
		return SourceYouTube, true
	case string(SourceSubtitleFile):
		return SourceSubtitleFile, true
	default:
		return "", false
	}
}

// ID is an opaque clip identifier, unique within one result set. The service
// emits numeric IDs but display layers pass them around as strings, so
// equality is normalizing rather than literal.
type ID string

// Equal reports whether two identifiers name the same clip. When both sides
// parse as integers they compare numerically, otherwise by trimmed text.
func (id ID) Equal(other ID) bool {
	a := strings.TrimSpace(string(id))
	b := strings.TrimSpace(string(other))
	if a == b {
		return a != ""
	}
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	return aerr == nil && berr == nil && ai == bi
}

func (id ID) String() string { return string(id) }

// Clip is one candidate highlight segment. Immutable once received; the store
// replaces whole collections rather than mutating clips in place.
type Clip struct {
	ID            ID
	Title         string
	HookText      string
	FullText      string
	StartTime     string
	EndTime       string
	Duration      string
	ViralityScore int
	Category      string
	Triggers      []string
	SourceType    SourceType
	VideoURL      string
	PreviewURL    string
	FFmpegCommand string
}

// DisplayText returns the full text when present, falling back to the hook.
func (c Clip) DisplayText() string {
	if strings.TrimSpace(c.FullText) != "" {
		return c.FullText
	}
	return c.HookText
}

// HasVideoURL reports whether a downloadable source is known for this clip.
func (c Clip) HasVideoURL() bool {
	return strings.TrimSpace(c.VideoURL) != ""
}
