package clip

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Payload is the tolerant wire shape of one clip as emitted by the analysis
// service. IDs and scores arrive as JSON numbers but are accepted as strings
// too; optional fields may be absent.
type Payload struct {
	ID            json.Number `json:"id"`
	Title         string      `json:"title"`
	HookText      string      `json:"hookText"`
	FullText      string      `json:"fullText"`
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	Duration      string      `json:"duration"`
	ViralityScore json.Number `json:"viralityScore"`
	Category      string      `json:"category"`
	Triggers      []string    `json:"triggers"`
	SourceType    string      `json:"sourceType"`
	VideoURL      string      `json:"videoUrl"`
	PreviewURL    string      `json:"previewUrl"`
	FFmpegCommand string      `json:"ffmpegCommand"`
}

// Coerce validates a payload and converts it into a typed Clip. The fallback
// source type applies when the service omits sourceType (older service
// versions only emit it for subtitle analyses).
func (p Payload) Coerce(fallback SourceType) (Clip, error) {
	id := strings.TrimSpace(p.ID.String())
	if id == "" {
		return Clip{}, fmt.Errorf("clip record missing id")
	}

	if strings.TrimSpace(p.StartTime) == "" || strings.TrimSpace(p.EndTime) == "" {
		return Clip{}, fmt.Errorf("clip %s: missing timecodes", id)
	}
	if _, err := DurationSeconds(p.Duration); err != nil {
		return Clip{}, fmt.Errorf("clip %s: %w", id, err)
	}

	score, err := p.ViralityScore.Int64()
	if err != nil {
		// Some encoders emit integral floats; accept those.
		f, ferr := p.ViralityScore.Float64()
		if ferr != nil || f != float64(int64(f)) {
			return Clip{}, fmt.Errorf("clip %s: virality score %q is not an integer", id, p.ViralityScore)
		}
		score = int64(f)
	}
	if score < 0 || score > 100 {
		return Clip{}, fmt.Errorf("clip %s: virality score %d out of range", id, score)
	}

	source, ok := ParseSourceType(p.SourceType)
	if !ok {
		source = fallback
	}

	triggers := make([]string, 0, len(p.Triggers))
	for _, trigger := range p.Triggers {
		if t := strings.TrimSpace(trigger); t != "" {
			triggers = append(triggers, t)
		}
	}

	return Clip{
		ID:            ID(id),
		Title:         strings.TrimSpace(p.Title),
		HookText:      strings.TrimSpace(p.HookText),
		FullText:      strings.TrimSpace(p.FullText),
		StartTime:     strings.TrimSpace(p.StartTime),
		EndTime:       strings.TrimSpace(p.EndTime),
		Duration:      strings.TrimSpace(p.Duration),
		ViralityScore: int(score),
		Category:      strings.TrimSpace(p.Category),
		Triggers:      triggers,
		SourceType:    source,
		VideoURL:      strings.TrimSpace(p.VideoURL),
		PreviewURL:    strings.TrimSpace(p.PreviewURL),
		FFmpegCommand: strings.TrimSpace(p.FFmpegCommand),
	}, nil
}

// CoerceAll converts payloads into clips in received order, dropping records
// that fail validation. The returned slice preserves service ordering; dropped
// holds one error per rejected record for logging at the boundary.
func CoerceAll(payloads []Payload, fallback SourceType) (clips []Clip, dropped []error) {
	clips = make([]Clip, 0, len(payloads))
	for _, payload := range payloads {
		c, err := payload.Coerce(fallback)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		clips = append(clips, c)
	}
	return clips, dropped
}
