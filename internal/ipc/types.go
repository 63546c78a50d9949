package ipc

import (
	"time"

	"viralclip/internal/clip"
	"viralclip/internal/session"
)

// Clip is the wire representation of one analyzed clip.
type Clip struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	HookText      string   `json:"hook_text"`
	FullText      string   `json:"full_text"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	Duration      string   `json:"duration"`
	ViralityScore int      `json:"virality_score"`
	Category      string   `json:"category"`
	Triggers      []string `json:"triggers"`
	SourceType    string   `json:"source_type"`
	VideoURL      string   `json:"video_url"`
	PreviewURL    string   `json:"preview_url"`
	FFmpegCommand string   `json:"ffmpeg_command"`
}

// FromClip converts a domain clip into its wire form.
func FromClip(c clip.Clip) Clip {
	return Clip{
		ID:            c.ID.String(),
		Title:         c.Title,
		HookText:      c.HookText,
		FullText:      c.FullText,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Duration:      c.Duration,
		ViralityScore: c.ViralityScore,
		Category:      c.Category,
		Triggers:      append([]string(nil), c.Triggers...),
		SourceType:    string(c.SourceType),
		VideoURL:      c.VideoURL,
		PreviewURL:    c.PreviewURL,
		FFmpegCommand: c.FFmpegCommand,
	}
}

// ToClip converts a wire clip back into the domain form.
func (c Clip) ToClip() clip.Clip {
	source, ok := clip.ParseSourceType(c.SourceType)
	if !ok {
		source = clip.SourceYouTube
	}
	return clip.Clip{
		ID:            clip.ID(c.ID),
		Title:         c.Title,
		HookText:      c.HookText,
		FullText:      c.FullText,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Duration:      c.Duration,
		ViralityScore: c.ViralityScore,
		Category:      c.Category,
		Triggers:      append([]string(nil), c.Triggers...),
		SourceType:    source,
		VideoURL:      c.VideoURL,
		PreviewURL:    c.PreviewURL,
		FFmpegCommand: c.FFmpegCommand,
	}
}

// Stats summarizes a projected clip collection.
type Stats struct {
	Count       int    `json:"count"`
	AvgScore    string `json:"avg_score"`
	TopCategory string `json:"top_category"`
}

// SessionSnapshot mirrors the controller snapshot for IPC callers.
type SessionSnapshot = session.Snapshot

// AnalyzeRequest submits a video URL for analysis.
type AnalyzeRequest struct {
	VideoURL string `json:"video_url"`
	Platform string `json:"platform"`
}

// AnalyzeResponse reports whether the submission was accepted.
type AnalyzeResponse struct {
	Accepted bool            `json:"accepted"`
	Session  SessionSnapshot `json:"session"`
}

// AnalyzeSubtitlesRequest submits a subtitle file for analysis.
type AnalyzeSubtitlesRequest struct {
	FileName string `json:"file_name"`
	Content  []byte `json:"content"`
	VideoURL string `json:"video_url"`
}

// SessionRequest fetches the current session snapshot.
type SessionRequest struct{}

// SessionResponse carries the session snapshot.
type SessionResponse struct {
	Session SessionSnapshot `json:"session"`
}

// AwaitRequest blocks until the in-flight analysis completes.
type AwaitRequest struct {
	TimeoutSeconds int `json:"timeout_seconds"`
}

// AwaitResponse carries the terminal session snapshot.
type AwaitResponse struct {
	Session SessionSnapshot `json:"session"`
}

// ClipsRequest projects the collection through filter criteria.
type ClipsRequest struct {
	Category string `json:"category"`
	MinScore int    `json:"min_score"`
	SortKey  string `json:"sort_key"`
}

// ClipsResponse contains the projected clips and summary stats.
type ClipsResponse struct {
	Clips       []Clip `json:"clips"`
	Stats       Stats  `json:"stats"`
	CanDownload bool   `json:"can_download"`
	// Total is the unfiltered collection size, distinguishing an empty
	// projection from an empty store.
	Total int `json:"total"`
}

// ClipShowRequest fetches a single clip by id.
type ClipShowRequest struct {
	ID string `json:"id"`
}

// ClipShowResponse contains a single clip.
type ClipShowResponse struct {
	Clip Clip `json:"clip"`
}

// ExportReportRequest renders the text report for a clip.
type ExportReportRequest struct {
	ID string `json:"id"`
}

// ExportReportResponse carries the rendered report.
type ExportReportResponse struct {
	Text          string `json:"text"`
	FileName      string `json:"file_name"`
	FFmpegCommand string `json:"ffmpeg_command"`
}

// ExportMediaRequest downloads a clip's media server-side.
type ExportMediaRequest struct {
	ID      string `json:"id"`
	Quality string `json:"quality"`
}

// ExportMediaResponse reports the written media path.
type ExportMediaResponse struct {
	Path string `json:"path"`
}

// ResetRequest returns the session to idle.
type ResetRequest struct{}

// ResetResponse confirms the reset.
type ResetResponse struct {
	Reset bool `json:"reset"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon/session status information.
type StatusResponse struct {
	Running    bool            `json:"running"`
	PID        int             `json:"pid"`
	StartedAt  time.Time       `json:"started_at"`
	ServiceURL string          `json:"service_url"`
	LockPath   string          `json:"lock_path"`
	SocketPath string          `json:"socket_path"`
	LogPath    string          `json:"log_path"`
	Session    SessionSnapshot `json:"session"`
}

// HealthRequest probes the analysis service through the daemon.
type HealthRequest struct{}

// HealthResponse reports service reachability.
type HealthResponse struct {
	ServiceReachable bool   `json:"service_reachable"`
	Detail           string `json:"detail"`
}

// LogsRequest asks the daemon for log lines. A negative Offset requests the
// last Limit lines of the file; a non-negative Offset resumes from that byte.
type LogsRequest struct {
	Offset      int64 `json:"offset"`
	Limit       int   `json:"limit"`
	WaitSeconds int   `json:"wait_seconds"`
}

// LogsResponse carries log lines and the offset to resume from.
type LogsResponse struct {
	Lines  []string `json:"lines"`
	Offset int64    `json:"offset"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
