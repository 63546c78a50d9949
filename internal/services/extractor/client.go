package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"viralclip/internal/clip"
	"viralclip/internal/config"
	"viralclip/internal/services"
)

const component = "extractor"

// maxErrorBodyBytes bounds how much of an error body is read for diagnostics.
const maxErrorBodyBytes = 4096

// HTTPDoer describes the HTTP client used by the extractor service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is a successful analysis response after boundary coercion.
type Result struct {
	Clips       []clip.Clip
	CanDownload bool
	// Dropped holds one error per wire record rejected during coercion.
	Dropped []error
}

// SubtitleRequest carries a subtitle file submission.
type SubtitleRequest struct {
	FileName string
	Content  []byte
	// VideoURL optionally links the subtitles to a source video, enabling
	// direct clip downloads.
	VideoURL string
}

// DownloadRequest describes one media clip retrieval.
type DownloadRequest struct {
	VideoURL  string
	StartTime string
	EndTime   string
	HookText  string
	// Quality is a format selection expression, e.g. from export.QualityTier.
	Quality string
}

// Service is the remote-service surface the session controller depends on.
type Service interface {
	Analyze(ctx context.Context, videoURL, platform string) (*Result, error)
	AnalyzeSubtitles(ctx context.Context, req SubtitleRequest) (*Result, error)
	DownloadClip(ctx context.Context, req DownloadRequest) ([]byte, error)
	Health(ctx context.Context) error
}

// Client talks to the analysis service over HTTP.
type Client struct {
	baseURL        string
	client         HTTPDoer
	downloadClient HTTPDoer
}

// NewClient builds a client from application config. Analysis requests and
// media downloads use separate timeouts since downloads move real bytes.
func NewClient(cfg *config.Config) *Client {
	base := ""
	requestTimeout := 120 * time.Second
	downloadTimeout := 600 * time.Second
	if cfg != nil {
		base = cfg.Service.BaseURL
		if cfg.Service.RequestTimeout > 0 {
			requestTimeout = time.Duration(cfg.Service.RequestTimeout) * time.Second
		}
		if cfg.Service.DownloadTimeout > 0 {
			downloadTimeout = time.Duration(cfg.Service.DownloadTimeout) * time.Second
		}
	}
	return &Client{
		baseURL:        strings.TrimRight(base, "/"),
		client:         &http.Client{Timeout: requestTimeout},
		downloadClient: &http.Client{Timeout: downloadTimeout},
	}
}

// NewClientWithDoer builds a client around an injected HTTP doer. Tests use
// this to point the client at an httptest server.
func NewClientWithDoer(baseURL string, doer HTTPDoer) *Client {
	return &Client{
		baseURL:        strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:         doer,
		downloadClient: doer,
	}
}

type envelope struct {
	Success bool `json:"success"`
	// Pointer distinguishes an absent clip list (failure) from an empty one
	// (successful analysis with no candidates).
	Clips            *[]clip.Payload `json:"clips"`
	CanDownloadClips bool            `json:"canDownloadClips"`
	Error            string          `json:"error"`
}

// Analyze submits a video URL for analysis.
func (c *Client) Analyze(ctx context.Context, videoURL, platform string) (*Result, error) {
	body, err := json.Marshal(map[string]string{
		"videoUrl": videoURL,
		"platform": platform,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, "analyze", "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "analyze", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doAnalyze(req, "analyze", clip.SourceYouTube)
}

// AnalyzeSubtitles submits a subtitle file, optionally linked to a video URL.
func (c *Client) AnalyzeSubtitles(ctx context.Context, sub SubtitleRequest) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("srtFile", sub.FileName)
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, "analyze subtitles", "build form", err)
	}
	if _, err := part.Write(sub.Content); err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, "analyze subtitles", "write file part", err)
	}
	if url := strings.TrimSpace(sub.VideoURL); url != "" {
		if err := writer.WriteField("videoUrl", url); err != nil {
			return nil, services.Wrap(services.ErrProtocol, component, "analyze subtitles", "write url field", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, "analyze subtitles", "finalize form", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/analyze-srt", &body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "analyze subtitles", "build request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.doAnalyze(req, "analyze subtitles", clip.SourceSubtitleFile)
}

func (c *Client) doAnalyze(req *http.Request, operation string, fallback clip.SourceType) (*Result, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, operation, "", err)
	}
	defer resp.Body.Close()

	structured := isJSON(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if structured {
			var payload envelope
			if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&payload); decodeErr == nil && strings.TrimSpace(payload.Error) != "" {
				return nil, services.Remote(component, operation, payload.Error)
			}
		}
		return nil, services.Wrap(services.ErrTransport, component, operation,
			fmt.Sprintf("service returned status %d", resp.StatusCode), nil)
	}

	if !structured {
		return nil, services.Wrap(services.ErrProtocol, component, operation, "service returned a non-JSON response", nil)
	}

	var payload envelope
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, operation, "malformed response payload", err)
	}

	if !payload.Success || payload.Clips == nil {
		if strings.TrimSpace(payload.Error) != "" {
			return nil, services.Remote(component, operation, payload.Error)
		}
		return nil, services.Remote(component, operation, "Analysis failed")
	}

	clips, dropped := clip.CoerceAll(*payload.Clips, fallback)
	return &Result{
		Clips:       clips,
		CanDownload: payload.CanDownloadClips,
		Dropped:     dropped,
	}, nil
}

// DownloadClip retrieves a media clip as raw bytes.
func (c *Client) DownloadClip(ctx context.Context, dl DownloadRequest) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"videoUrl":  dl.VideoURL,
		"startTime": dl.StartTime,
		"endTime":   dl.EndTime,
		"hookText":  dl.HookText,
		"quality":   dl.Quality,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrProtocol, component, "download clip", "encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/download-clip", bytes.NewReader(body))
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download clip", "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.downloadClient.Do(req)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download clip", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if isJSON(resp) {
			var payload envelope
			if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBodyBytes)).Decode(&payload); decodeErr == nil && strings.TrimSpace(payload.Error) != "" {
				return nil, services.Remote(component, "download clip", payload.Error)
			}
		}
		return nil, services.Wrap(services.ErrProtocol, component, "download clip", "server error occurred", nil)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, services.Wrap(services.ErrTransport, component, "download clip", "read media body", err)
	}
	if len(data) == 0 {
		return nil, services.Wrap(services.ErrProtocol, component, "download clip", "service returned an empty media body", nil)
	}
	return data, nil
}

// Health probes the service health endpoint. Any 2xx means reachable.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return services.Wrap(services.ErrTransport, component, "health", "build request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrTransport, component, "health", "", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return services.Wrap(services.ErrTransport, component, "health",
			fmt.Sprintf("service returned status %d", resp.StatusCode), nil)
	}
	return nil
}

func isJSON(resp *http.Response) bool {
	contentType := resp.Header.Get("Content-Type")
	return strings.Contains(strings.ToLower(contentType), "application/json")
}
