package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"viralclip/internal/config"
)

const userAgent = "ViralClip-Go/0.1.0"

// Service defines the notification surface exposed to the daemon.
type Service interface {
	NotifyAnalysisComplete(ctx context.Context, source string, clipCount int) error
	NotifyAnalysisFailed(ctx context.Context, source, message string) error
	NotifyExportReady(ctx context.Context, clipTitle, path string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:       topic,
		client:         &http.Client{Timeout: timeout},
		analysisEvents: cfg.Notifications.Analysis,
		exportEvents:   cfg.Notifications.Export,
		errorEvents:    cfg.Notifications.Errors,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint       string
	client         *http.Client
	analysisEvents bool
	exportEvents   bool
	errorEvents    bool
}

func (n *ntfyService) NotifyAnalysisComplete(ctx context.Context, source string, clipCount int) error {
	if !n.analysisEvents {
		return nil
	}
	source = strings.TrimSpace(source)
	noun := "clips"
	if clipCount == 1 {
		noun = "clip"
	}
	data := payload{
		title:   "ViralClip - Analysis Complete",
		message: fmt.Sprintf("Found %d viral %s in %s", clipCount, noun, source),
		tags:    []string{"viralclip", "analysis", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyAnalysisFailed(ctx context.Context, source, message string) error {
	if !n.analysisEvents {
		return nil
	}
	source = strings.TrimSpace(source)
	message = strings.TrimSpace(message)
	if message == "" {
		message = "unknown failure"
	}
	data := payload{
		title:    "ViralClip - Analysis Failed",
		message:  fmt.Sprintf("Analysis of %s failed: %s", source, message),
		tags:     []string{"viralclip", "analysis", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyExportReady(ctx context.Context, clipTitle, path string) error {
	if !n.exportEvents {
		return nil
	}
	clipTitle = strings.TrimSpace(clipTitle)
	path = strings.TrimSpace(path)
	message := fmt.Sprintf("Clip exported: %s", clipTitle)
	if path != "" {
		message = fmt.Sprintf("%s\nFile: %s", message, path)
	}
	data := payload{
		title:   "ViralClip - Export Ready",
		message: message,
		tags:    []string{"viralclip", "export", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	if !n.errorEvents {
		return nil
	}
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "ViralClip - Error",
		message:  builder.String(),
		tags:     []string{"viralclip", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "ViralClip - Test",
		message:  "Notification system test",
		tags:     []string{"viralclip", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyAnalysisComplete(context.Context, string, int) error  { return nil }
func (noopService) NotifyAnalysisFailed(context.Context, string, string) error { return nil }
func (noopService) NotifyExportReady(context.Context, string, string) error    { return nil }
func (noopService) NotifyError(context.Context, error, string) error           { return nil }
func (noopService) TestNotification(context.Context) error                     { return nil }
