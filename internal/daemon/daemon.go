package daemon

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"log/slog"

	"github.com/gofrs/flock"

	"viralclip/internal/clip"
	"viralclip/internal/clipfilter"
	"viralclip/internal/config"
	"viralclip/internal/export"
	"viralclip/internal/logging"
	"viralclip/internal/logtail"
	"viralclip/internal/notifications"
	"viralclip/internal/services"
	"viralclip/internal/services/extractor"
	"viralclip/internal/session"
)

// Daemon coordinates the analysis lifecycle and enforces single-instance
// execution.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	service    extractor.Service
	controller *session.Controller
	exporter   *export.MediaExporter
	notifier   notifications.Service
	logPath    string

	lockPath string
	lock     *flock.Flock

	running   atomic.Bool
	startedAt time.Time
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	StartedAt    time.Time
	ServiceURL   string
	LockFilePath string
	SocketPath   string
	LogPath      string
	Session      session.Snapshot
}

// ReportResult is a rendered clip report plus the metadata the CLI needs to
// deliver it.
type ReportResult struct {
	Text          string
	FileName      string
	FFmpegCommand string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, service extractor.Service, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || service == nil || logger == nil {
		return nil, errors.New("daemon requires config, service, and logger")
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "viralclipd.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logger,
		service:    service,
		controller: session.NewController(service, nil, logger),
		exporter:   export.NewMediaExporter(service, cfg.Paths.ExportDir, logger),
		notifier:   notifier,
		logPath:    filepath.Join(cfg.Paths.LogDir, "viralclipd.log"),
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
		// Set at construction so Status never races a concurrent Start; the
		// IPC server may be serving before Start runs.
		startedAt: time.Now(),
	}, nil
}

// Start acquires the daemon lock and marks the daemon running.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another viralclip daemon instance is already running")
	}

	d.running.Store(true)
	d.logger.Info("viralclip daemon started",
		logging.String("lock", d.lockPath),
		logging.String("service_url", d.cfg.Service.BaseURL))

	if err := d.service.Health(ctx); err != nil {
		d.logger.Warn("analysis service unreachable at startup",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "Check service.base_url in the config and that the service is running"))
	}
	return nil
}

// Stop releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("viralclip daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// LogPath returns the daemon log file location.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// TailLogs reads lines from the daemon log file.
func (d *Daemon) TailLogs(ctx context.Context, opts logtail.Options) (logtail.Result, error) {
	return logtail.Tail(ctx, d.logPath, opts)
}

// Status reports the daemon and session state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		StartedAt:    d.startedAt,
		ServiceURL:   d.cfg.Service.BaseURL,
		LockFilePath: d.lockPath,
		SocketPath:   d.cfg.SocketPath(),
		LogPath:      d.logPath,
		Session:      d.controller.Snapshot(),
	}
}

// Analyze starts a URL analysis. An empty platform falls back to the
// configured default.
func (d *Daemon) Analyze(ctx context.Context, videoURL, platformName string) error {
	if strings.TrimSpace(platformName) == "" {
		platformName = d.cfg.Analysis.Platform
	}
	source := strings.TrimSpace(videoURL)
	if err := d.controller.Submit(ctx, session.Input{
		Kind:     session.InputURL,
		VideoURL: source,
		Platform: platformName,
	}); err != nil {
		return err
	}
	go d.notifyOutcome(source)
	return nil
}

// AnalyzeSubtitles starts a subtitle-file analysis.
func (d *Daemon) AnalyzeSubtitles(ctx context.Context, fileName string, content []byte, videoURL string) error {
	if err := d.controller.Submit(ctx, session.Input{
		Kind:            session.InputSubtitles,
		SubtitleName:    fileName,
		SubtitleContent: content,
		VideoURL:        videoURL,
	}); err != nil {
		return err
	}
	go d.notifyOutcome(strings.TrimSpace(fileName))
	return nil
}

// notifyOutcome waits for the in-flight submission and pushes the outcome.
// Notification failures are logged and swallowed.
func (d *Daemon) notifyOutcome(source string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	snap, err := d.controller.Await(ctx)
	if err != nil {
		return
	}

	var notifyErr error
	switch snap.Phase {
	case session.PhaseSucceeded:
		notifyErr = d.notifier.NotifyAnalysisComplete(ctx, source, snap.ClipCount)
	case session.PhaseFailed:
		notifyErr = d.notifier.NotifyAnalysisFailed(ctx, source, snap.ErrorMessage)
	}
	if notifyErr != nil {
		d.logger.Warn("notification delivery failed", logging.Error(notifyErr))
	}
}

// Session returns the current session snapshot without waiting.
func (d *Daemon) Session() session.Snapshot {
	return d.controller.Snapshot()
}

// AwaitSession blocks until the in-flight submission, if any, completes.
func (d *Daemon) AwaitSession(ctx context.Context) (session.Snapshot, error) {
	return d.controller.Await(ctx)
}

// Clips projects the current collection through filter criteria.
func (d *Daemon) Clips(criteria clipfilter.Criteria) ([]clip.Clip, clipfilter.Stats, bool) {
	projected, stats := clipfilter.Project(d.controller.Store().All(), criteria)
	return projected, stats, d.controller.Store().CanDownload()
}

// Clip looks a single clip up by identifier.
func (d *Daemon) Clip(id string) (clip.Clip, error) {
	c, ok := d.controller.Store().FindByID(clip.ID(id))
	if !ok {
		return clip.Clip{}, services.Wrap(services.ErrNotFound, "", "",
			fmt.Sprintf("No clip with ID %s in the current results", id), nil)
	}
	return c, nil
}

// ExportReport renders the text report for one clip.
func (d *Daemon) ExportReport(id string) (ReportResult, error) {
	c, err := d.Clip(id)
	if err != nil {
		return ReportResult{}, err
	}
	return ReportResult{
		Text:          export.Report(c, nil),
		FileName:      export.ReportFileName(c),
		FFmpegCommand: c.FFmpegCommand,
	}, nil
}

// ExportMedia downloads one clip's media into the export directory and
// returns the written path.
func (d *Daemon) ExportMedia(ctx context.Context, id string, quality string) (string, error) {
	c, err := d.Clip(id)
	if err != nil {
		return "", err
	}
	tier, err := export.ParseQuality(quality)
	if err != nil {
		return "", err
	}

	path, err := d.exporter.Download(ctx, c, tier, d.controller.Store().CanDownload())
	if err != nil {
		if notifyErr := d.notifier.NotifyError(ctx, err, "clip export"); notifyErr != nil {
			d.logger.Warn("notification delivery failed", logging.Error(notifyErr))
		}
		return "", err
	}
	if notifyErr := d.notifier.NotifyExportReady(ctx, c.Title, path); notifyErr != nil {
		d.logger.Warn("notification delivery failed", logging.Error(notifyErr))
	}
	return path, nil
}

// Reset returns the session to idle and clears the clip collection.
func (d *Daemon) Reset() {
	d.controller.Reset()
}

// ServiceHealth probes the analysis service.
func (d *Daemon) ServiceHealth(ctx context.Context) error {
	return d.service.Health(ctx)
}

// TestNotification sends a test push and reports the outcome.
func (d *Daemon) TestNotification(ctx context.Context) (bool, string, error) {
	if err := d.notifier.TestNotification(ctx); err != nil {
		return false, err.Error(), nil
	}
	return true, "test notification sent", nil
}
