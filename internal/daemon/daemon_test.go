package daemon_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"viralclip/internal/clip"
	"viralclip/internal/clipfilter"
	"viralclip/internal/config"
	"viralclip/internal/daemon"
	"viralclip/internal/logging"
	"viralclip/internal/services"
	"viralclip/internal/services/extractor"
	"viralclip/internal/session"
)

type stubService struct {
	result   *extractor.Result
	err      error
	media    []byte
	mediaErr error
	healthy  bool
}

func (s *stubService) Analyze(context.Context, string, string) (*extractor.Result, error) {
	return s.result, s.err
}

func (s *stubService) AnalyzeSubtitles(context.Context, extractor.SubtitleRequest) (*extractor.Result, error) {
	return s.result, s.err
}

func (s *stubService) DownloadClip(context.Context, extractor.DownloadRequest) ([]byte, error) {
	return s.media, s.mediaErr
}

func (s *stubService) Health(context.Context) error {
	if s.healthy {
		return nil
	}
	return services.Wrap(services.ErrTransport, "extractor", "health", "", errors.New("connection refused"))
}

type noopNotifier struct{}

func (noopNotifier) NotifyAnalysisComplete(context.Context, string, int) error  { return nil }
func (noopNotifier) NotifyAnalysisFailed(context.Context, string, string) error { return nil }
func (noopNotifier) NotifyExportReady(context.Context, string, string) error    { return nil }
func (noopNotifier) NotifyError(context.Context, error, string) error           { return nil }
func (noopNotifier) TestNotification(context.Context) error                     { return nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.ExportDir = filepath.Join(base, "exports")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}

func testClips() []clip.Clip {
	return []clip.Clip{
		{ID: "1", Title: "First", HookText: "hook one", StartTime: "0:15", EndTime: "0:45", Duration: "0:30", ViralityScore: 87, Category: "Mindset", VideoURL: "https://youtu.be/dQw4w9WgXcQ", SourceType: clip.SourceYouTube},
		{ID: "2", Title: "Second", HookText: "hook two", StartTime: "1:00", EndTime: "1:20", Duration: "0:20", ViralityScore: 74, Category: "Psychology", SourceType: clip.SourceYouTube},
	}
}

func newDaemon(t *testing.T, svc *stubService) *daemon.Daemon {
	t.Helper()
	d, err := daemon.New(testConfig(t), svc, noopNotifier{}, logging.NewNop())
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestDaemonStartStop(t *testing.T) {
	d := newDaemon(t, &stubService{healthy: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// StartedAt is fixed at construction so Status can be served before
	// Start completes without racing it.
	if d.Status().StartedAt.IsZero() {
		t.Fatal("expected StartedAt to be set before Start")
	}

	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	status := d.Status()
	if !status.Running {
		t.Fatal("expected daemon to report running")
	}
	if status.Session.Phase != session.PhaseIdle {
		t.Fatalf("session phase = %v, want idle at startup", status.Session.Phase)
	}

	// Second start should fail
	if err := d.Start(ctx); err == nil {
		t.Fatal("expected second start to fail")
	}

	d.Stop()
	if d.Status().Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestAnalyzeLifecycle(t *testing.T) {
	svc := &stubService{result: &extractor.Result{Clips: testClips(), CanDownload: true}, healthy: true}
	d := newDaemon(t, svc)

	if err := d.Analyze(context.Background(), validURL, ""); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	snap, err := d.AwaitSession(context.Background())
	if err != nil {
		t.Fatalf("AwaitSession: %v", err)
	}
	if snap.Phase != session.PhaseSucceeded {
		t.Fatalf("phase = %v, want succeeded", snap.Phase)
	}

	clips, stats, canDownload := d.Clips(clipfilter.DefaultCriteria())
	if len(clips) != 2 {
		t.Fatalf("clips = %d, want 2", len(clips))
	}
	if !canDownload {
		t.Error("canDownload = false, want true")
	}
	if stats.Count != 2 || stats.AvgScore != "80.5" {
		t.Errorf("stats = %+v", stats)
	}

	d.Reset()
	if clips, _, _ := d.Clips(clipfilter.DefaultCriteria()); len(clips) != 0 {
		t.Errorf("clips after reset = %d, want 0", len(clips))
	}
	if snap := d.Session(); snap.Phase != session.PhaseIdle {
		t.Errorf("phase after reset = %v, want idle", snap.Phase)
	}
}

func TestClipLookup(t *testing.T) {
	svc := &stubService{result: &extractor.Result{Clips: testClips()}}
	d := newDaemon(t, svc)

	if err := d.Analyze(context.Background(), validURL, ""); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := d.AwaitSession(context.Background()); err != nil {
		t.Fatalf("AwaitSession: %v", err)
	}

	c, err := d.Clip("2")
	if err != nil {
		t.Fatalf("Clip: %v", err)
	}
	if c.Title != "Second" {
		t.Errorf("clip = %+v", c)
	}

	if _, err := d.Clip("99"); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("missing clip err = %v, want not found", err)
	}
}

func TestExportReport(t *testing.T) {
	svc := &stubService{result: &extractor.Result{Clips: testClips()}}
	d := newDaemon(t, svc)

	if err := d.Analyze(context.Background(), validURL, ""); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := d.AwaitSession(context.Background()); err != nil {
		t.Fatalf("AwaitSession: %v", err)
	}

	report, err := d.ExportReport("1")
	if err != nil {
		t.Fatalf("ExportReport: %v", err)
	}
	if report.FileName != "viral-clip-1-youtube.txt" {
		t.Errorf("FileName = %q", report.FileName)
	}
	if !strings.Contains(report.Text, "VIRAL CLIP EXTRACTION REPORT") {
		t.Error("report text missing header")
	}
}

func TestExportMedia(t *testing.T) {
	svc := &stubService{
		result: &extractor.Result{Clips: testClips(), CanDownload: true},
		media:  []byte("fake-mp4-bytes"),
	}
	d := newDaemon(t, svc)

	if err := d.Analyze(context.Background(), validURL, ""); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if _, err := d.AwaitSession(context.Background()); err != nil {
		t.Fatalf("AwaitSession: %v", err)
	}

	path, err := d.ExportMedia(context.Background(), "1", "720")
	if err != nil {
		t.Fatalf("ExportMedia: %v", err)
	}
	if filepath.Base(path) != "hook_one_720p_clip_1.mp4" {
		t.Errorf("path = %q", path)
	}

	// Clip 2 carries no video URL.
	if _, err := d.ExportMedia(context.Background(), "2", "720"); !errors.Is(err, services.ErrExport) {
		t.Errorf("export without url err = %v, want export error", err)
	}
}

func TestServiceHealth(t *testing.T) {
	d := newDaemon(t, &stubService{healthy: false})
	if err := d.ServiceHealth(context.Background()); !errors.Is(err, services.ErrTransport) {
		t.Errorf("health err = %v, want transport error", err)
	}
}
