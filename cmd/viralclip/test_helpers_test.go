package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"viralclip/internal/clip"
	"viralclip/internal/config"
	"viralclip/internal/daemon"
	"viralclip/internal/ipc"
	"viralclip/internal/logging"
	"viralclip/internal/services/extractor"
	"viralclip/internal/testsupport"
)

type stubService struct {
	result   *extractor.Result
	err      error
	media    []byte
	mediaErr error
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

func (s *stubService) Health(context.Context) error { return nil }

func testClips() []clip.Clip {
	return []clip.Clip{
		{ID: "1", Title: "First", HookText: "hook one", StartTime: "0:15", EndTime: "0:45", Duration: "0:30", ViralityScore: 87, Category: "Mindset", VideoURL: "https://youtu.be/dQw4w9WgXcQ", SourceType: clip.SourceYouTube},
		{ID: "2", Title: "Second", HookText: "hook two", StartTime: "1:00", EndTime: "1:20", Duration: "0:20", ViralityScore: 74, Category: "Psychology", SourceType: clip.SourceYouTube},
	}
}

type cliTestEnv struct {
	cfg        *config.Config
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
}

func setupCLITestEnv(t *testing.T, svc extractor.Service) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	logger := logging.NewNop()

	configPath := filepath.Join(cfg.Paths.LogDir, "config.toml")
	writeTestConfig(t, configPath, cfg)

	d, err := daemon.New(cfg, svc, nil, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if err := d.Start(ctx); err != nil {
		t.Fatalf("daemon.Start: %v", err)
	}

	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Close()
	})

	time.Sleep(50 * time.Millisecond)

	return &cliTestEnv{
		cfg:        cfg,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
	}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", env.socketPath, "--config", env.configPath}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(
		"[service]\nbase_url = %q\n\n[paths]\nlog_dir = %q\nexport_dir = %q\n\n[clipboard]\nosc52_fallback = false\n",
		cfg.Service.BaseURL,
		cfg.Paths.LogDir,
		cfg.Paths.ExportDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
