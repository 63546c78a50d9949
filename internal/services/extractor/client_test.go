package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"viralclip/internal/clip"
	"viralclip/internal/services"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithDoer(server.URL, server.Client()), server
}

func TestAnalyzeSuccess(t *testing.T) {
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze" {
			t.Errorf("path = %q, want /api/analyze", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"success": true,
			"clips": [
				{"id": 1, "title": "Hook", "startTime": "0:15", "endTime": "0:45", "duration": "0:30", "viralityScore": 87, "category": "Mindset"},
				{"id": 2, "startTime": "1:00", "endTime": "1:20", "duration": "0:20", "viralityScore": 150}
			],
			"canDownloadClips": true
		}`)
	})

	result, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "YouTube Shorts")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if gotBody["videoUrl"] != "https://youtu.be/dQw4w9WgXcQ" || gotBody["platform"] != "YouTube Shorts" {
		t.Errorf("request body = %v", gotBody)
	}
	if len(result.Clips) != 1 {
		t.Fatalf("clips = %d, want 1 (out-of-range score dropped)", len(result.Clips))
	}
	if len(result.Dropped) != 1 {
		t.Errorf("dropped = %d, want 1", len(result.Dropped))
	}
	if !result.CanDownload {
		t.Error("CanDownload = false, want true")
	}
	got := result.Clips[0]
	if got.ID != "1" || got.ViralityScore != 87 {
		t.Errorf("clip = %+v", got)
	}
	if got.SourceType != clip.SourceYouTube {
		t.Errorf("SourceType = %v, want youtube fallback", got.SourceType)
	}
}

func TestAnalyzeEmptyClipListIsSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "clips": []}`)
	})

	result, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Clips) != 0 {
		t.Errorf("clips = %d, want 0", len(result.Clips))
	}
	if result.CanDownload {
		t.Error("CanDownload = true, want default false")
	}
}

func TestAnalyzeNullClipsIsFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "clips": null}`)
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("err = %v, want service error", err)
	}
}

func TestAnalyzeSuccessFalseSurfacesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": false, "error": "No transcript available for this video"}`)
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("err = %v, want service error", err)
	}
	if msg := services.UserMessage(err); msg != "No transcript available for this video" {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestAnalyzeNonJSONSuccessIsProtocolError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, "<html><body>proxy splash page</body></html>")
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrProtocol) {
		t.Fatalf("err = %v, want protocol error", err)
	}
	if msg := services.UserMessage(err); !strings.Contains(msg, "unexpected response") {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestAnalyzeMalformedJSONIsProtocolError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "clips": [`)
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrProtocol) {
		t.Fatalf("err = %v, want protocol error", err)
	}
}

func TestAnalyzeErrorStatusWithStructuredBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, `{"success": false, "error": "Analysis backend is restarting"}`)
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("err = %v, want service error", err)
	}
	if msg := services.UserMessage(err); msg != "Analysis backend is restarting" {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestAnalyzeErrorStatusWithoutStructuredBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusServiceUnavailable)
		io.WriteString(w, "upstream unavailable")
	})

	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("err = %v, want transport error", err)
	}
}

func TestAnalyzeConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClientWithDoer(url, &http.Client{})
	_, err := client.Analyze(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("err = %v, want transport error", err)
	}
	if msg := services.UserMessage(err); !strings.Contains(msg, "Could not reach") {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestAnalyzeSubtitlesSendsMultipartForm(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/analyze-srt" {
			t.Errorf("path = %q, want /api/analyze-srt", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		file, header, err := r.FormFile("srtFile")
		if err != nil {
			t.Fatalf("srtFile part: %v", err)
		}
		defer file.Close()
		if header.Filename != "talk.srt" {
			t.Errorf("filename = %q", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if !strings.Contains(string(content), "trading is a mind game") {
			t.Errorf("file content = %q", content)
		}
		if got := r.FormValue("videoUrl"); got != "https://youtu.be/dQw4w9WgXcQ" {
			t.Errorf("videoUrl = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"success": true,
			"clips": [{"id": "7", "startTime": "0:05", "endTime": "0:35", "duration": "0:30", "viralityScore": 91}]
		}`)
	})

	result, err := client.AnalyzeSubtitles(context.Background(), SubtitleRequest{
		FileName: "talk.srt",
		Content:  []byte("1\n00:00:05,000 --> 00:00:35,000\ntrading is a mind game\n"),
		VideoURL: "https://youtu.be/dQw4w9WgXcQ",
	})
	if err != nil {
		t.Fatalf("AnalyzeSubtitles: %v", err)
	}
	if len(result.Clips) != 1 {
		t.Fatalf("clips = %d, want 1", len(result.Clips))
	}
	if result.Clips[0].SourceType != clip.SourceSubtitleFile {
		t.Errorf("SourceType = %v, want subtitle fallback", result.Clips[0].SourceType)
	}
}

func TestAnalyzeSubtitlesOmitsEmptyVideoURL(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, ok := r.MultipartForm.Value["videoUrl"]; ok {
			t.Error("videoUrl field present, want omitted")
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"success": true, "clips": []}`)
	})

	if _, err := client.AnalyzeSubtitles(context.Background(), SubtitleRequest{
		FileName: "talk.srt",
		Content:  []byte("1\n00:00:00,000 --> 00:00:02,000\nhello\n"),
	}); err != nil {
		t.Fatalf("AnalyzeSubtitles: %v", err)
	}
}

func TestDownloadClipReturnsMediaBytes(t *testing.T) {
	media := []byte("fake-mp4-bytes")
	var gotBody map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/download-clip" {
			t.Errorf("path = %q, want /api/download-clip", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(media)
	})

	data, err := client.DownloadClip(context.Background(), DownloadRequest{
		VideoURL:  "https://youtu.be/dQw4w9WgXcQ",
		StartTime: "0:15",
		EndTime:   "0:45",
		HookText:  "the market owes you nothing",
		Quality:   "bestvideo[height<=720]+bestaudio/best[height<=720]",
	})
	if err != nil {
		t.Fatalf("DownloadClip: %v", err)
	}
	if string(data) != string(media) {
		t.Errorf("data = %q", data)
	}
	if gotBody["startTime"] != "0:15" || gotBody["endTime"] != "0:45" {
		t.Errorf("request body = %v", gotBody)
	}
	if gotBody["quality"] != "bestvideo[height<=720]+bestaudio/best[height<=720]" {
		t.Errorf("quality = %q", gotBody["quality"])
	}
}

func TestDownloadClipStructuredError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"success": false, "error": "yt-dlp failed: video unavailable"}`)
	})

	_, err := client.DownloadClip(context.Background(), DownloadRequest{})
	if !errors.Is(err, services.ErrService) {
		t.Fatalf("err = %v, want service error", err)
	}
	if msg := services.UserMessage(err); msg != "yt-dlp failed: video unavailable" {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestDownloadClipUnstructuredError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "<html>500</html>")
	})

	_, err := client.DownloadClip(context.Background(), DownloadRequest{})
	if !errors.Is(err, services.ErrProtocol) {
		t.Fatalf("err = %v, want protocol error", err)
	}
}

func TestHealth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			t.Errorf("path = %q, want /api/health", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status": "healthy"}`)
	})
	if err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
}

func TestHealthNon2xx(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	if err := client.Health(context.Background()); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("err = %v, want transport error", err)
	}
}
