package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"viralclip/internal/clip"
	"viralclip/internal/clipstore"
	"viralclip/internal/logging"
	"viralclip/internal/services"
	"viralclip/internal/services/extractor"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

// fakeService scripts extractor responses. A non-nil gate blocks the call
// until the test releases it; returned is closed once the call has returned.
type fakeService struct {
	mu       sync.Mutex
	result   *extractor.Result
	err      error
	gate     chan struct{}
	returned chan struct{}
}

func (f *fakeService) set(result *extractor.Result, err error, gate, returned chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.result = result
	f.err = err
	f.gate = gate
	f.returned = returned
}

func (f *fakeService) respond() (*extractor.Result, error) {
	f.mu.Lock()
	gate, returned := f.gate, f.returned
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if returned != nil {
		defer close(returned)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeService) Analyze(context.Context, string, string) (*extractor.Result, error) {
	return f.respond()
}

func (f *fakeService) AnalyzeSubtitles(context.Context, extractor.SubtitleRequest) (*extractor.Result, error) {
	return f.respond()
}

func (f *fakeService) DownloadClip(context.Context, extractor.DownloadRequest) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeService) Health(context.Context) error { return nil }

func testClips() []clip.Clip {
	return []clip.Clip{
		{ID: "1", Title: "Hook one", StartTime: "0:15", EndTime: "0:45", Duration: "0:30", ViralityScore: 87, Category: "Mindset"},
		{ID: "2", Title: "Hook two", StartTime: "1:00", EndTime: "1:20", Duration: "0:20", ViralityScore: 74, Category: "Psychology"},
	}
}

func newController(service extractor.Service) *Controller {
	return NewController(service, clipstore.New(), logging.NewNop())
}

func TestSubmitRejectsMissingURL(t *testing.T) {
	ctrl := newController(&fakeService{})

	err := ctrl.Submit(context.Background(), Input{Kind: InputURL})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if msg := services.UserMessage(err); msg != "Please enter a YouTube URL" {
		t.Errorf("UserMessage = %q", msg)
	}
	if snap := ctrl.Snapshot(); snap.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle after rejected submit", snap.Phase)
	}
}

func TestSubmitRejectsInvalidURL(t *testing.T) {
	ctrl := newController(&fakeService{})

	err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: "https://example.com/watch?v=dQw4w9WgXcQ"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
	if msg := services.UserMessage(err); msg != "Please enter a valid YouTube URL" {
		t.Errorf("UserMessage = %q", msg)
	}
}

func TestSubmitValidatesSubtitleInput(t *testing.T) {
	ctrl := newController(&fakeService{})

	cases := []struct {
		name  string
		input Input
		want  string
	}{
		{
			name:  "missing file",
			input: Input{Kind: InputSubtitles},
			want:  "Please select an SRT file",
		},
		{
			name:  "wrong extension",
			input: Input{Kind: InputSubtitles, SubtitleName: "talk.txt", SubtitleContent: []byte("x")},
			want:  "Please upload a .srt file",
		},
		{
			name:  "bad optional url",
			input: Input{Kind: InputSubtitles, SubtitleName: "talk.srt", SubtitleContent: []byte("x"), VideoURL: "not-a-url"},
			want:  "Invalid YouTube URL",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ctrl.Submit(context.Background(), tc.input)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if msg := services.UserMessage(err); msg != tc.want {
				t.Errorf("UserMessage = %q, want %q", msg, tc.want)
			}
		})
	}
}

func TestSuccessfulAnalysisPopulatesStore(t *testing.T) {
	ctrl := newController(&fakeService{
		result: &extractor.Result{Clips: testClips(), CanDownload: true},
	})

	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snap, err := ctrl.Await(context.Background())
	if err != nil {
		t.Fatalf("Await: %v", err)
	}

	if snap.Phase != PhaseSucceeded {
		t.Fatalf("phase = %v, want succeeded", snap.Phase)
	}
	if snap.UIState != "Analysis Complete" {
		t.Errorf("UIState = %q", snap.UIState)
	}
	if snap.Progress.Percent != 100 || snap.Progress.Label != "Analysis complete!" {
		t.Errorf("progress = %+v", snap.Progress)
	}
	if ctrl.Store().Len() != 2 || !ctrl.Store().CanDownload() {
		t.Errorf("store: len = %d, canDownload = %v", ctrl.Store().Len(), ctrl.Store().CanDownload())
	}
}

func TestFailedAnalysisSurfacesServerMessage(t *testing.T) {
	ctrl := newController(&fakeService{
		err: services.Remote("extractor", "analyze", "No transcript available for this video"),
	})

	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snap, err := ctrl.Await(context.Background())
	if err != nil {
		t.Fatalf("Await: %v", err)
	}

	if snap.Phase != PhaseFailed {
		t.Fatalf("phase = %v, want failed", snap.Phase)
	}
	if snap.ErrorMessage != "No transcript available for this video" {
		t.Errorf("ErrorMessage = %q", snap.ErrorMessage)
	}
	if snap.UIState != "Error" {
		t.Errorf("UIState = %q", snap.UIState)
	}
	if ctrl.Store().Len() != 0 {
		t.Errorf("store populated on failure")
	}
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	gate := make(chan struct{})
	ctrl := newController(&fakeService{
		result: &extractor.Result{Clips: testClips()},
		gate:   gate,
	})

	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL})
	if !errors.Is(err, services.ErrSessionBusy) {
		t.Fatalf("second Submit err = %v, want session busy", err)
	}

	close(gate)
	snap, err := ctrl.Await(context.Background())
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if snap.Phase != PhaseSucceeded {
		t.Errorf("phase = %v, want succeeded", snap.Phase)
	}
}

func TestResetDiscardsStaleResponse(t *testing.T) {
	gate := make(chan struct{})
	returned := make(chan struct{})
	ctrl := newController(&fakeService{
		result:   &extractor.Result{Clips: testClips(), CanDownload: true},
		gate:     gate,
		returned: returned,
	})

	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	ctrl.Reset()
	if snap := ctrl.Snapshot(); snap.Phase != PhaseIdle || snap.Progress.Percent != 0 {
		t.Fatalf("snapshot after reset = %+v", snap)
	}

	close(gate)
	<-returned
	// Give the outcome goroutine time to (incorrectly) apply the response.
	time.Sleep(50 * time.Millisecond)

	if ctrl.Store().Len() != 0 {
		t.Errorf("stale response repopulated the store")
	}
	if snap := ctrl.Snapshot(); snap.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", snap.Phase)
	}
}

func TestStaleResponseDoesNotClobberNewerResult(t *testing.T) {
	gate := make(chan struct{})
	returned := make(chan struct{})
	stale := &fakeService{
		result:   &extractor.Result{Clips: testClips()},
		gate:     gate,
		returned: returned,
	}
	ctrl := newController(stale)

	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	ctrl.Reset()

	// Second submission completes before the first one's response arrives.
	fresh := []clip.Clip{{ID: "9", Title: "Fresh", StartTime: "2:00", EndTime: "2:30", Duration: "0:30", ViralityScore: 95}}
	stale.set(&extractor.Result{Clips: fresh, CanDownload: true}, nil, nil, nil)
	if err := ctrl.Submit(context.Background(), Input{Kind: InputURL, VideoURL: validURL}); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if _, err := ctrl.Await(context.Background()); err != nil {
		t.Fatalf("Await: %v", err)
	}

	stale.set(&extractor.Result{Clips: testClips()}, nil, nil, returned)
	close(gate)
	<-returned
	time.Sleep(50 * time.Millisecond)

	all := ctrl.Store().All()
	if len(all) != 1 || all[0].ID != "9" {
		t.Fatalf("store = %+v, want the fresh result only", all)
	}
	if snap := ctrl.Snapshot(); snap.Phase != PhaseSucceeded {
		t.Errorf("phase = %v, want succeeded", snap.Phase)
	}
}

func TestProgressMilestonesAreMonotonic(t *testing.T) {
	cases := []struct {
		name  string
		steps []Progress
	}{
		{"url", urlMilestones()},
		{"subtitles", subtitleMilestones(false)},
		{"subtitles with url", subtitleMilestones(true)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for i := 1; i < len(tc.steps); i++ {
				if tc.steps[i].Percent < tc.steps[i-1].Percent {
					t.Errorf("percent decreases at step %d: %+v", i, tc.steps)
				}
				if tc.steps[i].StepIndex < tc.steps[i-1].StepIndex {
					t.Errorf("step index decreases at step %d: %+v", i, tc.steps)
				}
			}
			if last := tc.steps[len(tc.steps)-1]; last.Percent != 100 {
				t.Errorf("final percent = %d, want 100", last.Percent)
			}
		})
	}
}

func TestAwaitWithoutSubmissionReturnsImmediately(t *testing.T) {
	ctrl := newController(&fakeService{})
	snap, err := ctrl.Await(context.Background())
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if snap.Phase != PhaseIdle || snap.UIState != "Ready" {
		t.Errorf("snapshot = %+v", snap)
	}
}
