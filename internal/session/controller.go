package session

import (
	"context"
	"strings"
	"sync"

	"log/slog"

	"github.com/google/uuid"

	"viralclip/internal/clipstore"
	"viralclip/internal/logging"
	"viralclip/internal/services"
	"viralclip/internal/services/extractor"
	"viralclip/internal/urlcheck"
)

// Snapshot is a point-in-time view of the controller for status reporting.
type Snapshot struct {
	Phase        Phase    `json:"phase"`
	UIState      string   `json:"uiState"`
	InputKind    InputKind `json:"inputKind,omitempty"`
	RequestURL   string   `json:"requestUrl,omitempty"`
	SubtitleName string   `json:"subtitleName,omitempty"`
	Progress     Progress `json:"progress"`
	ErrorMessage string   `json:"errorMessage,omitempty"`
	ClipCount    int      `json:"clipCount"`
	CanDownload  bool     `json:"canDownload"`
	Dropped      int      `json:"dropped"`
}

// Controller runs the analysis lifecycle and owns the clip store. All state
// transitions happen under its lock; the HTTP request itself runs in a
// goroutine tagged with the submission's request token.
type Controller struct {
	service extractor.Service
	store   *clipstore.Store
	logger  *slog.Logger

	mu           sync.Mutex
	phase        Phase
	input        Input
	epoch        string
	progress     Progress
	errorMessage string
	dropped      int
	done         chan struct{}
}

// NewController builds an idle controller around the given service client.
func NewController(service extractor.Service, store *clipstore.Store, logger *slog.Logger) *Controller {
	if store == nil {
		store = clipstore.New()
	}
	return &Controller{
		service: service,
		store:   store,
		logger:  logging.NewComponentLogger(logger, "session"),
		phase:   PhaseIdle,
		epoch:   uuid.NewString(),
	}
}

// Store exposes the controller-owned clip collection.
func (c *Controller) Store() *clipstore.Store {
	return c.store
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Phase:        c.phase,
		UIState:      c.phase.UIState(),
		InputKind:    c.input.Kind,
		RequestURL:   c.input.VideoURL,
		SubtitleName: c.input.SubtitleName,
		Progress:     c.progress,
		ErrorMessage: c.errorMessage,
		ClipCount:    c.store.Len(),
		CanDownload:  c.store.CanDownload(),
		Dropped:      c.dropped,
	}
}

// Submit validates input and starts an analysis. It returns once the request
// is in flight; Await blocks until the outcome lands. A submit while another
// is in flight is rejected, never queued.
func (c *Controller) Submit(ctx context.Context, input Input) error {
	if err := validate(input); err != nil {
		return err
	}

	c.mu.Lock()
	if c.phase.InFlight() {
		c.mu.Unlock()
		return services.ErrSessionBusy
	}

	milestones := milestonesFor(input)
	epoch := uuid.NewString()
	c.epoch = epoch
	c.phase = PhaseSubmitting
	c.input = input
	c.progress = milestones[0]
	c.errorMessage = ""
	c.dropped = 0
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	c.logger.Info("analysis submitted",
		logging.String("kind", string(input.Kind)),
		logging.String("url", input.VideoURL),
		logging.String("request", epoch))

	go c.run(ctx, epoch, input, milestones, done)
	return nil
}

func (c *Controller) run(ctx context.Context, epoch string, input Input, milestones []Progress, done chan struct{}) {
	defer close(done)

	// Step through the preparatory milestones, then hold at the analysis
	// step while the request is actually in flight.
	c.advance(epoch, PhaseAwaitingResponse, milestones[1])
	c.advance(epoch, PhaseAwaitingResponse, milestones[2])

	var result *extractor.Result
	var err error
	switch input.Kind {
	case InputSubtitles:
		result, err = c.service.AnalyzeSubtitles(ctx, extractor.SubtitleRequest{
			FileName: input.SubtitleName,
			Content:  input.SubtitleContent,
			VideoURL: input.VideoURL,
		})
	default:
		result, err = c.service.Analyze(ctx, input.VideoURL, input.Platform)
	}

	if err == nil {
		c.advance(epoch, PhaseAwaitingResponse, milestones[3])
	}
	c.finish(epoch, milestones[len(milestones)-1], result, err)
}

// advance applies a progress milestone if the submission is still current.
func (c *Controller) advance(epoch string, phase Phase, p Progress) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		return
	}
	c.phase = phase
	if p.Percent >= c.progress.Percent {
		c.progress = p
	}
}

// finish applies the terminal outcome, discarding it when the submission has
// been superseded by a reset or a newer submit.
func (c *Controller) finish(epoch string, final Progress, result *extractor.Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch != epoch {
		c.logger.Info("discarding stale analysis response",
			logging.String("request", epoch))
		return
	}

	if err != nil {
		c.phase = PhaseFailed
		c.errorMessage = services.UserMessage(err)
		c.logger.Error("analysis failed", logging.Error(err))
		return
	}

	c.store.Replace(result.Clips, result.CanDownload)
	c.phase = PhaseSucceeded
	c.progress = final
	c.dropped = len(result.Dropped)
	for _, dropErr := range result.Dropped {
		c.logger.Warn("dropped malformed clip record", logging.Error(dropErr))
	}
	c.logger.Info("analysis complete",
		logging.Int("clips", len(result.Clips)),
		logging.Bool("can_download", result.CanDownload))
}

// Await blocks until the in-flight submission, if any, reaches a terminal
// phase, then returns the resulting snapshot.
func (c *Controller) Await(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	done := c.done
	inFlight := c.phase.InFlight()
	c.mu.Unlock()

	if inFlight && done != nil {
		select {
		case <-ctx.Done():
			return Snapshot{}, ctx.Err()
		case <-done:
		}
	}
	return c.Snapshot(), nil
}

// Reset returns the controller to idle from any phase, clearing the store,
// progress, and error message. The request token is rotated so an in-flight
// response lands stale.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = uuid.NewString()
	c.phase = PhaseIdle
	c.input = Input{}
	c.progress = Progress{}
	c.errorMessage = ""
	c.dropped = 0
	c.store.Clear()
	c.logger.Info("session reset")
}

func validate(input Input) error {
	switch input.Kind {
	case InputSubtitles:
		if strings.TrimSpace(input.SubtitleName) == "" || len(input.SubtitleContent) == 0 {
			return services.Validation("Please select an SRT file")
		}
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(input.SubtitleName)), ".srt") {
			return services.Validation("Please upload a .srt file")
		}
		if url := strings.TrimSpace(input.VideoURL); url != "" && !urlcheck.IsValid(url) {
			return services.Validation("Invalid YouTube URL")
		}
		return nil
	case InputURL:
		if strings.TrimSpace(input.VideoURL) == "" {
			return services.Validation("Please enter a YouTube URL")
		}
		if !urlcheck.IsValid(strings.TrimSpace(input.VideoURL)) {
			return services.Validation("Please enter a valid YouTube URL")
		}
		return nil
	default:
		return services.Validation("unknown submission kind")
	}
}
