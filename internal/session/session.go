// Package session implements the analysis request lifecycle. A Controller
// owns a single session at a time: submissions are guarded so a second
// submit while one is in flight is rejected rather than queued, and every
// submission adopts a fresh request token so responses from an abandoned
// or reset submission are discarded on arrival instead of overwriting
// newer state.
package session

import "strings"

// Phase is one lifecycle state of an analysis session.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseSubmitting       Phase = "submitting"
	PhaseAwaitingResponse Phase = "awaiting-response"
	PhaseSucceeded        Phase = "succeeded"
	PhaseFailed           Phase = "failed"
)

// InFlight reports whether a submission is active in this phase.
func (p Phase) InFlight() bool {
	return p == PhaseSubmitting || p == PhaseAwaitingResponse
}

// Terminal reports whether the phase is an outcome. Terminal phases persist
// until an explicit reset.
func (p Phase) Terminal() bool {
	return p == PhaseSucceeded || p == PhaseFailed
}

// UIState maps a phase to the status line shown to the user.
func (p Phase) UIState() string {
	switch p {
	case PhaseSubmitting, PhaseAwaitingResponse:
		return "Analyzing"
	case PhaseSucceeded:
		return "Analysis Complete"
	case PhaseFailed:
		return "Error"
	default:
		return "Ready"
	}
}

// InputKind distinguishes the two submission forms.
type InputKind string

const (
	InputURL       InputKind = "url"
	InputSubtitles InputKind = "subtitles"
)

// Input is one analysis submission.
type Input struct {
	Kind     InputKind
	VideoURL string
	Platform string
	// Subtitle submissions carry the file inline; VideoURL is optional for
	// them and enables direct clip downloads when present.
	SubtitleName    string
	SubtitleContent []byte
}

// Progress is one milestone on the way to a terminal outcome. Percentages are
// fixed waypoints for perceived responsiveness, not real backend progress;
// within one session they are non-decreasing and step order is strictly
// increasing before the terminal outcome.
type Progress struct {
	StepIndex int    `json:"stepIndex"`
	Percent   int    `json:"percent"`
	Label     string `json:"label"`
}

func urlMilestones() []Progress {
	return []Progress{
		{StepIndex: 1, Percent: 10, Label: "Connecting to YouTube API..."},
		{StepIndex: 2, Percent: 30, Label: "Extracting transcript..."},
		{StepIndex: 3, Percent: 60, Label: "Analyzing content with AI..."},
		{StepIndex: 4, Percent: 90, Label: "Calculating virality scores..."},
		{StepIndex: 4, Percent: 100, Label: "Analysis complete!"},
	}
}

func subtitleMilestones(withVideoURL bool) []Progress {
	upload := Progress{StepIndex: 1, Percent: 20, Label: "Uploading SRT file..."}
	if withVideoURL {
		upload = Progress{StepIndex: 1, Percent: 25, Label: "Uploading SRT file with video URL..."}
	}
	return []Progress{
		upload,
		{StepIndex: 2, Percent: 40, Label: "Parsing subtitle content..."},
		{StepIndex: 3, Percent: 70, Label: "Analyzing content with AI..."},
		{StepIndex: 4, Percent: 90, Label: "Calculating virality scores..."},
		{StepIndex: 4, Percent: 100, Label: "Analysis complete!"},
	}
}

func milestonesFor(input Input) []Progress {
	if input.Kind == InputSubtitles {
		return subtitleMilestones(strings.TrimSpace(input.VideoURL) != "")
	}
	return urlMilestones()
}
