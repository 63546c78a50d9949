// Package export produces the per-clip deliverables: plain-text extraction
// reports, download file names, and media retrieval through the analysis
// service. Export failures are reported to the caller and never touch
// session or store state.
package export

import (
	"fmt"
	"strings"
	"time"

	"viralclip/internal/clip"
)

// Clock supplies the report timestamp. Injectable for tests.
type Clock func() time.Time

// Report renders the extraction report for one clip. The yt-dlp section is
// included only when the clip carries a source video URL.
func Report(c clip.Clip, now Clock) string {
	if now == nil {
		now = time.Now
	}
	ts := now()

	var b strings.Builder
	fmt.Fprintf(&b, `VIRAL CLIP EXTRACTION REPORT
===========================

Title: %s
Timestamp: %s - %s
Duration: %s
Virality Score: %d%%
Category: %s
Source: %s

HOOK TEXT
---------
"%s"

FULL CONTENT
------------
"%s"

VIRAL TRIGGERS
--------------
%s

FFMPEG COMMAND
--------------
%s

EXTRACTION INSTRUCTIONS
-----------------------
1. Copy the FFmpeg command above
2. Replace "input.mp4" with your video file name
3. Run the command in your terminal
4. The clip will be saved as "clip_%s.mp4"

`,
		c.Title, c.StartTime, c.EndTime, c.Duration, c.ViralityScore,
		c.Category, c.SourceType, c.HookText, c.DisplayText(),
		triggerList(c.Triggers), c.FFmpegCommand, c.ID)

	if c.HasVideoURL() {
		fmt.Fprintf(&b, `YOUTUBE URL
-----------
%s

Alternative method using yt-dlp:
yt-dlp --download-sections "*%s-%s" "%s"

`, c.VideoURL, c.StartTime, c.EndTime, c.VideoURL)
	}

	fmt.Fprintf(&b, "Generated: %s\nReport ID: %d",
		ts.Format("1/2/2006, 3:04:05 PM"), ts.UnixMilli())
	return b.String()
}

func triggerList(triggers []string) string {
	if len(triggers) == 0 {
		return "• None identified"
	}
	lines := make([]string, len(triggers))
	for i, trigger := range triggers {
		lines[i] = "• " + trigger
	}
	return strings.Join(lines, "\n")
}
