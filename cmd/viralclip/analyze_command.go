package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"viralclip/internal/ipc"
	"viralclip/internal/platform"
	"viralclip/internal/session"
)

const sessionPollInterval = 200 * time.Millisecond

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var platformFlag string
	var noWait bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze <youtube-url>",
		Short: "Analyze a YouTube video for viral clip candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if platformFlag != "" {
				if _, err := platform.Get(platformFlag); err != nil {
					return err
				}
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Analyze(ipc.AnalyzeRequest{
					VideoURL: args[0],
					Platform: platformFlag,
				}); err != nil {
					return err
				}
				if noWait {
					fmt.Fprintln(cmd.OutOrStdout(), "Analysis started. Track it with `viralclip status`.")
					return nil
				}
				return reportOutcome(cmd, client, jsonOut)
			})
		},
	}

	cmd.Flags().StringVar(&platformFlag, "platform", "", "Target platform profile (YouTube Shorts, Instagram Reels, TikTok)")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Submit and return without waiting for the result")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the final session state as JSON")
	return cmd
}

// followSession polls the daemon until the submission reaches a terminal
// phase, echoing each progress milestone once.
func followSession(cmd *cobra.Command, client *ipc.Client) (ipc.SessionSnapshot, error) {
	lastLabel := ""
	for {
		resp, err := client.Session()
		if err != nil {
			return ipc.SessionSnapshot{}, err
		}
		snap := resp.Session
		if label := snap.Progress.Label; label != "" && label != lastLabel {
			fmt.Fprintf(cmd.OutOrStdout(), "[%3d%%] %s\n", snap.Progress.Percent, label)
			lastLabel = label
		}
		if snap.Phase.Terminal() || snap.Phase == session.PhaseIdle {
			return snap, nil
		}
		time.Sleep(sessionPollInterval)
	}
}

func reportOutcome(cmd *cobra.Command, client *ipc.Client, jsonOut bool) error {
	snap, err := followSession(cmd, client)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd, snap)
	}

	out := cmd.OutOrStdout()
	switch snap.Phase {
	case session.PhaseSucceeded:
		clips, err := client.Clips(ipc.ClipsRequest{})
		if err != nil {
			return err
		}
		noun := "clips"
		if snap.ClipCount == 1 {
			noun = "clip"
		}
		fmt.Fprintf(out, "\nFound %d viral %s (avg score %s, top category %s).\n",
			snap.ClipCount, noun, clips.Stats.AvgScore, clips.Stats.TopCategory)
		if snap.Dropped > 0 {
			fmt.Fprintf(out, "Skipped %d malformed records from the service.\n", snap.Dropped)
		}
		fmt.Fprintln(out, "Run `viralclip clips` to inspect them.")
		if clips.CanDownload {
			fmt.Fprintln(out, "Direct clip downloads are available via `viralclip export media <id>`.")
		}
		return nil
	case session.PhaseFailed:
		return fmt.Errorf("analysis failed: %s", snap.ErrorMessage)
	default:
		return fmt.Errorf("analysis was reset before completing")
	}
}
