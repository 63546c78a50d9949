package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"viralclip/internal/ipc"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <clip-id>",
		Short: "Show full details for one clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ClipShow(args[0])
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp.Clip)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderClipDetail(resp.Clip))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the clip as JSON")
	return cmd
}

func renderClipDetail(c ipc.Clip) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Clip %s: %s\n", c.ID, c.Title)
	fmt.Fprintf(&b, "  Timestamp:  %s - %s (%s)\n", c.StartTime, c.EndTime, c.Duration)
	fmt.Fprintf(&b, "  Score:      %d%%\n", c.ViralityScore)
	fmt.Fprintf(&b, "  Category:   %s\n", c.Category)
	fmt.Fprintf(&b, "  Source:     %s\n", c.SourceType)
	if len(c.Triggers) > 0 {
		fmt.Fprintf(&b, "  Triggers:   %s\n", strings.Join(c.Triggers, ", "))
	}
	if c.VideoURL != "" {
		fmt.Fprintf(&b, "  Video URL:  %s\n", c.VideoURL)
	}
	fmt.Fprintf(&b, "\nHook:\n  %s\n", c.HookText)
	if c.FullText != "" && c.FullText != c.HookText {
		fmt.Fprintf(&b, "\nFull text:\n  %s\n", c.FullText)
	}
	if c.FFmpegCommand != "" {
		fmt.Fprintf(&b, "\nFFmpeg command:\n  %s\n", c.FFmpegCommand)
	}
	return b.String()
}
