package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"viralclip/internal/ipc"
	"viralclip/internal/session"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and session status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, resp)
				}
				fmt.Fprint(cmd.OutOrStdout(), renderStatus(resp))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit status as JSON")
	return cmd
}

func renderStatus(resp *ipc.StatusResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daemon:     running=%s pid=%d\n", yesNo(resp.Running), resp.PID)
	fmt.Fprintf(&b, "Service:    %s\n", resp.ServiceURL)
	fmt.Fprintf(&b, "Socket:     %s\n", resp.SocketPath)
	fmt.Fprintf(&b, "Log file:   %s\n", resp.LogPath)

	snap := resp.Session
	fmt.Fprintf(&b, "Session:    %s\n", snap.UIState)
	switch {
	case snap.Phase.InFlight():
		source := snap.RequestURL
		if source == "" {
			source = snap.SubtitleName
		}
		fmt.Fprintf(&b, "  Analyzing %s\n", source)
		fmt.Fprintf(&b, "  Progress: %d%% - %s\n", snap.Progress.Percent, snap.Progress.Label)
	case snap.Phase == session.PhaseSucceeded:
		fmt.Fprintf(&b, "  Clips: %d (downloads: %s)\n", snap.ClipCount, yesNo(snap.CanDownload))
	case snap.Phase == session.PhaseFailed:
		fmt.Fprintf(&b, "  Error: %s\n", snap.ErrorMessage)
	}
	return b.String()
}
