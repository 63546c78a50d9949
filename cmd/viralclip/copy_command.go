package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viralclip/internal/clipboard"
	"viralclip/internal/ipc"
)

func newCopyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "copy <clip-id>",
		Short: "Copy a clip's ffmpeg extraction command to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ClipShow(args[0])
				if err != nil {
					return err
				}
				if resp.Clip.FFmpegCommand == "" {
					return fmt.Errorf("clip %s has no ffmpeg command", args[0])
				}

				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				copier := clipboard.New(cfg.Clipboard.OSC52Fallback)
				if err := copier.Copy(resp.Clip.FFmpegCommand); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "FFmpeg command copied to clipboard.")
				return nil
			})
		},
	}
}
