package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"viralclip/internal/config"
	"viralclip/internal/ipc"
)

func newAnalyzeSRTCommand(ctx *commandContext) *cobra.Command {
	var urlFlag string
	var noWait bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze-srt <subtitle-file>",
		Short: "Analyze an SRT subtitle file for viral clip candidates",
		Long: "Analyze an SRT subtitle file for viral clip candidates. " +
			"Passing --url links the subtitles to their source video, enabling direct clip downloads.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read subtitle file: %w", err)
			}

			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.AnalyzeSubtitles(ipc.AnalyzeSubtitlesRequest{
					FileName: filepath.Base(path),
					Content:  content,
					VideoURL: urlFlag,
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

	cmd.Flags().StringVar(&urlFlag, "url", "", "Source video URL for direct clip downloads")
	cmd.Flags().BoolVar(&noWait, "no-wait", false, "Submit and return without waiting for the result")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the final session state as JSON")
	return cmd
}
