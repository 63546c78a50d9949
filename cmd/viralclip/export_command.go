package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"viralclip/internal/clipboard"
	"viralclip/internal/config"
	"viralclip/internal/ipc"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export clip reports and media",
	}
	cmd.AddCommand(newExportReportCommand(ctx))
	cmd.AddCommand(newExportMediaCommand(ctx))
	return cmd
}

func newExportReportCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var noCopy bool

	cmd := &cobra.Command{
		Use:   "report <clip-id>",
		Short: "Write a clip's extraction report and copy its ffmpeg command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.ExportReport(args[0])
				if err != nil {
					return err
				}

				dir := outputDir
				if dir == "" {
					dir = "."
				}
				dir, err = config.ExpandPath(dir)
				if err != nil {
					return err
				}
				path := filepath.Join(dir, resp.FileName)
				if err := os.WriteFile(path, []byte(resp.Text), 0o644); err != nil {
					return fmt.Errorf("write report: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Report written to %s\n", path)

				if !noCopy && resp.FFmpegCommand != "" {
					cfg, err := ctx.ensureConfig()
					if err != nil {
						return err
					}
					copier := clipboard.New(cfg.Clipboard.OSC52Fallback)
					if err := copier.Copy(resp.FFmpegCommand); err != nil {
						fmt.Fprintln(out, err.Error())
					} else {
						fmt.Fprintln(out, "FFmpeg command copied to clipboard.")
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory to write the report into (default current directory)")
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Skip copying the ffmpeg command to the clipboard")
	return cmd
}

func newExportMediaCommand(ctx *commandContext) *cobra.Command {
	var quality string

	cmd := &cobra.Command{
		Use:   "media <clip-id>",
		Short: "Download a clip's media through the analysis service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				fmt.Fprintf(cmd.OutOrStdout(), "Downloading %sp clip... This may take a moment.\n", qualityLabel(quality))
				resp, err := client.ExportMedia(args[0], quality)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Clip downloaded to %s\n", resp.Path)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&quality, "quality", "q", "1080", "Download quality: 1080, 720, or 480")
	return cmd
}

func qualityLabel(q string) string {
	if q == "" {
		return "1080"
	}
	return q
}
