package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viralclip/internal/clipfilter"
	"viralclip/internal/ipc"
)

func newClipsCommand(ctx *commandContext) *cobra.Command {
	var categoryFlag string
	var minScoreFlag int
	var sortFlag string
	var topFlag int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "clips",
		Short: "List clips from the last analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch sortFlag {
			case "", clipfilter.SortByScore, clipfilter.SortByDuration, clipfilter.SortByCategory:
			default:
				return fmt.Errorf("unknown sort key %q (use score, duration, or category)", sortFlag)
			}

			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Clips(ipc.ClipsRequest{
					Category: categoryFlag,
					MinScore: minScoreFlag,
					SortKey:  sortFlag,
				})
				if err != nil {
					return err
				}

				clips := resp.Clips
				if topFlag > 0 && topFlag < len(clips) {
					clips = clips[:topFlag]
				}

				if jsonOut {
					return writeJSON(cmd, struct {
						Clips       []ipc.Clip `json:"clips"`
						Stats       ipc.Stats  `json:"stats"`
						CanDownload bool       `json:"can_download"`
						Total       int        `json:"total"`
					}{clips, resp.Stats, resp.CanDownload, resp.Total})
				}

				out := cmd.OutOrStdout()
				if resp.Total == 0 {
					fmt.Fprintln(out, "No analysis results yet. Run `viralclip analyze <url>` first.")
					return nil
				}
				if len(clips) == 0 {
					fmt.Fprintf(out, "No clips match the current filters (%d in the collection).\n", resp.Total)
					return nil
				}

				fmt.Fprintln(out, renderClipTable(clips))
				fmt.Fprintf(out, "%d of %d clips · Avg score %s · Top category %s · Downloads: %s\n",
					len(clips), resp.Total, resp.Stats.AvgScore, resp.Stats.TopCategory, yesNo(resp.CanDownload))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Only clips in this category (default all)")
	cmd.Flags().IntVar(&minScoreFlag, "min-score", 0, "Only clips at or above this virality score")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "Sort key: score, duration, or category (default score)")
	cmd.Flags().IntVar(&topFlag, "top", 0, "Show only the first N clips after filtering")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit clips as JSON")
	return cmd
}
