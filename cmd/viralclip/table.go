package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"viralclip/internal/ipc"
)

// renderClipTable renders the fixed clip-listing layout: ID, score, and
// duration right-aligned, category and title left-aligned.
func renderClipTable(clips []ipc.Clip) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "SCORE", "DURATION", "CATEGORY", "TITLE"})
	for _, c := range clips {
		tw.AppendRow(table.Row{c.ID, fmt.Sprintf("%d%%", c.ViralityScore), c.Duration, c.Category, c.Title})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}
