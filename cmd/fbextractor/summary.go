package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/pauljones0/fb-page-extractor/internal/extractor"
)

func printSummary(w io.Writer, res *extractor.Result, paths []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(res.PageName)
	t.AppendHeader(table.Row{"Table", "Rows", "Path"})

	counts := []int{len(res.Posts), len(res.Comments)}
	names := []string{"posts", "comments"}
	for i, p := range paths {
		if i >= len(names) {
			break
		}
		t.AppendRow(table.Row{names[i], counts[i], p})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
