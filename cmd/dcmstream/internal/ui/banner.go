// Package ui provides the CLI's startup banner and tabular rendering.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/alexeyco/simpletable"
	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
)

// BannerStyle defines the styling for the ASCII banner.
var BannerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#00AFAF")).
	Bold(true)

// SubtleStyle renders secondary, low-emphasis output such as separators.
var SubtleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240"))

// PrintBanner prints the "dcmstream" ASCII art banner to stderr.
func PrintBanner() {
	banner := figure.NewFigure("dcmstream", "banner3", true)
	fmt.Fprintln(os.Stderr, BannerStyle.Render(banner.String()))
	fmt.Fprintln(os.Stderr)
}

// Row is one rendered line of the emitted element stream.
type Row struct {
	Tag   string
	VR    string
	Name  string
	Depth int
	VM    string
	Value string
}

// RenderTable writes rows as a bordered table to w. Name is indented two
// spaces per level of sequence nesting so a reader can see structure at a
// glance without a separate column.
func RenderTable(rows []Row, w io.Writer) {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Tag"},
			{Align: simpletable.AlignCenter, Text: "VR"},
			{Align: simpletable.AlignLeft, Text: "Name"},
			{Align: simpletable.AlignCenter, Text: "VM"},
			{Align: simpletable.AlignLeft, Text: "Value"},
		},
	}

	for _, row := range rows {
		name := row.Name
		if row.Depth > 0 {
			name = indent(row.Depth) + name
		}
		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Text: row.Tag},
			{Text: row.VR},
			{Text: name},
			{Align: simpletable.AlignRight, Text: row.VM},
			{Text: row.Value},
		})
	}

	table.SetStyle(simpletable.StyleDefault)
	fmt.Fprintln(w, table.String())
}

func indent(depth int) string {
	out := make([]byte, depth*2)
	for i := range out {
		out[i] = ' '
	}
	return string(out)
}
