package cli

import (
	"fmt"
	"io"

	"github.com/bastiangx/syllabix/pkg/server"
	"github.com/bastiangx/syllabix/pkg/syllabify"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	syllableStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	ambiguousStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// printGraph writes the vertices and edges of g, one edge per line.
func printGraph(w io.Writer, input string, farthest int, g *syllabify.SyllableGraph, lexicon server.Lexicon) {
	vertices, edges := server.DescribeGraph(g, lexicon)

	fmt.Fprintf(w, "%s  %d vertices, %d edges\n", titleStyle.Render(input), len(vertices), len(edges))
	for _, v := range vertices {
		mark := ""
		if g.IsAmbiguousJoint(v.Pos) {
			mark = ambiguousStyle.Render(" ambiguous joint")
		}
		fmt.Fprintf(w, "  @%-3d %s%s\n", v.Pos, dimStyle.Render(v.Type), mark)
	}
	for _, e := range edges {
		flags := e.Type
		if e.Correction {
			flags += ",correction"
		}
		fmt.Fprintf(w, "  [%2d,%2d) %-12s %9.4f  %s\n",
			e.Start, e.End, syllableStyle.Render(e.Text), e.Credibility, dimStyle.Render(flags))
	}
	if farthest < len(input) {
		fmt.Fprintf(w, "  %s %q\n", errorStyle.Render("unparsed:"), input[farthest:])
	}
}
