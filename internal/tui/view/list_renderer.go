package view

import (
	"strings"

	tuitree "github.com/glabrego/gemini-cli/internal/tui/tree"
)

type NavigatorRenderInput struct {
	Rows              []tuitree.Row
	Start             int
	End               int
	Cursor            int
	SectionCounts     map[string]int
	CollapsedSections map[string]bool

	RenderSectionLine func(label string, count int, active, collapsed bool) string
	RenderRowLine     func(row tuitree.Row, active bool) string
}

func RenderNavigatorBody(in NavigatorRenderInput) string {
	if len(in.Rows) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	end := min(in.End, len(in.Rows))
	var b strings.Builder
	for i := in.Start; i < end; i++ {
		row := in.Rows[i]
		switch row.Kind {
		case tuitree.RowSection:
			b.WriteString(in.RenderSectionLine(row.Label, in.SectionCounts[row.Label], i == in.Cursor, in.CollapsedSections[row.Label]))
		default:
			b.WriteString(in.RenderRowLine(row, i == in.Cursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}
