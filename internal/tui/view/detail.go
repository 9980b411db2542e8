package view

import (
	"strings"

	"github.com/glabrego/gemini-cli/internal/gemtext"
	"github.com/glabrego/gemini-cli/internal/render/page"
)

// PageLines renders doc to contentWidth and indents every line by
// horizontalMargin columns.
func PageLines(doc gemtext.Document, contentWidth, horizontalMargin int, opts page.Options) []string {
	lines := page.Lines(doc, max(1, contentWidth), opts)
	return leftPadLines(lines, horizontalMargin)
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func leftPadLines(lines []string, padding int) []string {
	if padding <= 0 || len(lines) == 0 {
		return lines
	}
	prefix := strings.Repeat(" ", padding)
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == "" {
			continue
		}
		out[i] = prefix + line
	}
	return out
}
