package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	tuitheme "github.com/glabrego/gemini-cli/internal/tui/theme"
	tuitree "github.com/glabrego/gemini-cli/internal/tui/tree"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type RowLineParams struct {
	Row         tuitree.Row
	ShowNumbers bool
	Active      bool
	Width       int
}

// RenderRowLine renders a heading or link row of the navigator. Links show
// their host on the right when it fits.
func RenderRowLine(p RowLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	prefix := fmt.Sprintf("  %s ", cursorMarker)
	if p.Row.Kind == tuitree.RowLink && p.ShowNumbers {
		prefix = fmt.Sprintf("  %s%2d. ", cursorMarker, p.Row.Index+1)
	}

	right := ""
	if p.Row.Kind == tuitree.RowLink {
		right = LinkHostLabel(p.Row.URL)
	}
	available := p.Width - visibleLen(prefix)
	if right != "" {
		available -= visibleLen(right) + 1
	}
	if available < 1 {
		available = 1
	}
	label := truncateRunes(tuitree.IndentedLabel(p.Row), available)
	if right == "" {
		return th.RenderActiveLine(p.Active, prefix+label)
	}
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+label+strings.Repeat(" ", gap)+th.MetaLabel.Render(right))
}

func RenderSectionLine(label string, count, width int, active, collapsed bool, th tuitheme.Theme) string {
	icon := "▾"
	if collapsed {
		icon = "▸"
	}
	left := th.Section.Render(fmt.Sprintf("%s %s", icon, label))
	if count <= 0 {
		return th.RenderActiveLine(active, left)
	}
	right := th.MetaValue.Render(fmt.Sprintf("%d", count))
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(active, left+strings.Repeat(" ", gap)+right)
}

// LinkHostLabel names where a link leads: the host for absolute links, or
// the scheme for links that leave Gemini without one.
func LinkHostLabel(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		if s, _, found := strings.Cut(raw, ":"); found && s != "" && !strings.ContainsAny(s, "/?#") {
			return s
		}
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	if scheme == "gemini" {
		return host
	}
	return scheme + " " + host
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
