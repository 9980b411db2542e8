package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/gemini-cli/internal/tui/theme"
)

func Toolbar(navigatorFocused bool) string {
	if navigatorFocused {
		return "j/k move | enter follow | space fold | tab page | ? help"
	}
	return "g go | b/f back/fwd | r reload | 1-9 links | tab navigator | ? help"
}

// AddressBar renders the current address, truncated to width, followed by
// the response status when there is one.
func AddressBar(address string, status int, width int, th tuitheme.Theme) string {
	if strings.TrimSpace(address) == "" {
		address = "(no page)"
	}
	right := th.StyleStatus(status)
	available := width - 2
	if right != "" {
		available -= visibleLen(right) + 1
	}
	left := th.Title.Render("⟫") + " " + th.Address.Render(truncateRunes(address, max(1, available)))
	if right == "" {
		return left
	}
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func HistoryLabel(canBack, canForward bool) string {
	back, forward := "·", "·"
	if canBack {
		back = "←"
	}
	if canForward {
		forward = "→"
	}
	return back + forward
}

func CompactFooter(state string, links, headings int, history string, numberLinks bool, th tuitheme.Theme) string {
	numbering := "off"
	if numberLinks {
		numbering = "on"
	}
	parts := []string{
		th.MetaLabel.Render("state") + " " + th.MetaValue.Render(state),
		th.MetaLabel.Render("links") + " " + th.MetaValue.Render(fmt.Sprintf("%d", links)),
		th.MetaLabel.Render("headings") + " " + th.MetaValue.Render(fmt.Sprintf("%d", headings)),
		th.MetaLabel.Render("history") + " " + th.MetaValue.Render(history),
		th.MetaLabel.Render("nums") + " " + th.MetaValue.Render(numbering),
	}
	return strings.Join(parts, " • ")
}

func CompactMessage(loading bool, hasWarning bool, status, warning string, th tuitheme.Theme) string {
	state := "idle"
	if loading {
		state = "loading"
	}
	if hasWarning {
		state = "warning"
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch state {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}
