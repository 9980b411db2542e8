package theme

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/gemini-cli/internal/gemini"
	"github.com/glabrego/gemini-cli/internal/render/page"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	Address    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	StatusOK       lipgloss.Style
	StatusInput    lipgloss.Style
	StatusRedirect lipgloss.Style
	StatusFailure  lipgloss.Style
	StatusUnknown  lipgloss.Style

	Page page.Styles
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpSky := lipgloss.Color("#89dceb")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		Address:    lipgloss.NewStyle().Foreground(cpSky),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),

		StatusOK:       lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		StatusInput:    lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		StatusRedirect: lipgloss.NewStyle().Bold(true).Foreground(cpLavender),
		StatusFailure:  lipgloss.NewStyle().Bold(true).Foreground(cpRed),
		StatusUnknown:  lipgloss.NewStyle().Bold(true).Foreground(cpOverlay1),

		Page: page.DefaultStyles(),
	}
}

// StyleStatus renders a status code coloured by its class. Zero means the
// page did not come from a response and renders as nothing.
func (t Theme) StyleStatus(status int) string {
	if status == 0 {
		return ""
	}
	code := strconv.Itoa(status)
	switch gemini.Classify(status) {
	case gemini.StatusSuccess:
		return t.StatusOK.Render(code)
	case gemini.StatusInput:
		return t.StatusInput.Render(code)
	case gemini.StatusRedirect:
		return t.StatusRedirect.Render(code)
	case gemini.StatusTemporaryFailure, gemini.StatusPermanentFailure, gemini.StatusCertRequired:
		return t.StatusFailure.Render(code)
	default:
		return t.StatusUnknown.Render(code)
	}
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
