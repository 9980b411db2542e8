package page

import "github.com/charmbracelet/lipgloss"

var (
	cpMauve    = lipgloss.Color("#cba6f7")
	cpPeach    = lipgloss.Color("#fab387")
	cpTeal     = lipgloss.Color("#94e2d5")
	cpBlue     = lipgloss.Color("#89b4fa")
	cpLavender = lipgloss.Color("#b4befe")
	cpText     = lipgloss.Color("#cdd6f4")
	cpSubtext0 = lipgloss.Color("#a6adc8")
	cpOverlay1 = lipgloss.Color("#7f849c")
)

// Styles is the style configuration for Lines. Callers build one and pass it
// in; nothing here is global state.
type Styles struct {
	Text         lipgloss.Style
	Preformatted lipgloss.Style
	Link         lipgloss.Style
	LinkMarker   lipgloss.Style
	Headings     [3]lipgloss.Style
	HeadingBars  [3]lipgloss.Style
	ListMarker   lipgloss.Style
	Quote        lipgloss.Style
	QuoteBar     lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Text:         lipgloss.NewStyle().Foreground(cpText),
		Preformatted: lipgloss.NewStyle().Foreground(cpPeach),
		Link:         lipgloss.NewStyle().Foreground(cpBlue).Underline(true),
		LinkMarker:   lipgloss.NewStyle().Foreground(cpBlue).Faint(true),
		Headings: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(cpLavender),
			lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
			lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		},
		HeadingBars: [3]lipgloss.Style{
			lipgloss.NewStyle().Bold(true).Foreground(cpBlue),
			lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
			lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		},
		ListMarker: lipgloss.NewStyle().Foreground(cpMauve),
		Quote:      lipgloss.NewStyle().Italic(true).Foreground(cpSubtext0),
		QuoteBar:   lipgloss.NewStyle().Foreground(cpOverlay1),
	}
}

// PlainStyles renders every span unstyled.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Text:         plain,
		Preformatted: plain,
		Link:         plain,
		LinkMarker:   plain,
		Headings:     [3]lipgloss.Style{plain, plain, plain},
		HeadingBars:  [3]lipgloss.Style{plain, plain, plain},
		ListMarker:   plain,
		Quote:        plain,
		QuoteBar:     plain,
	}
}
