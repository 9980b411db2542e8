// Package page projects a parsed gemtext document onto styled terminal
// lines of a given width.
package page

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/glabrego/gemini-cli/internal/gemtext"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type Options struct {
	Styles Styles
	// NumberLinks prefixes links with their 1-based ordinal instead of an
	// arrow.
	NumberLinks bool
}

// Lines renders doc at width. Every block produces at least one line and
// preformatted lines are never wrapped.
func Lines(doc gemtext.Document, width int, opts Options) []string {
	st := opts.Styles
	spans := doc.Spans()
	lines := make([]string, 0, len(spans)+len(spans)/2)
	for _, span := range spans {
		var block []string
		switch span.Style {
		case gemtext.StylePreformatted:
			block = []string{st.Preformatted.Render(span.Text)}
		case gemtext.StyleHeading1, gemtext.StyleHeading2, gemtext.StyleHeading3:
			level := int(span.Style-gemtext.StyleHeading1) + 1
			prefix := headingPrefix(st, level)
			block = styleNonBlankLines(
				wrapPrefixedText(span.Text, width, prefix, strings.Repeat(" ", visibleLen(prefix))),
				st.Headings[level-1],
			)
			if len(block) == 0 {
				block = []string{prefix}
			}
		case gemtext.StyleLink:
			marker := "⇒ "
			if opts.NumberLinks {
				marker = fmt.Sprintf("[%d] ", span.Link+1)
			}
			wrapped := wrapPrefixedText(span.Text, width, marker, strings.Repeat(" ", visibleLen(marker)))
			block = make([]string, 0, len(wrapped))
			for i, line := range wrapped {
				head := marker
				if i > 0 {
					head = strings.Repeat(" ", visibleLen(marker))
				}
				block = append(block, st.LinkMarker.Render(head)+st.Link.Render(strings.TrimPrefix(line, head)))
			}
		case gemtext.StyleListItem:
			text := strings.TrimSpace(strings.TrimPrefix(span.Text, "*"))
			block = prefixStyled(wrapPrefixedText(text, width, "• ", "  "), "• ", st.ListMarker, st.Text)
		case gemtext.StyleQuote:
			text := strings.TrimSpace(strings.TrimPrefix(span.Text, ">"))
			block = prefixStyled(wrapPrefixedText(text, width, "│ ", "│ "), "│ ", st.QuoteBar, st.Quote)
			if len(block) == 0 {
				block = []string{st.QuoteBar.Render("│")}
			}
		default:
			block = styleNonBlankLines(wrapText(span.Text, width), st.Text)
		}
		if len(block) == 0 {
			block = []string{""}
		}
		lines = append(lines, block...)
	}
	return lines
}

// prefixStyled restyles the marker at the head of each wrapped line. Lines
// after the first carry blank padding in place of a bullet.
func prefixStyled(lines []string, marker string, markerStyle, textStyle lipgloss.Style) []string {
	out := make([]string, 0, len(lines))
	pad := strings.Repeat(" ", visibleLen(marker))
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, marker):
			out = append(out, markerStyle.Render(marker)+textStyle.Render(strings.TrimPrefix(line, marker)))
		case strings.HasPrefix(line, pad):
			out = append(out, pad+textStyle.Render(strings.TrimPrefix(line, pad)))
		default:
			out = append(out, textStyle.Render(line))
		}
	}
	return out
}

func headingPrefix(st Styles, level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(st.HeadingBars) {
		level = len(st.HeadingBars)
	}
	return st.HeadingBars[level-1].Render("▌") + strings.Repeat(" ", max(1, level-1))
}

func styleNonBlankLines(lines []string, style lipgloss.Style) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = line
			continue
		}
		out[i] = style.Render(line)
	}
	return out
}

func wrapPrefixedText(text string, width int, firstPrefix, restPrefix string) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}
	if width < 1 {
		return []string{firstPrefix + text}
	}
	firstWidth := max(1, width-visibleLen(firstPrefix))
	restWidth := max(1, width-visibleLen(restPrefix))

	wrapped := wrapText(text, firstWidth)
	out := make([]string, 0, len(wrapped))
	out = append(out, firstPrefix+wrapped[0])
	if len(wrapped) > 1 {
		rest := wrapText(strings.Join(wrapped[1:], " "), restWidth)
		for _, line := range rest {
			out = append(out, restPrefix+line)
		}
	}
	return out
}

// wrapText breaks text into lines of at most width runes, splitting words
// longer than a line.
func wrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		lineLen := 0
		for _, word := range words {
			for utf8.RuneCountInString(word) > width {
				if line != "" {
					out = append(out, line)
					line, lineLen = "", 0
				}
				runes := []rune(word)
				out = append(out, string(runes[:width]))
				word = string(runes[width:])
			}

			n := utf8.RuneCountInString(word)
			if line == "" {
				line, lineLen = word, n
				continue
			}
			if lineLen+1+n <= width {
				line += " " + word
				lineLen += 1 + n
				continue
			}
			out = append(out, line)
			line, lineLen = word, n
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSI(s))
}

func stripANSI(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
