// Package gemtext parses text/gemini bodies into addressable blocks and the
// link and outline indices derived from them.
package gemtext

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// EstimatedWrapWidth approximates the display width used to estimate how many
// rows a block occupies once wrapped.
const EstimatedWrapWidth = 120

const (
	fenceMarker = "```"
	linkMarker  = "=>"
)

type BlockKind int

const (
	KindText BlockKind = iota
	KindPreformatted
	KindLink
	KindHeading
	KindListItem
	KindQuote
)

func (k BlockKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPreformatted:
		return "preformatted"
	case KindLink:
		return "link"
	case KindHeading:
		return "heading"
	case KindListItem:
		return "list-item"
	case KindQuote:
		return "quote"
	default:
		return "unknown"
	}
}

// Block is one classified line. Text holds the heading text, the link label,
// the verbatim preformatted line (terminator included) or the whole line for
// every other kind. URL is only set for links and Level only for headings.
type Block struct {
	Kind     BlockKind
	Text     string
	URL      string
	Level    int
	Position int
}

// DisplayText is the text a display shows for the block, without markers or
// line terminators.
func (b Block) DisplayText() string {
	if b.Kind == KindPreformatted {
		return strings.TrimRight(b.Text, "\r\n")
	}
	return b.Text
}

// Rows estimates how many display rows the block occupies.
func (b Block) Rows() int {
	return 1 + utf8.RuneCountInString(b.DisplayText())/EstimatedWrapWidth
}

type Document struct {
	Base   *url.URL
	Blocks []Block
	Total  int
}

type Link struct {
	URL   string
	Label string
}

// LinkIndex maps selection ordinals to links, in encounter order.
type LinkIndex []Link

func (l LinkIndex) At(i int) (Link, bool) {
	if i < 0 || i >= len(l) {
		return Link{}, false
	}
	return l[i], true
}

func (l LinkIndex) Labels() []string {
	out := make([]string, len(l))
	for i, link := range l {
		out[i] = link.Label
	}
	return out
}

type Heading struct {
	Text     string
	Level    int
	Fraction float64
}

// OutlineIndex maps selection ordinals to headings and their relative scroll
// position, in encounter order.
type OutlineIndex []Heading

func (o OutlineIndex) At(i int) (Heading, bool) {
	if i < 0 || i >= len(o) {
		return Heading{}, false
	}
	return o[i], true
}

func (o OutlineIndex) Labels() []string {
	out := make([]string, len(o))
	for i, h := range o {
		out[i] = h.Text
	}
	return out
}

// Parse classifies body line by line. Links are resolved against base.
func Parse(body string, base *url.URL) (Document, LinkIndex, OutlineIndex) {
	doc := Document{Base: base}
	var links LinkIndex
	var headingPositions []int
	var outline OutlineIndex

	inPreformatted := false
	position := 0
	emit := func(b Block) {
		b.Position = position
		doc.Blocks = append(doc.Blocks, b)
		position += b.Rows()
	}
	heading := func(level int, text string) {
		text = strings.TrimSpace(text)
		headingPositions = append(headingPositions, position)
		outline = append(outline, Heading{Text: text, Level: level})
		emit(Block{Kind: KindHeading, Text: text, Level: level})
	}

	for _, raw := range splitLines(body) {
		line := strings.TrimRight(raw, "\r\n")
		if strings.HasPrefix(line, fenceMarker) {
			inPreformatted = !inPreformatted
			continue
		}
		if inPreformatted {
			emit(Block{Kind: KindPreformatted, Text: raw})
			continue
		}

		switch {
		case strings.HasPrefix(line, linkMarker):
			link := parseLink(line[len(linkMarker):], base)
			links = append(links, link)
			emit(Block{Kind: KindLink, Text: link.Label, URL: link.URL})
		case strings.HasPrefix(line, "###"):
			heading(3, line[3:])
		case strings.HasPrefix(line, "##"):
			heading(2, line[2:])
		case strings.HasPrefix(line, "#"):
			heading(1, line[1:])
		case strings.HasPrefix(line, "*"):
			emit(Block{Kind: KindListItem, Text: line})
		case strings.HasPrefix(line, ">"):
			emit(Block{Kind: KindQuote, Text: line})
		default:
			emit(Block{Kind: KindText, Text: line})
		}
	}

	doc.Total = position
	if doc.Total > 0 {
		for i := range outline {
			outline[i].Fraction = float64(headingPositions[i]) / float64(doc.Total)
		}
	}
	return doc, links, outline
}

func parseLink(rest string, base *url.URL) Link {
	rest = strings.TrimSpace(rest)
	target, label := rest, ""
	if i := strings.IndexFunc(rest, unicode.IsSpace); i >= 0 {
		target = rest[:i]
		label = strings.TrimSpace(rest[i:])
	}

	resolved := target
	switch {
	case base != nil:
		if u, err := base.Parse(target); err == nil {
			resolved = u.String()
		}
	case target != "":
		if u, err := url.Parse(target); err == nil {
			resolved = u.String()
		}
	}
	if label == "" {
		label = resolved
	}
	return Link{URL: resolved, Label: label}
}

// splitLines splits body into lines keeping their terminators. A final line
// without a terminator is still a line; a trailing terminator does not start
// a new one.
func splitLines(body string) []string {
	if body == "" {
		return nil
	}
	lines := strings.SplitAfter(body, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
