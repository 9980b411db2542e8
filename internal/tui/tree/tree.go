// Package tree flattens a page's outline and links into the rows of the
// navigator panel.
package tree

import (
	"strings"

	"github.com/glabrego/gemini-cli/internal/gemtext"
)

type RowKind string

const (
	RowSection RowKind = "section"
	RowHeading RowKind = "heading"
	RowLink    RowKind = "link"
)

const (
	SectionOutline = "Outline"
	SectionLinks   = "Links"
)

// Row is one navigator line. Index is the heading or link ordinal within
// the page; it is -1 for section rows.
type Row struct {
	Kind  RowKind
	Label string
	Level int
	Index int
	URL   string
}

type BuildOptions struct {
	HideOutline       bool
	CollapsedSections map[string]bool
}

// BuildRows lists the outline section (headings indented by level) followed
// by the links section. Empty sections are left out.
func BuildRows(outline gemtext.OutlineIndex, links gemtext.LinkIndex, opts BuildOptions) []Row {
	rows := make([]Row, 0, len(outline)+len(links)+2)
	if len(outline) > 0 && !opts.HideOutline {
		rows = append(rows, Row{Kind: RowSection, Label: SectionOutline, Index: -1})
		if !opts.CollapsedSections[SectionOutline] {
			for i, h := range outline {
				rows = append(rows, Row{
					Kind:  RowHeading,
					Label: h.Text,
					Level: h.Level,
					Index: i,
				})
			}
		}
	}
	if len(links) > 0 {
		rows = append(rows, Row{Kind: RowSection, Label: SectionLinks, Index: -1})
		if !opts.CollapsedSections[SectionLinks] {
			for i, l := range links {
				rows = append(rows, Row{
					Kind:  RowLink,
					Label: l.Label,
					Index: i,
					URL:   l.URL,
				})
			}
		}
	}
	return rows
}

// FirstSelectableRow returns the first heading or link row, or 0.
func FirstSelectableRow(rows []Row) int {
	for i, row := range rows {
		if row.Kind != RowSection {
			return i
		}
	}
	return 0
}

// IndentedLabel prefixes heading labels with two spaces per level below the
// first.
func IndentedLabel(row Row) string {
	label := strings.TrimSpace(row.Label)
	if label == "" {
		label = "(untitled)"
	}
	if row.Kind != RowHeading || row.Level <= 1 {
		return label
	}
	return strings.Repeat("  ", row.Level-1) + label
}
