package gemtext

// StyleTag names how a display should style a span.
type StyleTag int

const (
	StyleText StyleTag = iota
	StylePreformatted
	StyleLink
	StyleHeading1
	StyleHeading2
	StyleHeading3
	StyleListItem
	StyleQuote
)

// Span is a piece of text with the style the display should give it. Link
// spans carry the ordinal of the link in the document's LinkIndex.
type Span struct {
	Text  string
	Style StyleTag
	Link  int
}

// Spans projects the document into one span per block, in order.
func (d Document) Spans() []Span {
	out := make([]Span, 0, len(d.Blocks))
	link := 0
	for _, b := range d.Blocks {
		span := Span{Text: b.DisplayText(), Style: styleFor(b), Link: -1}
		if b.Kind == KindLink {
			span.Link = link
			link++
		}
		out = append(out, span)
	}
	return out
}

func styleFor(b Block) StyleTag {
	switch b.Kind {
	case KindPreformatted:
		return StylePreformatted
	case KindLink:
		return StyleLink
	case KindHeading:
		switch b.Level {
		case 1:
			return StyleHeading1
		case 2:
			return StyleHeading2
		default:
			return StyleHeading3
		}
	case KindListItem:
		return StyleListItem
	case KindQuote:
		return StyleQuote
	default:
		return StyleText
	}
}
