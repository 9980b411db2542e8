package gemtext

import (
	"net/url"
	"testing"
)

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Title\n=> /x Label\n",
		"```\n=> not a link\n```\n",
		"``` unterminated\n# x\n",
		"=>\n=> \t \n###\n##\n#\n*\n>\n",
		"\r\n\r\n\r",
		"=> http://[::1 broken\n",
		"\xff\xfe invalid utf8\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	base, _ := url.Parse("gemini://example.org/dir/page.gmi")

	f.Fuzz(func(t *testing.T, body string) {
		if len(body) > 20_000 {
			body = body[:20_000]
		}
		doc, links, outline := Parse(body, base)

		linkBlocks, headingBlocks, prev := 0, 0, -1
		for _, b := range doc.Blocks {
			if b.Position <= prev {
				t.Fatalf("positions must strictly increase: %d after %d", b.Position, prev)
			}
			prev = b.Position
			switch b.Kind {
			case KindLink:
				linkBlocks++
			case KindHeading:
				headingBlocks++
			}
		}
		if linkBlocks != len(links) || headingBlocks != len(outline) {
			t.Fatalf("index sizes diverge from blocks: links %d/%d headings %d/%d", len(links), linkBlocks, len(outline), headingBlocks)
		}
		for _, h := range outline {
			if h.Fraction < 0 || h.Fraction >= 1 {
				t.Fatalf("fraction out of range: %v", h.Fraction)
			}
		}
	})
}

func BenchmarkParse(b *testing.B) {
	body := "# Capsule\n\n## Posts\n=> /2026/01.gmi First post\n=> /2026/02.gmi Second post\n* one\n* two\n> quoted\n```\npre\n```\nClosing paragraph of ordinary text.\n"
	base, _ := url.Parse("gemini://example.org/")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _, _ = Parse(body, base)
	}
}
