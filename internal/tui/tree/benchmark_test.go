package tree

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glabrego/gemini-cli/internal/gemtext"
)

func BenchmarkBuildRows_LargePage(b *testing.B) {
	var body strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&body, "## Section %03d\n", i)
		fmt.Fprintf(&body, "=> gemini://example.org/%03d.gmi Link %03d\n", i, i)
		body.WriteString("Some paragraph text.\n")
	}
	_, links, outline := gemtext.Parse(body.String(), nil)
	opts := BuildOptions{CollapsedSections: map[string]bool{}}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = BuildRows(outline, links, opts)
	}
}
