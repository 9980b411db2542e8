package view

import (
	"strings"
	"testing"

	"github.com/glabrego/gemini-cli/internal/gemtext"
	"github.com/glabrego/gemini-cli/internal/render/page"
)

func TestPageLines_UsesMargin(t *testing.T) {
	doc, _, _ := gemtext.Parse("# Title\n\n=> gemini://example.org/ Example\n", nil)
	lines := PageLines(doc, 40, 2, page.Options{Styles: page.PlainStyles(), NumberLinks: true})
	want := []string{"  ▌ Title", "", "  [1] Example"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected page lines:\n%q", lines)
	}
}

func TestDetailMaxTop(t *testing.T) {
	if got := DetailMaxTop(10, 4); got != 6 {
		t.Fatalf("expected 6, got %d", got)
	}
	if got := DetailMaxTop(3, 10); got != 0 {
		t.Fatalf("expected 0 for short page, got %d", got)
	}
}

func TestRenderDetailLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	if got := RenderDetailLines(lines, 1, 2); got != "b\nc\n" {
		t.Fatalf("unexpected window: %q", got)
	}
	if got := RenderDetailLines(lines, 10, 2); got != "d\n" {
		t.Fatalf("expected top clamped to last line, got %q", got)
	}
	if got := RenderDetailLines(nil, 0, 2); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
