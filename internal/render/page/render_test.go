package page

import (
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/glabrego/gemini-cli/internal/gemtext"
)

var stripANSIForTest = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plainLines(t *testing.T, body string, width int, numbered bool) []string {
	t.Helper()
	doc, _, _ := gemtext.Parse(body, nil)
	lines := Lines(doc, width, Options{Styles: PlainStyles(), NumberLinks: numbered})
	for i := range lines {
		lines[i] = stripANSIForTest.ReplaceAllString(lines[i], "")
	}
	return lines
}

func TestLines_LinkMarkers(t *testing.T) {
	body := "=> gemini://a/ First\n=> gemini://b/ Second\n"
	if got := plainLines(t, body, 80, false); !reflect.DeepEqual(got, []string{"⇒ First", "⇒ Second"}) {
		t.Fatalf("unexpected arrow links: %q", got)
	}
	if got := plainLines(t, body, 80, true); !reflect.DeepEqual(got, []string{"[1] First", "[2] Second"}) {
		t.Fatalf("unexpected numbered links: %q", got)
	}
}

func TestLines_PreformattedIsNotWrapped(t *testing.T) {
	long := strings.Repeat("x", 50)
	got := plainLines(t, "```\n"+long+"\n```\n", 10, false)
	if !reflect.DeepEqual(got, []string{long}) {
		t.Fatalf("unexpected preformatted lines: %q", got)
	}
}

func TestLines_HeadingLevelsAndEmptyBlocks(t *testing.T) {
	got := plainLines(t, "# One\n## Two\n### Three\n#\n>\n\n", 40, false)
	want := []string{"▌ One", "▌ Two", "▌  Three", "▌ ", "│", ""}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected lines:\n%q\nwant\n%q", got, want)
	}
}

func TestLines_EveryBlockProducesALine(t *testing.T) {
	body := "text\n\n* \n=> /x\n```\n\n```\n"
	doc, _, _ := gemtext.Parse(body, nil)
	lines := Lines(doc, 20, Options{Styles: DefaultStyles()})
	if len(lines) < len(doc.Blocks) {
		t.Fatalf("expected at least %d lines, got %d", len(doc.Blocks), len(lines))
	}
}

func TestWrapText_SplitsLongWordsByRune(t *testing.T) {
	got := wrapText("ñññññ ab", 2)
	want := []string{"ññ", "ññ", "ñ", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapPrefixedText_HangingIndent(t *testing.T) {
	got := wrapPrefixedText("alpha beta gamma delta", 12, "• ", "  ")
	want := []string{"• alpha beta", "  gamma", "  delta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if wrapPrefixedText("   ", 10, "• ", "  ") != nil {
		t.Fatal("expected nil for blank text")
	}
}
