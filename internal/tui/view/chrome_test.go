package view

import (
	"regexp"
	"strings"
	"testing"

	tuitheme "github.com/glabrego/gemini-cli/internal/tui/theme"
)

var ansiStrip = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiStrip.ReplaceAllString(s, "")
}

func TestToolbar(t *testing.T) {
	if got := Toolbar(false); !strings.Contains(got, "b/f back/fwd") {
		t.Fatalf("unexpected page toolbar: %q", got)
	}
	if got := Toolbar(true); !strings.Contains(got, "enter follow") {
		t.Fatalf("unexpected navigator toolbar: %q", got)
	}
}

func TestAddressBar(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(AddressBar("gemini://example.org/", 20, 40, th))
	if !strings.HasPrefix(got, "⟫ gemini://example.org/") || !strings.HasSuffix(got, "20") {
		t.Fatalf("unexpected address bar: %q", got)
	}
	if visibleLen(got) != 40 {
		t.Fatalf("expected address bar to fill width 40, got %d", visibleLen(got))
	}

	got = stripANSI(AddressBar("", 0, 40, th))
	if got != "⟫ (no page)" {
		t.Fatalf("unexpected empty address bar: %q", got)
	}

	got = stripANSI(AddressBar("gemini://example.org/a/very/long/path/to/a/page.gmi", 51, 30, th))
	if !strings.Contains(got, "...") || !strings.HasSuffix(got, "51") {
		t.Fatalf("expected truncated address with status, got %q", got)
	}
}

func TestHistoryLabel(t *testing.T) {
	if got := HistoryLabel(true, false); got != "←·" {
		t.Fatalf("unexpected history label: %q", got)
	}
	if got := HistoryLabel(false, true); got != "·→" {
		t.Fatalf("unexpected history label: %q", got)
	}
}

func TestCompactFooter(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(CompactFooter("rendered", 12, 3, "←→", true, th))
	for _, want := range []string{"state rendered", "links 12", "headings 3", "history ←→", "nums on"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in footer, got %q", want, got)
		}
	}
}

func TestCompactMessage(t *testing.T) {
	th := tuitheme.Default()
	if got := stripANSI(CompactMessage(false, false, "", "", th)); !strings.Contains(got, "state: idle | Ready") {
		t.Fatalf("unexpected idle compact message: %q", got)
	}
	if got := stripANSI(CompactMessage(true, false, "", "", th)); !strings.Contains(got, "state: loading") {
		t.Fatalf("unexpected loading compact message: %q", got)
	}
	if got := stripANSI(CompactMessage(false, true, "", "boom", th)); !strings.Contains(got, "state: warning | boom") {
		t.Fatalf("unexpected warning compact message: %q", got)
	}
}
