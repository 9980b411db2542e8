package state

import (
	"testing"

	tuitree "github.com/glabrego/gemini-cli/internal/tui/tree"
)

func TestClampCursor(t *testing.T) {
	if got := ClampCursor(-1, 3); got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
	if got := ClampCursor(3, 3); got != 2 {
		t.Fatalf("expected clamp to 2, got %d", got)
	}
	if got := ClampCursor(1, 3); got != 1 {
		t.Fatalf("expected keep 1, got %d", got)
	}
}

func TestPageStep(t *testing.T) {
	if got := PageStep(0, false); got != 10 {
		t.Fatalf("expected default step 10, got %d", got)
	}
	if got := PageStep(12, false); got != 8 {
		t.Fatalf("expected step 8, got %d", got)
	}
	if got := PageStep(12, true); got != 6 {
		t.Fatalf("expected step 6 with status, got %d", got)
	}
	if got := PageStep(5, true); got != 3 {
		t.Fatalf("expected minimum step 3, got %d", got)
	}
}

func TestCenteredWindow(t *testing.T) {
	start, end := CenteredWindow(5, 3, 3)
	if start != 2 || end != 5 {
		t.Fatalf("unexpected window: start=%d end=%d", start, end)
	}
	start, end = CenteredWindow(2, 1, 10)
	if start != 0 || end != 2 {
		t.Fatalf("expected full window for short list, got %d..%d", start, end)
	}
}

func TestFractionToOffset(t *testing.T) {
	cases := []struct {
		fraction float64
		total    int
		height   int
		want     int
	}{
		{0, 100, 20, 0},
		{0.5, 100, 20, 50},
		{0.95, 100, 20, 80},
		{1.5, 100, 20, 80},
		{-1, 100, 20, 0},
		{0.5, 10, 20, 0},
		{0.5, 0, 20, 0},
	}
	for _, tc := range cases {
		if got := FractionToOffset(tc.fraction, tc.total, tc.height); got != tc.want {
			t.Fatalf("FractionToOffset(%v, %d, %d) = %d, want %d", tc.fraction, tc.total, tc.height, got, tc.want)
		}
	}
}

func TestNextSelectableSkipsSections(t *testing.T) {
	rows := []tuitree.Row{
		{Kind: tuitree.RowSection, Label: tuitree.SectionOutline},
		{Kind: tuitree.RowHeading, Index: 0},
		{Kind: tuitree.RowSection, Label: tuitree.SectionLinks},
		{Kind: tuitree.RowLink, Index: 0},
		{Kind: tuitree.RowLink, Index: 1},
	}
	if got := NextSelectable(rows, 1, 1); got != 3 {
		t.Fatalf("expected to skip section to 3, got %d", got)
	}
	if got := NextSelectable(rows, 3, -1); got != 1 {
		t.Fatalf("expected to skip back to 1, got %d", got)
	}
	if got := NextSelectable(rows, 1, -1); got != 1 {
		t.Fatalf("expected to stay at first selectable row, got %d", got)
	}
	if got := NextSelectable(rows, 1, 10); got != 4 {
		t.Fatalf("expected to stop at last row, got %d", got)
	}
	if got := NextSelectable(nil, 3, 1); got != 0 {
		t.Fatalf("expected 0 for empty rows, got %d", got)
	}
}

func TestRowForLink(t *testing.T) {
	rows := []tuitree.Row{
		{Kind: tuitree.RowSection},
		{Kind: tuitree.RowHeading, Index: 1},
		{Kind: tuitree.RowLink, Index: 1},
	}
	if got := RowForLink(rows, 1); got != 2 {
		t.Fatalf("expected link row 2, got %d", got)
	}
	if got := RowForLink(rows, 5); got != -1 {
		t.Fatalf("expected -1 for missing link, got %d", got)
	}
}
