package state

import (
	tuitree "github.com/glabrego/gemini-cli/internal/tui/tree"
)

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 4
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// FractionToOffset converts a relative document position into a viewport
// top line, clamped so the last page stays full.
func FractionToOffset(fraction float64, totalLines, height int) int {
	if totalLines <= 0 {
		return 0
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	offset := int(fraction * float64(totalLines))
	maxOffset := totalLines - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	return offset
}

// NextSelectable moves from cursor by delta, skipping section rows. It stays
// put when there is nothing selectable in that direction.
func NextSelectable(rows []tuitree.Row, cursor, delta int) int {
	if len(rows) == 0 || delta == 0 {
		return ClampCursor(cursor, len(rows))
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	cursor = ClampCursor(cursor, len(rows))
	next := cursor
	for moved := 0; moved != delta; {
		i := next + step
		for i >= 0 && i < len(rows) && rows[i].Kind == tuitree.RowSection {
			i += step
		}
		if i < 0 || i >= len(rows) {
			break
		}
		next = i
		moved += step
	}
	return next
}

// RowForLink returns the navigator row showing link i, or -1.
func RowForLink(rows []tuitree.Row, i int) int {
	for idx, row := range rows {
		if row.Kind == tuitree.RowLink && row.Index == i {
			return idx
		}
	}
	return -1
}
