// Package history keeps the list of visited URLs with a cursor for back and
// forward navigation.
package history

// History is a cursor-based list. Adding while the cursor is not at the end
// discards everything after the cursor first.
type History struct {
	entries []string
	cursor  int
}

func New() *History {
	return &History{cursor: -1}
}

// Add records url as the newest entry. Re-adding the entry the cursor already
// points at is a no-op and keeps any forward entries.
func (h *History) Add(url string) {
	if h.cursor >= 0 && h.entries[h.cursor] == url {
		return
	}
	if h.cursor < len(h.entries)-1 {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, url)
	h.cursor = len(h.entries) - 1
}

func (h *History) Back() (string, bool) {
	if h.cursor <= 0 {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *History) Forward() (string, bool) {
	if h.cursor < 0 || h.cursor >= len(h.entries)-1 {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

func (h *History) Current() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	return h.entries[h.cursor], true
}

func (h *History) CanBack() bool {
	return h.cursor > 0
}

func (h *History) CanForward() bool {
	return h.cursor >= 0 && h.cursor < len(h.entries)-1
}

// Cursor is -1 while the history is empty.
func (h *History) Cursor() int {
	return h.cursor
}

func (h *History) Len() int {
	return len(h.entries)
}

func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}
