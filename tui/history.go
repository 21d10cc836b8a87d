// Package tui provides a Bubble Tea terminal UI for the Crystal Kingdoms engine.
package tui

import "strings"

// History is a bounded list of submitted lines with Up/Down navigation.
// Repeat words ("again", "g") are not recorded; Up should recall the line
// they repeated instead.
type History struct {
	entries []string
	max     int
	cursor  int // -1 while not navigating
}

// NewHistory creates a history holding at most size lines (at least one).
func NewHistory(size int) *History {
	size = max(size, 1)
	return &History{entries: make([]string, 0, size), max: size, cursor: -1}
}

// Push records a line. Consecutive duplicates and repeat words are skipped.
func (h *History) Push(line string) {
	switch strings.ToLower(line) {
	case "again", "g":
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev moves toward older lines and stops at the oldest.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next moves toward newer lines. Past the newest it returns false and the
// input goes back to empty.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
