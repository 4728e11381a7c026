// Package tui provides a Bubble Tea terminal UI for Temple with
// single-key roguelike controls.
package tui

// History remembers the last lines typed on the command line. It is a
// fixed-size ring; the oldest line is overwritten when full.
type History struct {
	ring  []string
	start int // index of the oldest line
	n     int // lines stored
	back  int // 0 = fresh input, k = k-th newest line shown
}

// NewHistory creates a history holding at most max lines.
func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{ring: make([]string, max)}
}

// at returns the i-th newest line, i counting from 1.
func (h *History) at(i int) string {
	return h.ring[(h.start+h.n-i)%len(h.ring)]
}

// Push records a line and returns to fresh input. Repeating the newest
// line is not recorded twice.
func (h *History) Push(line string) {
	h.back = 0
	if h.n > 0 && h.at(1) == line {
		return
	}
	if h.n < len(h.ring) {
		h.ring[(h.start+h.n)%len(h.ring)] = line
		h.n++
		return
	}
	h.ring[h.start] = line
	h.start = (h.start + 1) % len(h.ring)
}

// Prev steps back to an older line, stopping at the oldest. It reports
// false when nothing is stored.
func (h *History) Prev() (string, bool) {
	if h.n == 0 {
		return "", false
	}
	if h.back < h.n {
		h.back++
	}
	return h.at(h.back), true
}

// Next steps forward to a newer line. Stepping past the newest returns
// to fresh input and reports false.
func (h *History) Next() (string, bool) {
	if h.back <= 1 {
		h.back = 0
		return "", false
	}
	h.back--
	return h.at(h.back), true
}

// Len is the number of stored lines.
func (h *History) Len() int {
	return h.n
}
