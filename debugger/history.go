package debugger

// History keeps the last lines written to it in a fixed ring
type History struct {
	lines []string
	next  int
	full  bool
}

// NewHistory returns a history holding at most size lines
func NewHistory(size int) *History {
	return &History{lines: make([]string, size)}
}

// Add appends a line, overwriting the oldest one once the ring is full
func (h *History) Add(line string) {
	if len(h.lines) == 0 {
		return
	}
	h.lines[h.next] = line
	h.next = (h.next + 1) % len(h.lines)
	if h.next == 0 {
		h.full = true
	}
}

// Lines returns the held lines, oldest first
func (h *History) Lines() []string {
	if !h.full {
		return append([]string(nil), h.lines[:h.next]...)
	}
	out := make([]string, 0, len(h.lines))
	out = append(out, h.lines[h.next:]...)
	return append(out, h.lines[:h.next]...)
}
