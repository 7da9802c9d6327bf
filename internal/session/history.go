package session

import "github.com/dgallion1/chapterize/internal/chapter"

// DefaultMaxHistory bounds the snapshot stack when no limit is configured.
const DefaultMaxHistory = 1000

type snapshot struct {
	chapters chapter.List
	op       string
}

// History is a LIFO stack of chapter-list snapshots taken before each
// structural edit. It is not safe for concurrent use.
type History struct {
	stack      []snapshot
	maxEntries int
}

// NewHistory creates a history holding at most maxEntries snapshots.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistory
	}
	return &History{maxEntries: maxEntries}
}

// Push records chapters as they were before op ran. The oldest snapshots
// are dropped once the stack is full.
func (h *History) Push(op string, chapters chapter.List) {
	h.stack = append(h.stack, snapshot{
		chapters: chapters.Clone(),
		op:       op,
	})
	if excess := len(h.stack) - h.maxEntries; excess > 0 {
		h.stack = h.stack[excess:]
	}
}

// Pop removes and returns the most recent snapshot.
func (h *History) Pop() (chapter.List, bool) {
	if len(h.stack) == 0 {
		return nil, false
	}
	top := h.stack[len(h.stack)-1]
	h.stack = h.stack[:len(h.stack)-1]
	return top.chapters, true
}

// Peek returns the most recent snapshot and the operation it precedes.
func (h *History) Peek() (chapter.List, string, bool) {
	if len(h.stack) == 0 {
		return nil, "", false
	}
	top := h.stack[len(h.stack)-1]
	return top.chapters, top.op, true
}

// Len returns the number of snapshots available to undo.
func (h *History) Len() int {
	return len(h.stack)
}

// Full reports whether the next Push will drop the oldest snapshot.
func (h *History) Full() bool {
	return len(h.stack) >= h.maxEntries
}
