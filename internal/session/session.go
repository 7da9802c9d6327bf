// Package session implements the interactive edit session over a chapter
// list: staging and executing splits, combining and deleting chapters, and
// snapshot-based undo.
//
// A Session is not safe for concurrent use. Callers serialize operations on
// one session; Store does this for sessions shared across requests.
package session

import (
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/chapterize/internal/chapter"
	"github.com/dgallion1/chapterize/internal/marker"
)

const none = -1

// Options tunes a session.
type Options struct {
	MaxHistory  int // Snapshots kept for undo.
	TitleMaxLen int // Grapheme limit for titles derived during a split.
}

// Session holds the current chapters plus selection, a staged cursor, the
// chapter carrying an unexecuted split marker, and the undo history.
type Session struct {
	chapters    chapter.List
	selected    int
	pending     int
	editing     int
	history     *History
	titleMaxLen int
}

// New starts a session over chapters, typically the output of segmentation.
func New(chapters chapter.List, opts Options) *Session {
	if opts.TitleMaxLen <= 0 {
		opts.TitleMaxLen = DefaultTitleMaxLen
	}
	return &Session{
		chapters:    chapters.Clone(),
		pending:     none,
		editing:     none,
		history:     NewHistory(opts.MaxHistory),
		titleMaxLen: opts.TitleMaxLen,
	}
}

// Chapters returns the current chapter list.
func (s *Session) Chapters() chapter.List {
	return s.chapters
}

// Empty reports whether there is nothing to edit.
func (s *Session) Empty() bool {
	return len(s.chapters) == 0
}

// Selected returns the selected index clamped to the current list, or -1
// when the session is empty.
func (s *Session) Selected() int {
	if s.Empty() {
		return none
	}
	return clamp(s.selected, 0, len(s.chapters)-1)
}

// SelectChapter moves the selection. The staged cursor and editing marker
// belong to the previous selection and are dropped.
func (s *Session) SelectChapter(index int) (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	s.selected = clamp(index, 0, len(s.chapters)-1)
	s.editing = none
	s.pending = none
	return s.chapters, nil
}

// StageCursor records a character offset into the selected chapter's
// content where the next split marker will go.
func (s *Session) StageCursor(offset int) (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	content := s.chapters[s.Selected()].Content
	s.pending = clamp(offset, 0, utf8.RuneCountInString(content))
	return s.chapters, nil
}

// PendingCursor returns the staged offset, if any.
func (s *Session) PendingCursor() (int, bool) {
	return s.pending, s.pending != none
}

// Editing returns the index of the chapter carrying a staged split marker.
func (s *Session) Editing() (int, bool) {
	return s.editing, s.editing != none
}

// InsertSplitMarker writes the split separator into the selected chapter at
// the staged cursor.
func (s *Session) InsertSplitMarker() (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	if s.pending == none {
		return s.chapters, ErrNoCursor
	}

	idx := s.Selected()
	s.history.Push("insert-marker", s.chapters)

	c := s.chapters[idx]
	at := byteOffset(c.Content, s.pending)
	next := s.chapters.Clone()
	next[idx] = chapter.Chapter{
		Title:   c.Title,
		Content: c.Content[:at] + marker.SplitSeparator + c.Content[at:],
	}

	s.chapters = next
	s.editing = idx
	s.pending = none
	return s.chapters, nil
}

// ExecuteSplit breaks the selected chapter at every split marker it holds.
// The first part keeps the original title; every later part is titled by
// its first line.
func (s *Session) ExecuteSplit() (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	idx := s.Selected()
	c := s.chapters[idx]
	if !marker.HasSplitSentinel(c.Content) {
		return s.chapters, ErrNoSplitMarker
	}

	s.history.Push("split", s.chapters)

	parts := strings.Split(c.Content, marker.SplitSentinel)
	subs := chapter.List{chapter.New(c.Title, parts[0])}
	for _, part := range parts[1:] {
		part = chapter.TrimBlankLines(part)
		if part == "" {
			continue
		}
		first, rest := chapter.SplitFirstLine(part)
		title, truncated := truncateTitle(strings.TrimSpace(first), s.titleMaxLen)
		content := chapter.TrimBlankLines(rest)
		if truncated {
			// The full line stays in the content so the cut text is not lost.
			content = part
		} else if content == "" {
			content = title
		}
		subs = append(subs, chapter.Chapter{Title: title, Content: content})
	}

	next := make(chapter.List, 0, len(s.chapters)-1+len(subs))
	next = append(next, s.chapters[:idx]...)
	next = append(next, subs...)
	next = append(next, s.chapters[idx+1:]...)

	s.chapters = next
	s.selected = idx
	s.editing = none
	s.pending = none
	return s.chapters, nil
}

// CombineChapters merges the chapter at index with the one after it. The
// absorbed chapter's title is kept inline in the merged content.
func (s *Session) CombineChapters(index int) (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	if index < 0 || index >= len(s.chapters) {
		return s.chapters, ErrIndexOutOfRange
	}
	if index == len(s.chapters)-1 {
		return s.chapters, ErrLastChapter
	}

	s.history.Push("combine", s.chapters)

	first, second := s.chapters[index], s.chapters[index+1]
	merged := chapter.Chapter{
		Title:   first.Title,
		Content: chapter.TrimBlankLines(first.Content + "\n\n" + second.Title + "\n\n" + second.Content),
	}

	next := make(chapter.List, 0, len(s.chapters)-1)
	next = append(next, s.chapters[:index]...)
	next = append(next, merged)
	next = append(next, s.chapters[index+2:]...)

	remap := func(i int) int {
		if i > index {
			return i - 1
		}
		return i
	}
	s.selected = remap(s.Selected())
	if s.editing != none {
		s.editing = remap(s.editing)
	}
	s.chapters = next
	s.pending = none
	return s.chapters, nil
}

// DeleteChapter removes the chapter at index. Deleting the selected chapter
// moves the selection to the one before it.
func (s *Session) DeleteChapter(index int) (chapter.List, error) {
	if s.Empty() {
		return s.chapters, ErrEmpty
	}
	if index < 0 || index >= len(s.chapters) {
		return s.chapters, ErrIndexOutOfRange
	}

	s.history.Push("delete", s.chapters)

	next := make(chapter.List, 0, len(s.chapters)-1)
	next = append(next, s.chapters[:index]...)
	next = append(next, s.chapters[index+1:]...)

	switch sel := s.Selected(); {
	case sel == index:
		s.selected = max(0, index-1)
	case sel > index:
		s.selected = sel - 1
	}
	switch {
	case s.editing == index:
		s.editing = none
	case s.editing > index:
		s.editing--
	}
	s.chapters = next
	s.pending = none
	return s.chapters, nil
}

// Undo restores the chapters saved before the most recent structural edit.
// Selection is left alone and re-clamped on the next read.
func (s *Session) Undo() (chapter.List, error) {
	prev, ok := s.history.Pop()
	if !ok {
		return s.chapters, ErrNothingToUndo
	}
	s.chapters = prev
	s.pending = none
	s.editing = none
	return s.chapters, nil
}

// CanUndo reports whether a snapshot is available.
func (s *Session) CanUndo() bool {
	return s.history.Len() > 0
}

// State is a JSON-safe view of the session for hosts to render.
type State struct {
	Chapters      chapter.List `json:"chapters"`
	SelectedIndex int          `json:"selected_index"`
	EditingIndex  *int         `json:"editing_index"`
	PendingCursor *int         `json:"pending_cursor"`
	CanSplit      bool         `json:"can_split"`
	CanUndo       bool         `json:"can_undo"`
	HistoryDepth  int          `json:"history_depth"`
	HistoryFull   bool         `json:"history_full"`
	NextUndo      string       `json:"next_undo,omitempty"`
}

// State returns a copy of the session state.
func (s *Session) State() State {
	st := State{
		Chapters:      s.chapters.Clone(),
		SelectedIndex: s.Selected(),
		CanUndo:       s.CanUndo(),
		HistoryDepth:  s.history.Len(),
		HistoryFull:   s.history.Full(),
	}
	if st.Chapters == nil {
		st.Chapters = chapter.List{}
	}
	if s.editing != none {
		e := s.editing
		st.EditingIndex = &e
	}
	if s.pending != none {
		p := s.pending
		st.PendingCursor = &p
	}
	if sel := st.SelectedIndex; sel != none {
		st.CanSplit = marker.HasSplitSentinel(s.chapters[sel].Content)
	}
	if _, op, ok := s.history.Peek(); ok {
		st.NextUndo = op
	}
	return st
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// byteOffset converts a rune offset into a byte index of s.
func byteOffset(s string, runes int) int {
	if runes <= 0 {
		return 0
	}
	n := 0
	for i := range s {
		if n == runes {
			return i
		}
		n++
	}
	return len(s)
}
