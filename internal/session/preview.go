package session

import (
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Span is one run of an undo preview.
type Span struct {
	Op   string `json:"op"` // "equal", "insert" or "delete"
	Text string `json:"text"`
}

// UndoPreview diffs the rendered manuscript as it is now against what Undo
// would restore. Inserted spans come back with the undo, deleted ones go.
func (s *Session) UndoPreview() ([]Span, string, error) {
	prev, op, ok := s.history.Peek()
	if !ok {
		return nil, "", ErrNothingToUndo
	}

	d := dmp.New()
	diffs := d.DiffMain(s.chapters.Render(), prev.Render(), false)
	d.DiffCleanupSemantic(diffs)

	spans := make([]Span, 0, len(diffs))
	for _, df := range diffs {
		var kind string
		switch df.Type {
		case dmp.DiffInsert:
			kind = "insert"
		case dmp.DiffDelete:
			kind = "delete"
		case dmp.DiffEqual:
			kind = "equal"
		}
		spans = append(spans, Span{Op: kind, Text: df.Text})
	}
	return spans, op, nil
}
