package session

import (
	"fmt"
	"testing"

	"github.com/dgallion1/chapterize/internal/chapter"
)

func TestHistory_TrimsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := range 5 {
		h.Push(fmt.Sprintf("op%d", i), chapter.List{{Title: fmt.Sprintf("t%d", i)}})
	}
	if h.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", h.Len())
	}
	for _, want := range []string{"t4", "t3", "t2"} {
		got, ok := h.Pop()
		if !ok {
			t.Fatalf("expected snapshot %s", want)
		}
		if got[0].Title != want {
			t.Errorf("expected %q, got %q", want, got[0].Title)
		}
	}
	if _, ok := h.Pop(); ok {
		t.Error("expected empty history")
	}
}

func TestHistory_SnapshotIsIsolated(t *testing.T) {
	h := NewHistory(0)
	list := chapter.List{{Title: "a", Content: "x"}}
	h.Push("edit", list)
	list[0].Title = "mutated"

	got, op, ok := h.Peek()
	if !ok || op != "edit" {
		t.Fatalf("expected edit snapshot, got %q %v", op, ok)
	}
	if got[0].Title != "a" {
		t.Errorf("expected snapshot title %q, got %q", "a", got[0].Title)
	}
	if h.Len() != 1 {
		t.Errorf("expected Peek to leave the snapshot, got len %d", h.Len())
	}
}

func TestIsPrecondition(t *testing.T) {
	if !IsPrecondition(ErrNoCursor) {
		t.Error("expected ErrNoCursor to be a precondition failure")
	}
	if !IsPrecondition(fmt.Errorf("combine: %w", ErrLastChapter)) {
		t.Error("expected wrapped ErrLastChapter to be a precondition failure")
	}
	if IsPrecondition(fmt.Errorf("boom")) {
		t.Error("expected arbitrary error not to be a precondition failure")
	}
}
