package session

import (
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/chapterize/internal/chapter"
)

func TestStore_CreateGetDelete(t *testing.T) {
	store := NewStore(time.Hour, Options{})
	e := store.Create("s1", "doc", "book.txt", "cascade:chinese-numeral", sample())

	got := store.Get("s1")
	if got != e {
		t.Fatal("expected to get the created entry back")
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 session, got %d", store.Len())
	}
	if !store.Delete("s1") {
		t.Error("expected delete to report an existing session")
	}
	if store.Get("s1") != nil {
		t.Error("expected nil after delete")
	}
	if store.Delete("s1") {
		t.Error("expected second delete to report a missing session")
	}
}

func TestStore_TTLCleanup(t *testing.T) {
	store := NewStore(50*time.Millisecond, Options{})
	store.Create("old", "", "", "", sample())

	time.Sleep(100 * time.Millisecond)
	store.Create("new", "", "", "", sample())

	if n := store.Cleanup(); n != 1 {
		t.Errorf("expected 1 session removed, got %d", n)
	}
	if store.Get("old") != nil {
		t.Error("expected expired session to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh session to survive cleanup")
	}
}

func TestEntry_DoSerializesOperations(t *testing.T) {
	chapters := make(chapter.List, 0, 64)
	for range 64 {
		chapters = append(chapters, chapter.Chapter{Title: "c", Content: "x"})
	}
	store := NewStore(time.Hour, Options{})
	e := store.Create("s", "", "", "", chapters)

	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Do(func(s *Session) error {
				_, err := s.DeleteChapter(0)
				return err
			})
		}()
	}
	wg.Wait()

	var n int
	e.Do(func(s *Session) error {
		n = len(s.Chapters())
		return nil
	})
	if n != 32 {
		t.Errorf("expected 32 chapters left, got %d", n)
	}
}
