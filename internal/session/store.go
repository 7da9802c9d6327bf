package session

import (
	"sync"
	"time"

	"github.com/dgallion1/chapterize/internal/chapter"
)

// Entry is a session registered in a Store along with what it was built from.
type Entry struct {
	mu sync.Mutex

	ID        string    `json:"session_id"`
	DocID     string    `json:"doc_id"`
	Filename  string    `json:"filename"`
	Strategy  string    `json:"strategy"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	session *Session
}

// Do runs fn with exclusive access to the session.
func (e *Entry) Do(fn func(s *Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	err := fn(e.session)
	e.UpdatedAt = time.Now()
	return err
}

func (e *Entry) lastUsed() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.UpdatedAt
}

// Store is a thread-safe in-memory session registry with TTL eviction.
type Store struct {
	mu      sync.Mutex
	entries map[string]*Entry
	ttl     time.Duration
	opts    Options
}

func NewStore(ttl time.Duration, opts Options) *Store {
	return &Store{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		opts:    opts,
	}
}

// Create registers a new session over chapters under id.
func (s *Store) Create(id, docID, filename, strategy string, chapters chapter.List) *Entry {
	now := time.Now()
	e := &Entry{
		ID:        id,
		DocID:     docID,
		Filename:  filename,
		Strategy:  strategy,
		CreatedAt: now,
		UpdatedAt: now,
		session:   New(chapters, s.opts),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = e
	return e
}

func (s *Store) Get(id string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[id]
}

// Delete discards a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup removes sessions idle for longer than the TTL and returns how many
// were dropped.
func (s *Store) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	removed := 0
	for id, e := range s.entries {
		if now.Sub(e.lastUsed()) > s.ttl {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
