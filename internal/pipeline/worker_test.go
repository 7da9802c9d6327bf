package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/chapterize/internal/chapter"
	"github.com/dgallion1/chapterize/internal/config"
	"github.com/dgallion1/chapterize/internal/parser"
	"github.com/dgallion1/chapterize/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func entryChapters(t *testing.T, e *session.Entry) chapter.List {
	t.Helper()
	var got chapter.List
	e.Do(func(s *session.Session) error {
		got = s.Chapters()
		return nil
	})
	return got
}

func TestWorker_ProcessText(t *testing.T) {
	sessions := session.NewStore(time.Hour, session.Options{})
	stats := NewSegmentStats(time.Hour)
	w := NewWorker(sessions, stats, parser.Options{}, discardLogger())

	job := NewJob("novel.txt", "", []byte("第一章 开端\n内容A\n第二章 发展\n内容B"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q (errors %v)", StatusCompleted, snap.Status, snap.Result.Errors)
	}
	if snap.Result.Strategy != "cascade:chinese-numeral" {
		t.Errorf("expected strategy %q, got %q", "cascade:chinese-numeral", snap.Result.Strategy)
	}
	if snap.Result.ChapterCount != 2 {
		t.Errorf("expected 2 chapters, got %d", snap.Result.ChapterCount)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash to be set")
	}

	e := sessions.Get(snap.Result.SessionID)
	if e == nil {
		t.Fatal("expected session to be registered")
	}
	if e.DocID != job.DocID {
		t.Errorf("expected doc id %q, got %q", job.DocID, e.DocID)
	}
	got := entryChapters(t, e)
	if len(got) != 2 || got[1].Title != "第二章 发展" {
		t.Errorf("unexpected chapters: %+v", got)
	}
	if stats.Snapshot().Count != 1 {
		t.Errorf("expected one stats sample, got %d", stats.Snapshot().Count)
	}
}

func TestWorker_ProcessMarkdownDash(t *testing.T) {
	sessions := session.NewStore(time.Hour, session.Options{})
	w := NewWorker(sessions, NewSegmentStats(time.Hour), parser.Options{}, discardLogger())

	md := "Chapter I\n\nOne.\n\n***\n\nChapter II\n\nTwo."
	job := NewJob("book.md", "", []byte(md))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected status %q, got %q", StatusCompleted, snap.Status)
	}
	if snap.Result.Strategy != "dash" {
		t.Errorf("expected strategy %q, got %q", "dash", snap.Result.Strategy)
	}
	got := entryChapters(t, sessions.Get(snap.Result.SessionID))
	if len(got) != 2 || got[0].Title != "Chapter I" || got[1].Title != "Chapter II" {
		t.Errorf("unexpected chapters: %+v", got)
	}
}

func TestWorker_UnsupportedFormat(t *testing.T) {
	sessions := session.NewStore(time.Hour, session.Options{})
	w := NewWorker(sessions, NewSegmentStats(time.Hour), parser.Options{}, discardLogger())

	job := NewJob("sheet.xlsx", "", []byte("x"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected status %q, got %q", StatusFailed, snap.Status)
	}
	if snap.Phase != "decoding" {
		t.Errorf("expected phase %q, got %q", "decoding", snap.Phase)
	}
	if sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", sessions.Len())
	}
}

func TestWorker_CancelledContext(t *testing.T) {
	sessions := session.NewStore(time.Hour, session.Options{})
	w := NewWorker(sessions, NewSegmentStats(time.Hour), parser.Options{}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := NewJob("a.txt", "", []byte("text"))
	w.Process(ctx, job)

	if snap := job.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected status %q, got %q", StatusFailed, snap.Status)
	}
}

func TestOrchestrator_SubmitAndComplete(t *testing.T) {
	cfg := config.Config{
		WorkerCount:  2,
		MaxQueueSize: 10,
		JobTTL:       time.Hour,
		StatsWindow:  time.Hour,
	}
	sessions := session.NewStore(time.Hour, session.Options{})
	o := NewOrchestrator(cfg, sessions, discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := NewJob("a.txt", "", []byte("Chapter 1\nhello\nChapter 2\nworld"))
	if err := o.Submit(job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.GetJob(job.ID) != job {
		t.Fatal("expected job to be registered")
	}

	deadline := time.Now().Add(5 * time.Second)
	for job.Snapshot().Status != StatusCompleted {
		if time.Now().After(deadline) {
			t.Fatalf("job did not complete, status %q", job.Snapshot().Status)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if o.Sessions().Get(job.Snapshot().Result.SessionID) == nil {
		t.Error("expected session to be registered")
	}
	if o.Stats().Snapshot().Count != 1 {
		t.Errorf("expected one stats sample, got %d", o.Stats().Snapshot().Count)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, session.NewStore(time.Hour, session.Options{}), discardLogger())

	if err := o.Submit(NewJob("a.txt", "", nil)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	job := NewJob("b.txt", "", nil)
	if err := o.Submit(job); err == nil {
		t.Fatal("expected queue full error")
	}
	if snap := job.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %s/%s", snap.Status, snap.Phase)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
