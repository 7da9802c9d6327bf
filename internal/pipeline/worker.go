package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/chapterize/internal/parser"
	"github.com/dgallion1/chapterize/internal/segment"
	"github.com/dgallion1/chapterize/internal/session"
)

// Worker decodes and segments a single manuscript job.
type Worker struct {
	sessions  *session.Store
	stats     *SegmentStats
	parseOpts parser.Options
	log       *slog.Logger
}

func NewWorker(sessions *session.Store, stats *SegmentStats, parseOpts parser.Options, log *slog.Logger) *Worker {
	return &Worker{
		sessions:  sessions,
		stats:     stats,
		parseOpts: parseOpts,
		log:       log,
	}
}

// Process runs decode and segmentation for a job and registers the result
// as a new edit session.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.Fail("queued", err)
		return
	}

	// Phase 1: Decode
	job.SetStatus(StatusDecoding, "decoding")
	tree, err := parser.Decode(bytes.NewReader(job.FileData()), job.Filename, w.parseOpts)
	if err != nil {
		log.Error("decode failed", "error", err)
		job.Fail("decoding", fmt.Errorf("decode: %w", err))
		return
	}
	if job.Title != "" {
		tree.Title = job.Title
	}

	text := tree.PlainText()
	job.SetContentHash(ContentHashHex([]byte(text)), len(text))
	if strings.TrimSpace(text) == "" {
		log.Warn("no text extracted")
	}

	// Phase 2: Segment
	job.SetStatus(StatusSegmenting, "segmenting")
	start := time.Now()
	chapters, strategy := segment.Analyze(text)
	elapsed := time.Since(start)
	w.stats.Record(elapsed, strategy, len(chapters))

	sessionID := NewID()
	w.sessions.Create(sessionID, job.DocID, job.Filename, strategy, chapters)
	job.Complete(sessionID, strategy, len(chapters))

	log.Info("segmented manuscript",
		"session_id", sessionID,
		"strategy", strategy,
		"chapters", len(chapters),
		"duration_us", elapsed.Microseconds(),
	)
}
