package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/chapterize/internal/config"
	"github.com/dgallion1/chapterize/internal/parser"
	"github.com/dgallion1/chapterize/internal/session"
)

const cleanupInterval = 5 * time.Minute

// Orchestrator manages the manuscript ingestion pipeline.
type Orchestrator struct {
	jobs     *JobStore
	sessions *session.Store
	stats    *SegmentStats
	queue    chan *Job
	log      *slog.Logger
	cfg      config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, sessions *session.Store, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		sessions: sessions,
		stats:    NewSegmentStats(cfg.StatsWindow),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	opts := parser.Options{
		FallbackEncoding:     o.cfg.FallbackEncoding,
		PDFFallbackPdftotext: o.cfg.PDFFallbackPdftotext,
	}
	for range o.cfg.WorkerCount {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.sessions, o.stats, opts, o.log)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Evict idle jobs and sessions.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.Cleanup()
			}
		}
	}()
}

// Cleanup evicts expired jobs and idle sessions.
func (o *Orchestrator) Cleanup() {
	jobs := o.jobs.Cleanup()
	sessions := o.sessions.Cleanup()
	if jobs > 0 || sessions > 0 {
		o.log.Info("evicted expired state", "jobs", jobs, "sessions", sessions)
	}
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		err := fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
		job.Fail("queue_full", err)
		return err
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// Stats returns the segmentation statistics shared by all workers.
func (o *Orchestrator) Stats() *SegmentStats {
	return o.stats
}

// Sessions returns the store completed jobs register their sessions in.
func (o *Orchestrator) Sessions() *session.Store {
	return o.sessions
}
