// Package verification runs the background document checks as an explicit
// two-stage pipeline: field extraction first, then an adverse media search fed
// by the extracted name and address. The conversation never waits on either
// stage; completion is observable through metrics and an optional hook.
package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fastkyc/internal/account"
	"fastkyc/internal/platform/metrics"
	"fastkyc/internal/verification/adversemedia"
	"fastkyc/internal/verification/docextract"
)

// Job asks the pipeline to verify one uploaded document.
type Job struct {
	AccountID uuid.UUID
	ImageJPEG []byte
}

// Result reports how a job ended. Err is set when any stage failed; partial
// progress before the failure (extracted fields already stored) is kept.
type Result struct {
	AccountID uuid.UUID
	Fields    *account.DocumentFields
	Verdict   adversemedia.Verdict
	Err       error
}

// Submitter is the controller-facing slice of the worker.
type Submitter interface {
	Submit(job Job) bool
}

// Worker owns the verification queue and the pool draining it.
type Worker struct {
	extractor docextract.Extractor
	searcher  adversemedia.Searcher
	accounts  account.Store

	inbox   chan Job
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics
	onDone  func(Result)
}

type Option func(*Worker)

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *Worker) { w.metrics = m }
}

func WithWorkers(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithCompletionHook registers a callback invoked after every job, successful
// or not. Used by tests and operational tooling; the conversation flow never
// registers one.
func WithCompletionHook(hook func(Result)) Option {
	return func(w *Worker) { w.onDone = hook }
}

// NewWorker constructs a Worker with a queue of the given depth.
func NewWorker(extractor docextract.Extractor, searcher adversemedia.Searcher, accounts account.Store, queueDepth int, opts ...Option) *Worker {
	if queueDepth <= 0 {
		queueDepth = 64
	}
	w := &Worker{
		extractor: extractor,
		searcher:  searcher,
		accounts:  accounts,
		inbox:     make(chan Job, queueDepth),
		workers:   4,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Submit enqueues a job without blocking. A full queue drops the job; the
// checks are best effort and the conversation must not stall on them.
func (w *Worker) Submit(job Job) bool {
	select {
	case w.inbox <- job:
		return true
	default:
		w.logger.Warn("verification queue full, dropping job",
			"account_id", job.AccountID.String(),
		)
		w.metrics.IncrementDropped()
		return false
	}
}

// Run drains the queue with a pool of goroutines until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.workers; i++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case job := <-w.inbox:
					result := w.process(ctx, job)
					if w.onDone != nil {
						w.onDone(result)
					}
				}
			}
		})
	}
	return g.Wait()
}

// process runs both pipeline stages for one job. Stage failures are logged
// and counted but never propagated: a lost check has no user visible effect.
func (w *Worker) process(ctx context.Context, job Job) Result {
	result := Result{AccountID: job.AccountID}

	fields, err := w.runExtraction(ctx, job)
	if err != nil {
		result.Err = err
		return result
	}
	result.Fields = &fields

	verdict, err := w.runAdverseMedia(ctx, job.AccountID, fields)
	if err != nil {
		result.Err = err
		return result
	}
	result.Verdict = verdict
	return result
}

func (w *Worker) runExtraction(ctx context.Context, job Job) (account.DocumentFields, error) {
	start := time.Now()
	fields, err := w.extractor.Extract(ctx, job.ImageJPEG)
	w.metrics.ObserveVerificationLatency("extraction", time.Since(start))
	if err != nil {
		w.logger.ErrorContext(ctx, "document extraction failed",
			"account_id", job.AccountID.String(),
			"error", err.Error(),
		)
		w.metrics.IncrementVerification("extraction", "error")
		return account.DocumentFields{}, err
	}

	if err := w.accounts.UpdateDocumentFields(ctx, job.AccountID, fields); err != nil {
		w.logger.ErrorContext(ctx, "storing extracted fields failed",
			"account_id", job.AccountID.String(),
			"error", err.Error(),
		)
	}
	// Mirror name and address into their dedicated columns; the adverse media
	// search and operator views read them directly.
	if err := w.accounts.UpdateName(ctx, job.AccountID, fields.Name); err != nil {
		w.logger.ErrorContext(ctx, "storing name failed",
			"account_id", job.AccountID.String(), "error", err.Error())
	}
	if err := w.accounts.UpdateAddress(ctx, job.AccountID, fields.Address); err != nil {
		w.logger.ErrorContext(ctx, "storing address failed",
			"account_id", job.AccountID.String(), "error", err.Error())
	}

	w.metrics.IncrementVerification("extraction", "ok")
	return fields, nil
}

func (w *Worker) runAdverseMedia(ctx context.Context, accountID uuid.UUID, fields account.DocumentFields) (adversemedia.Verdict, error) {
	start := time.Now()
	verdict, err := w.searcher.Search(ctx, fields.Name, fields.Address)
	w.metrics.ObserveVerificationLatency("adverse_media", time.Since(start))
	if err != nil {
		w.logger.ErrorContext(ctx, "adverse media search failed",
			"account_id", accountID.String(),
			"error", err.Error(),
		)
		w.metrics.IncrementVerification("adverse_media", "error")
		return "", err
	}

	if err := w.accounts.UpdateAdverseMedia(ctx, accountID, flagForVerdict(verdict)); err != nil {
		w.logger.ErrorContext(ctx, "storing adverse media verdict failed",
			"account_id", accountID.String(),
			"error", err.Error(),
		)
	}
	w.metrics.IncrementVerification("adverse_media", string(verdict))
	return verdict, nil
}

func flagForVerdict(v adversemedia.Verdict) account.AdverseMediaFlag {
	switch v {
	case adversemedia.VerdictFound:
		return account.AdverseMediaFound
	case adversemedia.VerdictNotFound:
		return account.AdverseMediaNotFound
	default:
		return account.AdverseMediaIndeterminate
	}
}
