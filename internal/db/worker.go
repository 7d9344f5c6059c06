package db

import (
	"context"
	"database/sql"
	"errors"
)

// ErrQueueFull is returned by Background when the job buffer is full.
// Callers treat archival as best-effort, so they log and move on.
var ErrQueueFull = errors.New("db worker queue full")

type TxFn func(ctx context.Context, tx *sql.Tx) error

type job struct {
	ctx context.Context
	fn  TxFn
	ch  chan error // nil for fire-and-forget jobs
}

// Worker serializes all writes through one goroutine, which is the safe
// way to drive a single-connection SQLite database from concurrent HTTP
// handlers. Do blocks for the result; Background enqueues and returns.
type Worker struct {
	db   *sql.DB
	jobs chan job
	done chan struct{}
}

func NewWorker(db *sql.DB) *Worker {
	w := &Worker{
		db:   db,
		jobs: make(chan job, 256),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

// Close drains the remaining queue and stops the worker.
func (w *Worker) Close() {
	close(w.jobs)
	<-w.done
}

// Do runs fn in a transaction and waits for the result.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	ch := make(chan error, 1)
	j := job{ctx: ctx, fn: fn, ch: ch}

	// Give up on enqueue if the caller's context expires while the buffer is full.
	select {
	case w.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	}

	// Stop waiting if the caller's context expires while the job is queued
	// or executing. The worker loop will still complete the transaction;
	// the result lands in the buffered ch and is discarded.
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Background enqueues fn without waiting for the result. The response
// path must never block on archive writes, so a full buffer drops the
// job with ErrQueueFull instead of stalling the caller. The job runs
// with a background context: once accepted it is not tied to the
// request's lifetime.
func (w *Worker) Background(fn TxFn) error {
	j := job{ctx: context.Background(), fn: fn}
	select {
	case w.jobs <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *Worker) loop() {
	defer close(w.done)

	for j := range w.jobs {
		err := w.run(j)
		if j.ch != nil {
			j.ch <- err
		}
	}
}

func (w *Worker) run(j job) error {
	tx, err := w.db.BeginTx(j.ctx, nil)
	if err != nil {
		return err
	}

	if err := j.fn(j.ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
