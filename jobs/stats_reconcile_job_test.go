package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingReconciler struct {
	calls atomic.Int32
	err   error
}

func (r *countingReconciler) ReconcileAll(ctx context.Context) (int, error) {
	r.calls.Add(1)
	return 1, r.err
}

func TestStatsReconcileJob_RunsImmediatelyAndOnTicks(t *testing.T) {
	rec := &countingReconciler{}
	job := NewStatsReconcileJob(rec, 10*time.Millisecond)
	job.Start()

	deadline := time.Now().Add(2 * time.Second)
	for rec.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()

	if got := rec.calls.Load(); got < 3 {
		t.Fatalf("expected at least 3 runs, got %d", got)
	}

	after := rec.calls.Load()
	time.Sleep(30 * time.Millisecond)
	if rec.calls.Load() != after {
		t.Error("job kept running after Stop")
	}
}

func TestStatsReconcileJob_ErrorsDoNotStopJob(t *testing.T) {
	rec := &countingReconciler{err: errors.New("db down")}
	job := NewStatsReconcileJob(rec, 10*time.Millisecond)
	job.Start()

	deadline := time.Now().Add(2 * time.Second)
	for rec.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	job.Stop()
	job.Stop()

	if rec.calls.Load() < 2 {
		t.Fatalf("expected the job to retry after an error, got %d runs", rec.calls.Load())
	}
}
