// File: /jobs/stats_reconcile_job.go
package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"photoshare-api/logging"
)

// Reconciler recomputes denormalized reaction counters and reports how many
// photos it repaired.
type Reconciler interface {
	ReconcileAll(ctx context.Context) (int, error)
}

// StatsReconcileJob periodically rebuilds photo reaction stats from the
// stored reactions.
type StatsReconcileJob struct {
	reconciler Reconciler
	interval   time.Duration
	timeout    time.Duration
	logger     *zap.Logger
	ticker     *time.Ticker
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// NewStatsReconcileJob creates the job. interval must be positive.
func NewStatsReconcileJob(reconciler Reconciler, interval time.Duration) *StatsReconcileJob {
	return &StatsReconcileJob{
		reconciler: reconciler,
		interval:   interval,
		timeout:    interval,
		logger:     logging.WithComponent("stats_reconcile_job"),
		done:       make(chan struct{}),
	}
}

// Start begins the reconcile job
func (j *StatsReconcileJob) Start() {
	j.ticker = time.NewTicker(j.interval)
	j.logger.Info("Stats reconcile job started", zap.Duration("interval", j.interval))

	j.wg.Add(1)
	go func() {
		defer j.wg.Done()

		j.reconcile()

		for {
			select {
			case <-j.ticker.C:
				j.reconcile()
			case <-j.done:
				j.logger.Info("Stats reconcile job stopped")
				return
			}
		}
	}()
}

// Stop stops the job and waits for an in-flight run to finish.
func (j *StatsReconcileJob) Stop() {
	j.stopOnce.Do(func() {
		if j.ticker != nil {
			j.ticker.Stop()
		}
		close(j.done)
	})
	j.wg.Wait()
}

func (j *StatsReconcileJob) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	repaired, err := j.reconciler.ReconcileAll(ctx)
	if err != nil {
		j.logger.Error("Error during stats reconcile", zap.Error(err))
		return
	}
	if repaired > 0 {
		j.logger.Warn("Repaired drifted reaction stats", zap.Int("photos", repaired))
		return
	}
	j.logger.Debug("Reaction stats consistent")
}
