// Package cleanup runs the recurring age-based sweep that keeps the images
// table small. The scheduler is owned by the process lifecycle: main starts
// it after the store is ready and stops it during graceful shutdown.
//
// Every failure inside a sweep is logged and swallowed; a broken sweep never
// crashes the process and never delays the next tick. Deployments that cannot
// host a long-lived ticker (short-lived serverless invocations) disable the
// scheduler and drive RunSweep through an external trigger instead; both
// paths call the same store operation.
package cleanup

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

// Sweeper is the single capability the scheduler needs from the store layer:
// delete everything older than the retention window and report the count.
type Sweeper interface {
	CleanupOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

var (
	sweepDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cleanup_images_deleted_total",
		Help: "Total number of image records removed by the cleanup sweep.",
	})
	sweepErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cleanup_sweep_errors_total",
		Help: "Total number of cleanup sweeps that failed.",
	})
	sweepDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cleanup_sweep_duration_seconds",
		Help:    "Duration of cleanup sweeps in seconds.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(sweepDeleted, sweepErrors, sweepDuration)
}

// Scheduler invokes a Sweeper on a fixed period.
type Scheduler struct {
	// Interval between sweeps; e.g. one minute.
	Interval time.Duration
	// Retention is the maximum record age; anything older is deleted.
	Retention time.Duration
	// Store performs the actual delete.
	Store Sweeper

	done chan struct{}
}

// New returns a stopped scheduler with the given period and retention.
func New(store Sweeper, interval, retention time.Duration) *Scheduler {
	return &Scheduler{
		Interval:  interval,
		Retention: retention,
		Store:     store,
		done:      make(chan struct{}),
	}
}

// Start launches the ticker goroutine. It returns immediately; the loop ends
// when ctx is cancelled or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	log.Info().
		Dur("interval", s.Interval).
		Dur("retention", s.Retention).
		Msg("cleanup scheduler started")

	go func() {
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.done:
				return
			case <-ticker.C:
				RunSweep(ctx, s.Store, s.Retention)
			}
		}
	}()
}

// Stop terminates the ticker loop. Safe to call once; an in-flight sweep
// runs to completion.
func (s *Scheduler) Stop() {
	close(s.done)
}

// RunSweep executes one sweep: delete everything older than retention, log
// the outcome, and record metrics. Errors are logged and swallowed so the
// caller never has to handle them; the count removed is returned for
// externally triggered sweeps that report it.
func RunSweep(ctx context.Context, store Sweeper, retention time.Duration) int64 {
	start := time.Now()
	deleted, err := store.CleanupOlderThan(ctx, retention)
	sweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		sweepErrors.Inc()
		log.Error().Err(err).Msg("cleanup sweep failed")
		return 0
	}
	if deleted > 0 {
		sweepDeleted.Add(float64(deleted))
		log.Info().Int64("deleted", deleted).Msg("cleanup sweep removed old images")
	}
	return deleted
}
