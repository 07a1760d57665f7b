package pinger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/debjordan/protocols-JOR/internal/models"
)

// Worker is a goroutine that pulls hosts from a queue, probes them, and
// sends results downstream until the queue closes or the context ends.
func Worker(ctx context.Context, wg *sync.WaitGroup, id int, parentLogger *slog.Logger, p Prober, tasks <-chan string, results chan<- models.SweepResult, delay time.Duration, dryRun bool) {
	defer wg.Done()
	workerLogger := parentLogger.With(slog.Int("worker_id", id))
	workerLogger.Debug("Worker started.")

	for {
		select {
		case host, ok := <-tasks:
			if !ok {
				workerLogger.Debug("Task channel closed. Shutting down.")
				return
			}

			var result models.SweepResult
			if dryRun {
				workerLogger.Info("Dry run for host", "host", host)
				result = models.SweepResult{Timestamp: time.Now(), Host: host, Status: models.StatusDryRun}
			} else {
				workerLogger.Debug("Probing host", "host", host)
				result = p.Probe(ctx, host)
				workerLogger.Debug("Probe result", "host", host, "status", result.Status, "latency_ms", result.Latency.Seconds()*1000)
			}

			select {
			case results <- result:
			case <-ctx.Done():
				workerLogger.Warn("Context canceled. Dropping result for host.", "host", host)
				return
			}
			if delay > 0 {
				time.Sleep(delay)
			}
		case <-ctx.Done():
			workerLogger.Info("Shutdown signal received. Exiting.")
			return
		}
	}
}
