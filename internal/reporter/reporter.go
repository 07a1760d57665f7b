package reporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"sync"

	"github.com/debjordan/protocols-JOR/internal/models"
)

// Reporter writes sweep results to a CSV file in a separate goroutine.
type Reporter struct {
	ctx         context.Context
	wg          *sync.WaitGroup
	resultsChan <-chan models.SweepResult
	outputFile  string
	logger      *slog.Logger
}

// New creates a new Reporter instance.
func New(ctx context.Context, wg *sync.WaitGroup, resultsChan <-chan models.SweepResult, outputFile string, logger *slog.Logger) *Reporter {
	return &Reporter{ctx, wg, resultsChan, outputFile, logger}
}

// Run listens for results and writes them to the CSV until the channel
// closes. On context cancellation it drains whatever is already queued so an
// interrupted sweep still lands on disk.
func (r *Reporter) Run() {
	defer r.wg.Done()
	reporterLogger := r.logger.With(slog.String("component", "reporter"))

	file, err := os.Create(r.outputFile)
	if err != nil {
		reporterLogger.Error("Failed to create output file, exiting.", "file", r.outputFile, "error", err)
		os.Exit(1)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(models.CSVHeader()); err != nil {
		reporterLogger.Error("Failed to write CSV header.", "error", err)
		return
	}
	reporterLogger.Info("Reporter started.", "file", r.outputFile)

	for {
		select {
		case result, ok := <-r.resultsChan:
			if !ok {
				reporterLogger.Info("Results channel closed. Shutting down.")
				return
			}
			if err := writer.Write(result.ToCSVRow()); err != nil {
				reporterLogger.Error("Failed to write record.", "error", err)
			}
		case <-r.ctx.Done():
			reporterLogger.Info("Shutdown signal received. Draining remaining results...")
			for result := range r.resultsChan {
				_ = writer.Write(result.ToCSVRow())
			}
			return
		}
	}
}
