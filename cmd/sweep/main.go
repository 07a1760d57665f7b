package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/debjordan/protocols-JOR/config"
	"github.com/debjordan/protocols-JOR/internal/logger"
	"github.com/debjordan/protocols-JOR/internal/models"
	"github.com/debjordan/protocols-JOR/internal/parser"
	"github.com/debjordan/protocols-JOR/internal/pinger"
	"github.com/debjordan/protocols-JOR/internal/reporter"
	"github.com/debjordan/protocols-JOR/pkg/checkpoint"
	"github.com/debjordan/protocols-JOR/pkg/utils"
)

// main wires the reachability sweep: parse hosts, feed a bounded queue,
// probe from a worker pool, and stream results to a CSV reporter. SIGINT
// saves the unprocessed remainder as a resumable checkpoint.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	appLogger, closeLogFile := logger.New(cfg.LogFile, cfg.LogLevel)
	defer closeLogFile()
	slog.SetDefault(appLogger)

	appLogger.Info("Configuration loaded.", "workers", cfg.Workers, "timeout", cfg.Timeout, "dryrun", cfg.DryRun)
	utils.CheckFileDescriptorLimit(appLogger, cfg.Workers)

	var hosts []string
	if cfg.ResumeFile != "" {
		appLogger.Info("Attempting to resume sweep", "file", cfg.ResumeFile)
		resumed, err := checkpoint.LoadState(cfg.ResumeFile)
		if err != nil {
			appLogger.Warn("Failed to load checkpoint file, starting a new sweep.", "file", cfg.ResumeFile, "error", err)
		} else {
			appLogger.Info("Successfully loaded hosts from checkpoint.", "count", len(resumed))
			hosts = resumed
		}
	}
	if len(hosts) == 0 {
		hosts, err = parser.ParseHosts(cfg.HostInput)
		if err != nil {
			appLogger.Error("Error parsing hosts", "error", err)
			os.Exit(1)
		}
	}
	if len(hosts) == 0 {
		appLogger.Error("No hosts to probe. Check the input.")
		os.Exit(1)
	}
	appLogger.Info("Total hosts to probe.", "count", len(hosts))

	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	taskQueue := make(chan string, cfg.QueueSize)
	resultsChan := make(chan models.SweepResult, cfg.QueueSize)
	var wg, reporterWg, interruptWg sync.WaitGroup

	reporterWg.Add(1)
	go reporter.New(ctx, &reporterWg, resultsChan, cfg.OutputFile, appLogger).Run()

	prober := pinger.NewICMPProber(cfg.Timeout, appLogger)
	for i := 1; i <= cfg.Workers; i++ {
		wg.Add(1)
		go pinger.Worker(ctx, &wg, i, appLogger, prober, taskQueue, resultsChan, cfg.Delay, cfg.DryRun)
	}

	done := make(chan struct{})
	interruptWg.Add(1)
	go func() {
		defer interruptWg.Done()
		select {
		case <-done:
			return
		case <-sigChan:
		}
		appLogger.Info("Shutdown signal received. Saving state...")
		cancel()

		remaining := make([]string, 0, len(taskQueue))
		for host := range taskQueue {
			remaining = append(remaining, host)
		}
		if len(remaining) > 0 && cfg.ResumeFile != "" {
			currentDir, err := os.Getwd()
			if err != nil {
				appLogger.Error("Failed to get current directory", "error", err)
				return
			}
			checkpointFile := filepath.Join(currentDir, cfg.ResumeFile)
			if err := checkpoint.SaveState(remaining, checkpointFile); err != nil {
				appLogger.Error("Failed to save checkpoint", "error", err)
			} else {
				appLogger.Info("Checkpoint saved", "remaining_hosts", len(remaining))
			}
		}
	}()

	appLogger.Info("Starting sweep...")
	startTime := time.Now()

	go func() {
		defer close(taskQueue)
		for _, host := range hosts {
			select {
			case taskQueue <- host:
			case <-ctx.Done():
				appLogger.Debug("Context canceled while feeding hosts. Stopping.")
				return
			}
		}
	}()

	wg.Wait()
	close(done)
	interruptWg.Wait()
	appLogger.Info("All workers finished.")
	close(resultsChan)
	reporterWg.Wait()
	appLogger.Info("Reporter finished. Sweep complete.", "duration", time.Since(startTime))
}
