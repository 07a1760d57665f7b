package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config holds all configuration settings for the sweep application.
type Config struct {
	HostInput  string
	Workers    int
	Timeout    time.Duration
	Delay      time.Duration
	QueueSize  int
	DryRun     bool
	ResumeFile string
	OutputFile string
	LogFile    string
	LogLevel   string
}

// Load parses command-line flags and returns a populated Config struct.
func Load() (*Config, error) {
	hostInput := flag.String("hosts", "", "Required: IPv4/CIDR/host list or a CSV/TXT file with hosts.")
	workers := flag.Int("worker", 1, "Number of concurrent worker threads.")
	timeoutSec := flag.Int("timeout", 2, "Per-host probe timeout in seconds.")
	delay := flag.Int("delay", 0, "Per-probe delay in milliseconds.")
	queue := flag.Int("queue", 0, "Bounded task queue size (default: workers * 1024).")
	dryRun := flag.Bool("dryrun", false, "Perform a dry run without sending any packets.")
	resumeFile := flag.String("resume", "", "Resume a sweep from a checkpoint.json file.")
	outputFile := flag.String("output", "sweep.csv", "File to save sweep results.")
	logLevel := flag.String("loglevel", "INFO", "Log level: DEBUG, INFO, WARN, ERROR.")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "A concurrent ICMP reachability sweep over many hosts.")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *hostInput == "" && *resumeFile == "" {
		flag.Usage()
		return nil, fmt.Errorf("missing required argument: --hosts or --resume")
	}
	if *workers <= 0 {
		return nil, fmt.Errorf("--worker must be a positive integer")
	}

	queueSize := *queue
	if queueSize == 0 {
		queueSize = *workers * 1024
	}

	cfg := &Config{
		HostInput:  *hostInput,
		Workers:    *workers,
		Timeout:    time.Duration(*timeoutSec) * time.Second,
		Delay:      time.Duration(*delay) * time.Millisecond,
		QueueSize:  queueSize,
		DryRun:     *dryRun,
		ResumeFile: *resumeFile,
		OutputFile: *outputFile,
		LogFile:    "sweep.log",
		LogLevel:   *logLevel,
	}

	return cfg, nil
}
