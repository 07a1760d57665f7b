package models

import (
	"fmt"
	"time"
)

// SweepStatus is the outcome classification of one reachability probe.
type SweepStatus string

const (
	StatusUp     SweepStatus = "UP"
	StatusDown   SweepStatus = "DOWN"
	StatusError  SweepStatus = "ERROR"
	StatusDryRun SweepStatus = "DRYRUN"
)

// SweepResult holds the outcome of a single host reachability probe.
type SweepResult struct {
	Timestamp time.Time
	Host      string
	Status    SweepStatus
	Latency   time.Duration
	Error     error
}

// ToCSVRow converts a SweepResult into a slice of strings for CSV writing.
func (r *SweepResult) ToCSVRow() []string {
	status := string(r.Status)
	if r.Status == StatusError && r.Error != nil {
		status = fmt.Sprintf("ERROR: %v", r.Error)
	}
	return []string{
		r.Timestamp.Format(time.RFC3339),
		r.Host,
		status,
		fmt.Sprintf("%.2f", r.Latency.Seconds()*1000), // Latency in ms
	}
}

// CSVHeader returns the header row for the results CSV file.
func CSVHeader() []string {
	return []string{"timestamp", "host", "status", "latency_ms"}
}
