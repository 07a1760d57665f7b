package pinger

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-ping/ping"

	"github.com/debjordan/protocols-JOR/internal/models"
)

// Prober defines the interface for a single-host reachability probe.
type Prober interface {
	Probe(ctx context.Context, host string) models.SweepResult
}

// probeFunc is a package-level seam so tests can stub the network probe.
var probeFunc = libPingProbe

// ICMPProber probes hosts with a single unprivileged echo request each.
// Repetition across hosts and attempts lives in the worker pool, not here.
type ICMPProber struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewICMPProber creates a prober with a fixed per-host timeout.
func NewICMPProber(timeout time.Duration, logger *slog.Logger) *ICMPProber {
	return &ICMPProber{Timeout: timeout, Logger: logger}
}

// Probe sends one echo request to host and classifies the outcome.
func (p *ICMPProber) Probe(ctx context.Context, host string) models.SweepResult {
	start := time.Now()
	result := models.SweepResult{Timestamp: start, Host: host}

	if err := ctx.Err(); err != nil {
		result.Status = models.StatusError
		result.Error = err
		return result
	}

	timeout := p.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	alive, rtt, err := probeFunc(host, timeout)
	result.Latency = rtt
	switch {
	case err != nil:
		result.Status = models.StatusError
		result.Error = err
		p.Logger.Debug("Probe errored.", "host", host, "error", err)
	case alive:
		result.Status = models.StatusUp
		p.Logger.Debug("Host is reachable.", "host", host, "latency_ms", rtt.Seconds()*1000)
	default:
		result.Status = models.StatusDown
		p.Logger.Debug("Host is unreachable or timed out.", "host", host)
	}
	return result
}

// libPingProbe runs one unprivileged (UDP-mode) echo request via the
// go-ping library and reports whether a reply arrived and how fast.
func libPingProbe(host string, timeout time.Duration) (bool, time.Duration, error) {
	pg, err := ping.NewPinger(host)
	if err != nil {
		return false, 0, err
	}
	pg.Count = 1
	pg.Timeout = timeout
	pg.SetPrivileged(false)

	if err := pg.Run(); err != nil {
		return false, 0, err
	}
	stats := pg.Statistics()
	if stats.PacketsRecv == 0 {
		return false, 0, nil
	}
	return true, stats.AvgRtt, nil
}
