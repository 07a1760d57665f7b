package pinger

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/debjordan/protocols-JOR/internal/models"
	"github.com/debjordan/protocols-JOR/internal/testutils"
)

// TestICMPProber_Probe stubs the probe seam so the test is deterministic and
// independent of network conditions or ping sysctls.
func TestICMPProber_Probe(t *testing.T) {
	// Modifies the package-level probeFunc; must not run in parallel.
	logger, _ := testutils.SetupTestLogger()

	originalProbe := probeFunc
	defer func() { probeFunc = originalProbe }()

	tests := []struct {
		name       string
		alive      bool
		rtt        time.Duration
		err        error
		wantStatus models.SweepStatus
	}{
		{name: "reachable", alive: true, rtt: 12 * time.Millisecond, wantStatus: models.StatusUp},
		{name: "unreachable", alive: false, wantStatus: models.StatusDown},
		{name: "resolver error", err: errors.New("lookup nosuchhost: no such host"), wantStatus: models.StatusError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probeFunc = func(host string, timeout time.Duration) (bool, time.Duration, error) {
				return tt.alive, tt.rtt, tt.err
			}

			p := NewICMPProber(time.Second, logger)
			result := p.Probe(context.Background(), "host-under-test")

			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.wantStatus)
			}
			if result.Latency != tt.rtt {
				t.Errorf("latency = %v, want %v", result.Latency, tt.rtt)
			}
			if (tt.err != nil) != (result.Error != nil) {
				t.Errorf("error = %v, want %v", result.Error, tt.err)
			}
		})
	}
}

func TestICMPProber_Probe_CanceledContext(t *testing.T) {
	logger, _ := testutils.SetupTestLogger()

	originalProbe := probeFunc
	defer func() { probeFunc = originalProbe }()
	probeFunc = func(host string, timeout time.Duration) (bool, time.Duration, error) {
		t.Error("probe ran despite canceled context")
		return false, 0, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := NewICMPProber(time.Second, logger).Probe(ctx, "10.0.0.1")
	if result.Status != models.StatusError {
		t.Errorf("status = %s, want %s", result.Status, models.StatusError)
	}
}

// MockProber simulates a Prober for worker tests.
type MockProber struct {
	ProbeFunc func(ctx context.Context, host string) models.SweepResult
	mu        sync.Mutex
	Calls     []string
}

func (m *MockProber) Probe(ctx context.Context, host string) models.SweepResult {
	m.mu.Lock()
	m.Calls = append(m.Calls, host)
	m.mu.Unlock()
	if m.ProbeFunc != nil {
		return m.ProbeFunc(ctx, host)
	}
	return models.SweepResult{Timestamp: time.Now(), Host: host, Status: models.StatusUp, Latency: time.Millisecond}
}

func TestWorker_DrainsQueue(t *testing.T) {
	t.Parallel()
	logger, _ := testutils.SetupTestLogger()

	hosts := []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"}
	tasks := make(chan string, len(hosts))
	for _, h := range hosts {
		tasks <- h
	}
	close(tasks)

	results := make(chan models.SweepResult, len(hosts))
	mock := &MockProber{
		ProbeFunc: func(ctx context.Context, host string) models.SweepResult {
			status := models.StatusUp
			if host == "10.0.0.2" {
				status = models.StatusDown
			}
			return models.SweepResult{Timestamp: time.Now(), Host: host, Status: status}
		},
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go Worker(context.Background(), &wg, 1, logger, mock, tasks, results, 0, false)
	wg.Wait()
	close(results)

	var up, down []string
	for r := range results {
		if r.Status == models.StatusUp {
			up = append(up, r.Host)
		} else {
			down = append(down, r.Host)
		}
	}
	sort.Strings(up)
	if len(up) != 2 || len(down) != 1 || down[0] != "10.0.0.2" {
		t.Errorf("up=%v down=%v, want two up and 10.0.0.2 down", up, down)
	}

	mock.mu.Lock()
	calls := len(mock.Calls)
	mock.mu.Unlock()
	if calls != len(hosts) {
		t.Errorf("prober called %d times, want %d", calls, len(hosts))
	}
}

func TestWorker_DryRun(t *testing.T) {
	t.Parallel()
	logger, _ := testutils.SetupTestLogger()

	tasks := make(chan string, 1)
	tasks <- "10.0.0.1"
	close(tasks)
	results := make(chan models.SweepResult, 1)
	mock := &MockProber{}

	var wg sync.WaitGroup
	wg.Add(1)
	go Worker(context.Background(), &wg, 1, logger, mock, tasks, results, 0, true)
	wg.Wait()
	close(results)

	r := <-results
	if r.Status != models.StatusDryRun {
		t.Errorf("status = %s, want %s", r.Status, models.StatusDryRun)
	}
	mock.mu.Lock()
	defer mock.mu.Unlock()
	if len(mock.Calls) != 0 {
		t.Errorf("prober was called %d times during dry run, want 0", len(mock.Calls))
	}
}

func TestWorker_ContextCancel(t *testing.T) {
	t.Parallel()
	logger, _ := testutils.SetupTestLogger()

	tasks := make(chan string) // never fed, never closed
	results := make(chan models.SweepResult)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go Worker(ctx, &wg, 1, logger, &MockProber{}, tasks, results, 0, false)

	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not exit after context cancellation")
	}
}
