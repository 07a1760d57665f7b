package config

import (
	"flag"
	"os"
	"strings"
	"testing"
	"time"
)

func setCommandFlags(args []string) {
	// Reset the flag set to avoid interference between tests.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = append([]string{"cmd"}, args...)
}

func TestLoad(t *testing.T) {
	originalArgs := os.Args
	defer func() {
		os.Args = originalArgs
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	}()

	tests := []struct {
		name        string
		args        []string
		expectError bool
		errorMsg    string
		expectedCfg *Config
	}{
		{
			name:        "Missing hosts and resume",
			args:        []string{},
			expectError: true,
			errorMsg:    "missing required argument: --hosts or --resume",
		},
		{
			name:        "Invalid worker count (zero)",
			args:        []string{"--hosts=127.0.0.1", "--worker=0"},
			expectError: true,
			errorMsg:    "--worker must be a positive integer",
		},
		{
			name:        "Invalid worker count (negative)",
			args:        []string{"--hosts=127.0.0.1", "--worker=-1"},
			expectError: true,
			errorMsg:    "--worker must be a positive integer",
		},
		{
			name: "Default values",
			args: []string{"--hosts=127.0.0.1"},
			expectedCfg: &Config{
				HostInput:  "127.0.0.1",
				Workers:    1,
				Timeout:    2 * time.Second,
				Delay:      0,
				QueueSize:  1 * 1024,
				DryRun:     false,
				ResumeFile: "",
				OutputFile: "sweep.csv",
				LogFile:    "sweep.log",
				LogLevel:   "INFO",
			},
		},
		{
			name: "Custom values",
			args: []string{
				"--hosts=10.0.0.0/24",
				"--worker=10",
				"--timeout=5",
				"--delay=50",
				"--queue=2000",
				"--dryrun=true",
				"--resume=backup.json",
				"--output=out.csv",
				"--loglevel=DEBUG",
			},
			expectedCfg: &Config{
				HostInput:  "10.0.0.0/24",
				Workers:    10,
				Timeout:    5 * time.Second,
				Delay:      50 * time.Millisecond,
				QueueSize:  2000,
				DryRun:     true,
				ResumeFile: "backup.json",
				OutputFile: "out.csv",
				LogFile:    "sweep.log", // hardcoded in Load()
				LogLevel:   "DEBUG",
			},
		},
		{
			name: "Queue size calculated from workers",
			args: []string{"--hosts=127.0.0.1", "--worker=5"},
			expectedCfg: &Config{
				HostInput:  "127.0.0.1",
				Workers:    5,
				Timeout:    2 * time.Second,
				QueueSize:  5 * 1024,
				OutputFile: "sweep.csv",
				LogFile:    "sweep.log",
				LogLevel:   "INFO",
			},
		},
		{
			name: "Resume only is sufficient",
			args: []string{"--resume=checkpoint.json"},
			expectedCfg: &Config{
				ResumeFile: "checkpoint.json",
				Workers:    1,
				Timeout:    2 * time.Second,
				QueueSize:  1024,
				OutputFile: "sweep.csv",
				LogFile:    "sweep.log",
				LogLevel:   "INFO",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setCommandFlags(tt.args)
			cfg, err := Load()

			if tt.expectError {
				if err == nil {
					t.Fatalf("Expected error but got nil")
				}
				if !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error containing %q, got %q", tt.errorMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, but got: %v", err)
			}
			if cfg == nil {
				t.Fatalf("Expected config to be non-nil")
			}
			if *cfg != *tt.expectedCfg {
				t.Errorf("Config mismatch:\ngot  %+v\nwant %+v", *cfg, *tt.expectedCfg)
			}
		})
	}
}
