package utils

import (
	"log/slog"
	"os"
	"runtime"
	"syscall"
)

// CheckPrivileges exits if the process lacks the rights to open a raw
// socket. Raw IPv4/ICMP sockets require root (or CAP_NET_RAW) on POSIX.
func CheckPrivileges(logger *slog.Logger) {
	if runtime.GOOS != "windows" && os.Geteuid() != 0 {
		logger.Error("Running as non-root. Raw socket mode requires root privileges.")
		os.Exit(1)
	}
}

// CheckFileDescriptorLimit warns if the worker count might exceed the open
// file limit on POSIX.
func CheckFileDescriptorLimit(logger *slog.Logger, workers int) {
	if runtime.GOOS == "windows" {
		return
	}
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err == nil {
		if uint64(workers) >= rLimit.Cur-100 { // 100 is a safety margin
			logger.Warn("Worker count is close to the file descriptor limit.",
				"workers", workers, "limit", rLimit.Cur)
		}
	}
}
