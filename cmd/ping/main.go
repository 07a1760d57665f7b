package main

import (
	"flag"
	"fmt"
	"net"
	"net/netip"
	"os"
	"time"

	"github.com/debjordan/protocols-JOR/internal/icmp"
	"github.com/debjordan/protocols-JOR/internal/logger"
	"github.com/debjordan/protocols-JOR/pkg/utils"
)

func main() {
	count := flag.Int("count", 1, "Number of echo requests to send, one per second.")
	timeout := flag.Duration("timeout", icmp.DefaultTimeout, "Reply timeout per request.")
	logLevel := flag.String("loglevel", "WARN", "Log level: DEBUG, INFO, WARN, ERROR.")
	logFile := flag.String("logfile", "ping.log", "Log file path.")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <IPv4 address or hostname>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	appLogger, closeLogFile := logger.New(*logFile, *logLevel)
	defer closeLogFile()

	dst, err := resolveIPv4(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid destination %q: %v\n", flag.Arg(0), err)
		os.Exit(1)
	}

	utils.CheckPrivileges(appLogger)

	sock, err := icmp.OpenRaw()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open raw socket: %v\n", err)
		os.Exit(1)
	}
	defer sock.Close()

	// Low 16 bits of the pid disambiguate our replies from other pingers.
	id := uint16(os.Getpid() & 0xffff)
	exchanger := icmp.NewExchanger(*timeout, appLogger)

	fmt.Printf("PING %s with ID=%d\n", dst, id)

	received := 0
	for seq := uint16(1); int(seq) <= *count; seq++ {
		result := exchanger.SendPing(sock, dst, id, seq)
		if result.Success {
			received++
			fmt.Printf("Reply from %s: bytes=%d seq=%d TTL=%d time=%.3fms\n",
				result.Source, result.BytesReceived, result.Seq, result.TTL, result.RTTMillis())
		} else {
			fmt.Printf("No reply for seq=%d\n", seq)
		}
		if int(seq) < *count {
			time.Sleep(time.Second)
		}
	}

	if received == 0 {
		fmt.Printf("Ping to %s failed\n", dst)
		os.Exit(1)
	}
}

// resolveIPv4 accepts a dotted-decimal IPv4 literal or resolves a hostname
// to its first IPv4 address.
func resolveIPv4(host string) (netip.Addr, error) {
	if addr, err := netip.ParseAddr(host); err == nil {
		addr = addr.Unmap()
		if !addr.Is4() {
			return netip.Addr{}, fmt.Errorf("not an IPv4 address")
		}
		return addr, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return netip.Addr{}, err
	}
	for _, ip := range ips {
		if v4 := ip.To4(); v4 != nil {
			return netip.AddrFrom4([4]byte(v4)), nil
		}
	}
	return netip.Addr{}, fmt.Errorf("no IPv4 address found")
}
