package icmp

import (
	"fmt"
	"net/netip"
	"time"

	"golang.org/x/sys/unix"
)

// RawSocket is an AF_INET/SOCK_RAW/IPPROTO_ICMP file descriptor implementing
// Socket. Whoever opens it owns it and must close it; Exchangers only borrow
// it. Opening requires root or CAP_NET_RAW.
type RawSocket struct {
	fd int
}

// OpenRaw creates a raw socket bound to the IPv4 ICMP protocol.
func OpenRaw() (*RawSocket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_ICMP)
	if err != nil {
		return nil, fmt.Errorf("open raw icmp socket: %w", err)
	}
	return &RawSocket{fd: fd}, nil
}

// Close releases the descriptor. Only the opener may call this.
func (s *RawSocket) Close() error {
	return unix.Close(s.fd)
}

// SendTo transmits pkt to the IPv4 destination.
func (s *RawSocket) SendTo(pkt []byte, dst netip.Addr) (int, error) {
	if !dst.Is4() {
		return 0, fmt.Errorf("destination %s is not IPv4", dst)
	}
	sa := &unix.SockaddrInet4{Addr: dst.As4()}
	if err := unix.Sendto(s.fd, pkt, 0, sa); err != nil {
		return 0, fmt.Errorf("sendto %s: %w", dst, err)
	}
	return len(pkt), nil
}

// WaitReadable blocks in select(2) until the descriptor has data, the
// timeout elapses, or select itself fails.
func (s *RawSocket) WaitReadable(timeout time.Duration) (Readiness, error) {
	var fds unix.FdSet
	fds.Set(s.fd)
	tv := unix.NsecToTimeval(timeout.Nanoseconds())

	n, err := unix.Select(s.fd+1, &fds, nil, nil, &tv)
	if err != nil {
		return TimedOut, fmt.Errorf("select: %w", err)
	}
	if n == 0 {
		return TimedOut, nil
	}
	return Ready, nil
}

// RecvFrom reads one datagram, including its IP header, and reports the
// sender's address.
func (s *RawSocket) RecvFrom(buf []byte) (int, netip.Addr, error) {
	n, from, err := unix.Recvfrom(s.fd, buf, 0)
	if err != nil {
		return 0, netip.Addr{}, fmt.Errorf("recvfrom: %w", err)
	}
	var src netip.Addr
	if sa, ok := from.(*unix.SockaddrInet4); ok {
		src = netip.AddrFrom4(sa.Addr)
	}
	return n, src, nil
}
