// Package icmp implements a single IPv4 ICMP echo request/reply exchange
// over a raw socket: wire encoding with the Internet checksum, a bounded
// wait for the reply, and validation/round-trip measurement of the answer.
package icmp

import (
	"fmt"
	"log/slog"
	"net/netip"
	"time"
)

// Readiness is the tri-state outcome of a bounded wait on a socket.
type Readiness int

const (
	Ready Readiness = iota
	TimedOut
)

const (
	// DefaultTimeout bounds the reply wait when an Exchanger is constructed
	// with a zero timeout.
	DefaultTimeout = 2 * time.Second

	// ttlOffset is the byte offset of the TTL field within the IPv4 header.
	ttlOffset = 8

	maxDatagram = 1500
)

// Socket is the raw IPv4/ICMP capability an Exchanger borrows for the
// duration of one exchange. The opener keeps ownership; the Exchanger never
// closes it and assumes a single caller uses it at a time.
type Socket interface {
	// SendTo transmits one packet and returns the byte count written.
	SendTo(pkt []byte, dst netip.Addr) (int, error)
	// WaitReadable blocks until data is ready, the timeout elapses, or the
	// wait mechanism itself fails.
	WaitReadable(timeout time.Duration) (Readiness, error)
	// RecvFrom reads one datagram and captures the sender's address.
	RecvFrom(buf []byte) (int, netip.Addr, error)
}

// PingResult reports the outcome of one echo exchange. It is always
// produced; on any failure path Success is false and every field other than
// ID and Seq keeps its zero value.
type PingResult struct {
	Success       bool
	RTT           time.Duration
	Source        netip.Addr
	BytesReceived int
	TTL           int
	Seq           uint16
	ID            uint16
}

// RTTMillis returns the round-trip time in fractional milliseconds.
func (r PingResult) RTTMillis() float64 {
	return r.RTT.Seconds() * 1000
}

// Exchanger drives single request/reply cycles over a borrowed socket.
// It holds no state across calls; repetition and retry policy belong to the
// caller, which must supply a fresh sequence number per attempt.
type Exchanger struct {
	Timeout time.Duration
	logger  *slog.Logger
}

// NewExchanger creates an Exchanger with a fixed reply timeout.
func NewExchanger(timeout time.Duration, parentLogger *slog.Logger) *Exchanger {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Exchanger{
		Timeout: timeout,
		logger:  parentLogger.With(slog.String("component", "icmp")),
	}
}

// SendPing runs one full echo exchange against dst: send, bounded wait,
// single receive, validate, measure. Every failure (send error, timeout,
// wait error, receive error, truncated datagram, non-matching reply) ends
// the attempt with Success=false; no condition is retried internally and a
// single non-matching reply is not followed by a second receive.
func (e *Exchanger) SendPing(sock Socket, dst netip.Addr, id, seq uint16) PingResult {
	result := PingResult{ID: id, Seq: seq}

	// The payload content is filler for humans reading captures; it carries
	// no protocol semantics and is not inspected on receipt.
	sentAt := time.Now()
	req := EchoRequest{ID: id, Seq: seq, Payload: []byte(fmt.Sprintf("PING_PAYLOAD_%d", seq))}
	pkt := req.Marshal()

	n, err := sock.SendTo(pkt, dst)
	if err != nil || n <= 0 {
		e.logger.Debug("send failed", "dst", dst.String(), "seq", seq, "error", err)
		return result
	}

	ready, err := sock.WaitReadable(e.Timeout)
	if err != nil {
		e.logger.Debug("wait for reply failed", "dst", dst.String(), "seq", seq, "error", err)
		return result
	}
	if ready == TimedOut {
		e.logger.Debug("timed out waiting for reply", "dst", dst.String(), "seq", seq, "timeout", e.Timeout)
		return result
	}

	buf := make([]byte, maxDatagram)
	n, from, err := sock.RecvFrom(buf)
	recvAt := time.Now()
	if err != nil || n <= 0 {
		e.logger.Debug("receive failed", "dst", dst.String(), "seq", seq, "error", err)
		return result
	}

	ipLen := IPHeaderLen(buf[:n])
	if n < ipLen+HeaderLen {
		e.logger.Debug("malformed reply, datagram too short", "bytes", n, "ip_header_len", ipLen)
		return result
	}

	hdr := ParseHeader(buf[ipLen:])
	if !hdr.MatchesReply(id, seq) {
		e.logger.Debug("discarding non-matching reply",
			"type", hdr.Type, "code", hdr.Code, "id", hdr.ID, "seq", hdr.Seq)
		return result
	}

	result.Success = true
	result.RTT = recvAt.Sub(sentAt)
	result.Source = from
	result.TTL = int(buf[ttlOffset])
	result.BytesReceived = n - ipLen - HeaderLen
	return result
}
