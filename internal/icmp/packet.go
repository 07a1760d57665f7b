package icmp

import "encoding/binary"

const (
	// HeaderLen is the fixed size of an ICMP echo header in bytes.
	HeaderLen = 8

	// TypeEchoRequest and TypeEchoReply are the ICMP message types for the
	// echo pair. Both use code 0.
	TypeEchoRequest = 8
	TypeEchoReply   = 0

	checksumOffset = 2
)

// EchoRequest describes one outbound echo request. The identifier
// disambiguates replies from other pingers sharing the same raw socket type
// and the sequence number distinguishes requests within a run. Immutable
// once built.
type EchoRequest struct {
	ID      uint16
	Seq     uint16
	Payload []byte
}

// Marshal serializes the request into transmit-ready wire bytes: an 8-byte
// header followed by the payload verbatim. The checksum covers the entire
// packet, so it is computed over the buffer with a zeroed checksum field and
// then patched in place.
func (r EchoRequest) Marshal() []byte {
	b := make([]byte, HeaderLen+len(r.Payload))
	b[0] = TypeEchoRequest
	b[1] = 0
	binary.BigEndian.PutUint16(b[4:6], r.ID)
	binary.BigEndian.PutUint16(b[6:8], r.Seq)
	copy(b[HeaderLen:], r.Payload)
	binary.BigEndian.PutUint16(b[checksumOffset:], Checksum(b))
	return b
}

// IPHeaderLen returns the byte length of the IPv4 header at the start of an
// inbound raw datagram: 4x the IHL nibble of the first byte. The buffer must
// be non-empty; no further validation is done here, the total length is
// checked by the caller before the ICMP region is decoded.
func IPHeaderLen(b []byte) int {
	return int(b[0]&0x0f) * 4
}

// Header is a decoded ICMP echo header with all multi-byte fields already
// byte-order corrected.
type Header struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
}

// ParseHeader decodes the 8-byte header region at the start of b.
// The caller guarantees len(b) >= HeaderLen.
func ParseHeader(b []byte) Header {
	return Header{
		Type:     b[0],
		Code:     b[1],
		Checksum: binary.BigEndian.Uint16(b[2:4]),
		ID:       binary.BigEndian.Uint16(b[4:6]),
		Seq:      binary.BigEndian.Uint16(b[6:8]),
	}
}

// MatchesReply reports whether h is the echo reply for the request sent with
// the given identifier and sequence number. Wrong type, wrong code, wrong
// identifier and wrong sequence are all rejected uniformly.
func (h Header) MatchesReply(id, seq uint16) bool {
	return h.Type == TypeEchoReply && h.Code == 0 && h.ID == id && h.Seq == seq
}
