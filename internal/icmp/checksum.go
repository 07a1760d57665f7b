package icmp

// Checksum computes the RFC 1071 Internet checksum over data.
// 16-bit words are summed in network byte order, the carry bits are folded
// back into the low 16 bits, and the one's complement of the result is
// returned. An odd trailing byte is treated as the high byte of a final
// zero-padded word.
func Checksum(data []byte) uint16 {
	var sum uint32

	for i := 0; i+1 < len(data); i += 2 {
		sum += uint32(data[i])<<8 | uint32(data[i+1])
	}
	if len(data)%2 == 1 {
		sum += uint32(data[len(data)-1]) << 8
	}

	// Fold 32-bit sum to 16 bits.
	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}

	return ^uint16(sum)
}
