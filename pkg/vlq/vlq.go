// Package vlq reads and writes the variable-length quantity encoding used by
// Standard MIDI Files for delta times and meta-event lengths: 7-bit groups,
// most-significant group first, with the high bit of every non-terminal byte
// set to signal continuation.
package vlq

import "github.com/zurustar/smfcodec/pkg/bytecursor"

// MaxBytes is the widest VLQ this codec accepts on read (4 bytes, 28 bits).
const MaxBytes = 4

// Read decodes a VLQ from the cursor. It stops at the first byte with the
// high bit clear, or when the cursor runs out of bytes — a pragmatic
// termination that avoids raising Underflow on truncated input
// (almerlucke-gomidi's readVariableLengthInteger takes the same stance).
func Read(c *bytecursor.Cursor) (uint32, error) {
	var result uint32
	for i := 0; i < MaxBytes; i++ {
		if c.Remaining() == 0 {
			break
		}
		b, err := c.ReadU8()
		if err != nil {
			return result, err
		}
		result = (result << 7) | uint32(b&0x7F)
		if b&0x80 == 0 {
			break
		}
	}
	return result, nil
}

// Write encodes n as a VLQ and appends it to the cursor, using the minimum
// number of bytes. n=0 writes a single zero byte.
func Write(c *bytecursor.Cursor, n uint32) {
	var groups [MaxBytes]byte
	count := 0
	groups[0] = byte(n & 0x7F)
	count = 1
	n >>= 7
	for n > 0 {
		groups[count] = byte(n&0x7F) | 0x80
		count++
		n >>= 7
	}
	for i := count - 1; i >= 0; i-- {
		c.WriteU8(groups[i])
	}
}

// Bytes is a convenience wrapper for tests and callers that just want the
// encoded bytes of n without managing a cursor.
func Bytes(n uint32) []byte {
	c := bytecursor.NewWriter()
	Write(c, n)
	return c.Bytes()
}
