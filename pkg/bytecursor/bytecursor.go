// Package bytecursor provides a random-access byte buffer with an internal
// cursor, used by the SMF codec for both reading parsed files and writing
// encoded ones. It has no knowledge of MIDI; it is the general-purpose
// collaborator the codec is built on.
package bytecursor

import (
	"encoding/binary"
	"fmt"
)

// Underflow is raised by any bounded read that runs past the end of the buffer.
type Underflow struct {
	Requested int
	Available int
}

func (e *Underflow) Error() string {
	return fmt.Sprintf("byte cursor underflow: requested %d bytes, %d available", e.Requested, e.Available)
}

// Cursor wraps a byte slice with a read/write position. The same type serves
// both decode (reading an existing slice) and encode (appending to a growing
// one): writes past the current length extend the buffer, matching the
// "reserve then back-patch" pattern the encoder needs for chunk lengths.
type Cursor struct {
	buf []byte
	pos int
}

// New wraps an existing byte slice for reading.
func New(data []byte) *Cursor {
	return &Cursor{buf: data}
}

// NewWriter returns an empty cursor ready to grow via the Write* methods.
func NewWriter() *Cursor {
	return &Cursor{buf: make([]byte, 0, 256)}
}

// Bytes returns the cursor's underlying buffer.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Pos returns the current cursor position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Remaining returns the number of unread bytes ahead of the cursor.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Advance moves the cursor forward by n bytes without reading them.
func (c *Cursor) Advance(n int) {
	c.pos += n
}

// Rewind moves the cursor back by n bytes.
func (c *Cursor) Rewind(n int) {
	c.pos -= n
}

// Seek moves the cursor to an absolute position. Seeking into the writing
// region (beyond the current length) is infallible: the encoder always
// writes a placeholder before seeking back to patch it, so there is never a
// gap to zero-fill.
func (c *Cursor) Seek(pos int) {
	c.pos = pos
}

func (c *Cursor) require(n int) error {
	if c.Remaining() < n {
		return &Underflow{Requested: n, Available: c.Remaining()}
	}
	return nil
}

// ReadU8 reads a single byte.
func (c *Cursor) ReadU8() (byte, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// ReadU16BE reads a big-endian 16-bit unsigned integer.
func (c *Cursor) ReadU16BE() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU16LE reads a little-endian 16-bit unsigned integer.
func (c *Cursor) ReadU16LE() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// ReadU24BE reads a big-endian 24-bit unsigned integer (returned as uint32).
func (c *Cursor) ReadU24BE() (uint32, error) {
	if err := c.require(3); err != nil {
		return 0, err
	}
	v := uint32(c.buf[c.pos])<<16 | uint32(c.buf[c.pos+1])<<8 | uint32(c.buf[c.pos+2])
	c.pos += 3
	return v, nil
}

// ReadU32BE reads a big-endian 32-bit unsigned integer.
func (c *Cursor) ReadU32BE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadU32LE reads a little-endian 32-bit unsigned integer.
func (c *Cursor) ReadU32LE() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// ReadBytes reads n raw bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.require(n); err != nil {
		return nil, err
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadAsciiString reads n bytes and returns them as a string verbatim.
func (c *Cursor) ReadAsciiString(n int) (string, error) {
	b, err := c.ReadBytes(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadUtf8Zstring reads n bytes and returns them as a UTF-8 string, the same
// shape as ReadAsciiString: SMF meta text is not NUL-terminated on the wire,
// the caller already knows the length from a declared length or VLQ.
func (c *Cursor) ReadUtf8Zstring(n int) (string, error) {
	return c.ReadAsciiString(n)
}

func (c *Cursor) ensureWritable(n int) {
	need := c.pos + n
	if need > len(c.buf) {
		if need > cap(c.buf) {
			grown := make([]byte, need)
			copy(grown, c.buf)
			c.buf = grown
		} else {
			c.buf = c.buf[:need]
		}
	}
}

// WriteU8 writes a single byte, growing the buffer if necessary.
func (c *Cursor) WriteU8(b byte) {
	c.ensureWritable(1)
	c.buf[c.pos] = b
	c.pos++
}

// WriteU16BE writes a big-endian 16-bit unsigned integer.
func (c *Cursor) WriteU16BE(v uint16) {
	c.ensureWritable(2)
	binary.BigEndian.PutUint16(c.buf[c.pos:], v)
	c.pos += 2
}

// WriteU24BE writes a big-endian 24-bit unsigned integer (low 24 bits of v).
func (c *Cursor) WriteU24BE(v uint32) {
	c.ensureWritable(3)
	c.buf[c.pos] = byte(v >> 16)
	c.buf[c.pos+1] = byte(v >> 8)
	c.buf[c.pos+2] = byte(v)
	c.pos += 3
}

// WriteU32BE writes a big-endian 32-bit unsigned integer.
func (c *Cursor) WriteU32BE(v uint32) {
	c.ensureWritable(4)
	binary.BigEndian.PutUint32(c.buf[c.pos:], v)
	c.pos += 4
}

// WriteBytes appends raw bytes at the cursor, growing the buffer if necessary.
func (c *Cursor) WriteBytes(b []byte) {
	c.ensureWritable(len(b))
	copy(c.buf[c.pos:], b)
	c.pos += len(b)
}

// WriteAsciiString writes a string's bytes verbatim.
func (c *Cursor) WriteAsciiString(s string) {
	c.WriteBytes([]byte(s))
}
