package smf

import "github.com/zurustar/smfcodec/pkg/bytecursor"

const (
	mthdChunkType = "MThd"
	mtrkChunkType = "MTrk"
)

// decodeTimeDivision interprets the 16-bit MThd division field per the high
// bit of its first byte.
func decodeTimeDivision(raw uint16) TimeDivision {
	if raw&0x8000 != 0 {
		return TimeDivision{
			Kind:            TimeDivisionSMPTE,
			FramesPerSecond: uint8(raw>>8) & 0x7F,
			TicksPerFrame:   uint8(raw),
		}
	}
	return TimeDivision{Kind: TimeDivisionPPQ, PPQ: raw & 0x7FFF}
}

// encodeTimeDivision is the inverse of decodeTimeDivision.
func encodeTimeDivision(td TimeDivision) uint16 {
	if td.Kind == TimeDivisionSMPTE {
		return uint16(0x80|td.FramesPerSecond&0x7F)<<8 | uint16(td.TicksPerFrame)
	}
	return td.PPQ & 0x7FFF
}

// decodeHeader reads the MThd chunk: a 4-byte ASCII tag, a 4-byte big-endian
// length (tolerated if larger than the standard 6, with the excess skipped),
// format, track count, and time division.
func decodeHeader(c *bytecursor.Cursor) (File, error) {
	tag, err := c.ReadAsciiString(4)
	if err != nil {
		return File{}, wrapUnderflow(err)
	}
	if tag != mthdChunkType {
		debugf("header chunk type %q is not %q, continuing anyway", tag, mthdChunkType)
	}

	length, err := c.ReadU32BE()
	if err != nil {
		return File{}, wrapUnderflow(err)
	}

	format, err := c.ReadU16BE()
	if err != nil {
		return File{}, wrapUnderflow(err)
	}
	trackCount, err := c.ReadU16BE()
	if err != nil {
		return File{}, wrapUnderflow(err)
	}
	divisionRaw, err := c.ReadU16BE()
	if err != nil {
		return File{}, wrapUnderflow(err)
	}

	if length > 6 {
		excess := int(length) - 6
		if excess > c.Remaining() {
			excess = c.Remaining()
		}
		c.Advance(excess)
		debugf("MThd length %d exceeds standard 6, skipping %d excess bytes", length, excess)
	}

	return File{
		Format:       format,
		TrackCount:   trackCount,
		TimeDivision: decodeTimeDivision(divisionRaw),
	}, nil
}

// encodeHeader writes the MThd chunk.
func encodeHeader(c *bytecursor.Cursor, f *File) {
	c.WriteAsciiString(mthdChunkType)
	c.WriteU32BE(6)
	c.WriteU16BE(f.Format)
	c.WriteU16BE(f.TrackCount)
	c.WriteU16BE(encodeTimeDivision(f.TimeDivision))
}
