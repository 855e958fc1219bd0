package smf

import (
	"github.com/zurustar/smfcodec/pkg/bytecursor"
	"github.com/zurustar/smfcodec/pkg/vlq"
)

// Encode emits a File as SMF bytes. The encoder never performs running-status
// compression: every event is written with its own fresh status byte, even
// when two consecutive events share one (see SPEC_FULL.md §9's note on the
// round-trip normalization this implies).
func Encode(f *File) ([]byte, error) {
	c := bytecursor.NewWriter()
	encodeHeader(c, f)

	for i := range f.Tracks {
		if err := encodeTrack(c, &f.Tracks[i]); err != nil {
			return nil, err
		}
	}

	return c.Bytes(), nil
}

// encodeTrack implements the ChunkHeaderPending -> LengthReserved ->
// EventsWriting -> LengthPatched -> Done state machine: reserve four bytes
// for the chunk length, write every event, then seek back and patch the
// length once the true size is known.
func encodeTrack(c *bytecursor.Cursor, track *Track) error {
	c.WriteAsciiString(mtrkChunkType)

	lengthPos := c.Pos()
	c.WriteU32BE(0) // placeholder, patched below
	start := c.Pos()

	for i := range track.Events {
		if err := encodeEvent(c, &track.Events[i]); err != nil {
			return err
		}
	}

	end := c.Pos()
	c.Seek(lengthPos)
	c.WriteU32BE(uint32(end - start))
	c.Seek(end)

	return nil
}

func encodeEvent(c *bytecursor.Cursor, event *Event) error {
	vlq.Write(c, event.DeltaTime)

	switch event.Kind {
	case EventChannelVoice:
		return encodeChannelVoice(c, event.ChannelVoice)
	case EventSystemExclusive:
		return encodeSystemExclusive(c, event.SystemExclusive)
	case EventSystemCommon:
		return encodeSystemCommonEvent(c, event.SystemCommon)
	case EventSystemRealTime:
		return encodeSystemRealTimeEvent(c, event.SystemRealTime)
	case EventMeta:
		if event.Meta == nil {
			return NewMissingFieldError("Meta", "payload")
		}
		c.WriteU8(0xFF)
		return encodeMetaEvent(c, event.Meta)
	default:
		return NewMissingFieldError("Event", "kind")
	}
}

func encodeChannelVoice(c *bytecursor.Cursor, cv *ChannelVoiceEvent) error {
	if cv == nil {
		return NewMissingFieldError("Channel Voice", "payload")
	}

	var typeNibble byte
	switch cv.Kind {
	case NoteOff:
		typeNibble = 0x80
	case NoteOn:
		typeNibble = 0x90
	case PolyAftertouch:
		typeNibble = 0xA0
	case ControlChange:
		typeNibble = 0xB0
	case ProgramChange:
		typeNibble = 0xC0
	case ChannelPressure:
		typeNibble = 0xD0
	case PitchBend:
		typeNibble = 0xE0
	default:
		return NewMissingFieldError("Channel Voice", "kind")
	}

	c.WriteU8(typeNibble | (cv.Channel & 0x0F))

	switch cv.Kind {
	case NoteOff, NoteOn:
		c.WriteU8(cv.Note)
		c.WriteU8(cv.Velocity)
	case PolyAftertouch:
		c.WriteU8(cv.Note)
		c.WriteU8(cv.Pressure)
	case ControlChange:
		c.WriteU8(cv.Controller)
		c.WriteU8(cv.Value)
	case ProgramChange:
		c.WriteU8(cv.Program)
	case ChannelPressure:
		c.WriteU8(cv.Pressure)
	case PitchBend:
		c.WriteU8(cv.PitchLSB)
		c.WriteU8(cv.PitchMSB)
	}
	return nil
}

func encodeSystemExclusive(c *bytecursor.Cursor, sx *SystemExclusiveEvent) error {
	if sx == nil {
		return NewMissingFieldError("System Exclusive", "payload")
	}
	c.WriteU8(0xF0)
	c.WriteU8(sx.ManufacturerID)
	c.WriteBytes(sx.Data)
	c.WriteU8(0xF7)
	return nil
}

func encodeSystemCommonEvent(c *bytecursor.Cursor, sc *SystemCommonEvent) error {
	if sc == nil {
		return NewMissingFieldError("System Common", "payload")
	}
	c.WriteU8(sc.Subtype)
	vlq.Write(c, uint32(len(sc.Data)))
	c.WriteBytes(sc.Data)
	return nil
}

func encodeSystemRealTimeEvent(c *bytecursor.Cursor, rt *SystemRealTimeEvent) error {
	if rt == nil {
		return NewMissingFieldError("System Real-Time", "payload")
	}
	c.WriteU8(rt.Subtype)
	vlq.Write(c, uint32(len(rt.Data)))
	c.WriteBytes(rt.Data)
	return nil
}
