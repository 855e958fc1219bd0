package smf

import (
	"math"

	"github.com/zurustar/smfcodec/pkg/bytecursor"
	"github.com/zurustar/smfcodec/pkg/vlq"
)

// decodeMetaEvent parses a meta event's type, declared length, and payload.
// It is deliberately lenient: a declared-length mismatch on a fixed-size
// meta type is tolerated (the raw bytes actually read are kept in Raw); only
// Sequence Number and End of Track mismatches are reported to the debug sink.
// The validator, not the decoder, flags them as issues.
func decodeMetaEvent(c *bytecursor.Cursor, trackIndex int) (*MetaEvent, error) {
	metaType, err := c.ReadU8()
	if err != nil {
		return nil, wrapUnderflow(err)
	}
	declaredLength, err := vlq.Read(c)
	if err != nil {
		return nil, wrapUnderflow(err)
	}

	me := &MetaEvent{MetaType: metaType, DeclaredLength: declaredLength, Label: MetaTypeLabel(metaType)}

	readRaw := func(n uint32) []byte {
		if int(n) > c.Remaining() {
			n = uint32(c.Remaining())
		}
		b, _ := c.ReadBytes(int(n))
		cp := make([]byte, len(b))
		copy(cp, b)
		return cp
	}

	switch metaType {
	case 0x00:
		if declaredLength == 2 {
			raw := readRaw(2)
			if len(raw) == 2 {
				v := uint16(raw[0])<<8 | uint16(raw[1])
				me.SequenceNumber = &v
			}
			me.Raw = raw
		} else {
			debugf("Sequence Number meta has length %d, expected 2; falling back to track index", declaredLength)
			idx := trackIndex
			me.NextTrackIndex = &idx
			me.Label = "Next Track Index"
			if c.Remaining() > 0 {
				c.Advance(1)
			}
		}

	case 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09:
		raw := readRaw(declaredLength)
		me.Text = string(raw)
		me.Raw = raw

	case 0x20:
		raw := readRaw(declaredLength)
		if len(raw) > 0 {
			v := raw[0]
			me.ChannelPrefix = &v
		}
		me.Raw = raw

	case 0x21:
		raw := readRaw(declaredLength)
		if len(raw) > 0 {
			v := raw[0]
			me.MIDIPort = &v
		}
		me.Raw = raw

	case 0x2F:
		if declaredLength != 0 {
			debugf("End of Track meta declares length %d, expected 0", declaredLength)
		}
		me.Raw = readRaw(declaredLength)

	case 0x4B:
		raw := readRaw(declaredLength)
		var tag uint8
		var value []byte
		if len(raw) > 0 {
			tag = raw[0]
			value = raw[1:]
		}
		me.MLiveTag = &MLiveTagData{Tag: tag, TagLabel: MLiveTagLabel(tag), TagValue: value}
		me.Raw = raw

	case 0x51:
		raw := readRaw(declaredLength)
		if len(raw) >= 3 {
			tempo := uint32(raw[0])<<16 | uint32(raw[1])<<8 | uint32(raw[2])
			bpm := 0
			if tempo > 0 {
				bpm = int(math.Round(60000000.0 / float64(tempo)))
			}
			me.Tempo = &TempoData{MicrosecondsPerQuarter: tempo, BPM: bpm}
		}
		me.Raw = raw

	case 0x54:
		raw := readRaw(declaredLength)
		if len(raw) >= 5 {
			hourByte := raw[0]
			me.SMPTEOffset = &SMPTEOffsetData{
				HourByte:  hourByte,
				Hour:      hourByte & 0x1F,
				Minute:    raw[1],
				Second:    raw[2],
				Frame:     raw[3],
				SubFrame:  raw[4],
				FrameRate: FrameRate((hourByte >> 5) & 0x03),
			}
		}
		me.Raw = raw

	case 0x58:
		raw := readRaw(declaredLength)
		if len(raw) >= 4 {
			me.TimeSignature = &TimeSignatureData{
				Numerator:         raw[0],
				Denominator:       raw[1],
				Metronome:         raw[2],
				ThirtySecondNotes: raw[3],
			}
		}
		me.Raw = raw

	case 0x59:
		raw := readRaw(declaredLength)
		if len(raw) >= 2 {
			ks := int8(raw[0])
			mode := raw[1]
			modeName := "Major"
			if mode != 0 {
				modeName = "Minor"
			}
			me.KeySignature = &KeySignatureData{
				KeySignature: ks,
				MajorOrMinor: mode,
				KeyName:      KeyName(ks),
				Mode:         modeName,
			}
		}
		me.Raw = raw

	default:
		me.Raw = readRaw(declaredLength)
	}

	return me, nil
}

// encodeMetaEvent is the inverse of decodeMetaEvent: it writes the type byte,
// the VLQ length of whatever payload bytes it derives, and the payload.
func encodeMetaEvent(c *bytecursor.Cursor, me *MetaEvent) error {
	c.WriteU8(me.MetaType)

	var payload []byte
	switch me.MetaType {
	case 0x00:
		if me.SequenceNumber == nil {
			return NewMissingFieldError("Sequence Number", "sequenceNumber")
		}
		payload = []byte{byte(*me.SequenceNumber >> 8), byte(*me.SequenceNumber)}

	case 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09:
		payload = []byte(me.Text)

	case 0x20:
		if me.ChannelPrefix == nil {
			return NewMissingFieldError("Channel Prefix", "channelPrefix")
		}
		payload = []byte{*me.ChannelPrefix}

	case 0x21:
		if me.MIDIPort == nil {
			return NewMissingFieldError("MIDI Port", "midiPort")
		}
		payload = []byte{*me.MIDIPort}

	case 0x2F:
		payload = nil

	case 0x4B:
		if me.MLiveTag == nil {
			return NewMissingFieldError("M-Live Tag", "mLiveTag")
		}
		payload = append([]byte{me.MLiveTag.Tag}, me.MLiveTag.TagValue...)

	case 0x51:
		if me.Tempo == nil {
			return NewMissingFieldError("Set Tempo", "tempo")
		}
		t := me.Tempo.MicrosecondsPerQuarter
		payload = []byte{byte(t >> 16), byte(t >> 8), byte(t)}

	case 0x54:
		if me.SMPTEOffset == nil {
			return NewMissingFieldError("SMPTE Offset", "smpteOffset")
		}
		s := me.SMPTEOffset
		hourByte := (byte(s.FrameRate) << 5) | (s.Hour & 0x1F)
		payload = []byte{hourByte, s.Minute, s.Second, s.Frame, s.SubFrame}

	case 0x58:
		if me.TimeSignature == nil {
			return NewMissingFieldError("Time Signature", "timeSignature")
		}
		ts := me.TimeSignature
		payload = []byte{ts.Numerator, ts.Denominator, ts.Metronome, ts.ThirtySecondNotes}

	case 0x59:
		if me.KeySignature == nil {
			return NewMissingFieldError("Key Signature", "keySignature")
		}
		ks := me.KeySignature
		payload = []byte{byte(ks.KeySignature), ks.MajorOrMinor}

	default:
		payload = me.Raw
	}

	vlq.Write(c, uint32(len(payload)))
	if len(payload) > 0 {
		c.WriteBytes(payload)
	}
	return nil
}
