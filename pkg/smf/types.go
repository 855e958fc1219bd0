// Package smf is a bidirectional codec for Standard MIDI Files: it parses a
// byte stream into a structured File (header, tracks, time-ordered events)
// and emits a byte stream from that structure. It also provides a semantic
// validator over a parsed File and a NoteBuilder convenience constructor
// that assembles a File from a plain list of notes.
package smf

// TimeDivisionKind distinguishes the two wire encodings of the MThd division field.
type TimeDivisionKind int

const (
	// TimeDivisionPPQ divides a quarter-note into a fixed number of ticks.
	TimeDivisionPPQ TimeDivisionKind = iota
	// TimeDivisionSMPTE divides time into frames-per-second and ticks-per-frame.
	TimeDivisionSMPTE
)

// TimeDivision is the tagged union chosen by the high bit of the MThd
// division field's first byte.
type TimeDivision struct {
	Kind            TimeDivisionKind
	PPQ             uint16 // valid when Kind == TimeDivisionPPQ
	FramesPerSecond uint8  // valid when Kind == TimeDivisionSMPTE
	TicksPerFrame   uint8  // valid when Kind == TimeDivisionSMPTE
}

// DefaultTimeDivision is the division used when constructing an empty File.
func DefaultTimeDivision() TimeDivision {
	return TimeDivision{Kind: TimeDivisionPPQ, PPQ: 480}
}

// File is a whole parsed or to-be-encoded Standard MIDI File.
type File struct {
	Format       uint16
	TrackCount   uint16 // the count read from (or destined for) the header; see Validate
	TimeDivision TimeDivision
	Tracks       []Track
}

// TrackByIndex returns the track at i, or false if i is out of range. It
// never panics: callers that merely want to inspect "does this file have a
// track N" get a plain bool instead of having to guard len(Tracks) first.
func (f *File) TrackByIndex(i int) (*Track, bool) {
	if i < 0 || i >= len(f.Tracks) {
		return nil, false
	}
	return &f.Tracks[i], true
}

// Format0Tracks returns the file's single track for format-0 files, or nil
// if the file isn't format 0 or has no tracks.
func (f *File) Format0Tracks() *Track {
	if f.Format != 0 || len(f.Tracks) == 0 {
		return nil
	}
	return &f.Tracks[0]
}

// Track is one MTrk chunk.
type Track struct {
	ChunkType   string // "MTrk" on well-formed input; see Validate
	ChunkLength uint32 // informational on parse, computed on encode
	Events      []Event
}

// EventKind discriminates the five disjoint event families an Event can carry.
type EventKind int

const (
	EventChannelVoice EventKind = iota
	EventSystemExclusive
	EventSystemCommon
	EventSystemRealTime
	EventMeta
)

// Event is a tagged union: Kind selects which of the payload pointers below
// is populated. Every variant carries a delta time and a human-readable label.
type Event struct {
	DeltaTime uint32
	Label     string
	Kind      EventKind

	ChannelVoice   *ChannelVoiceEvent
	SystemExclusive *SystemExclusiveEvent
	SystemCommon   *SystemCommonEvent
	SystemRealTime *SystemRealTimeEvent
	Meta           *MetaEvent
}

// ChannelVoiceKind discriminates the seven channel voice message shapes.
type ChannelVoiceKind int

const (
	NoteOff ChannelVoiceKind = iota
	NoteOn
	PolyAftertouch
	ControlChange
	ProgramChange
	ChannelPressure
	PitchBend
)

// ChannelVoiceEvent is the payload of a 0x80-0xEF status byte.
type ChannelVoiceEvent struct {
	Channel uint8
	Kind    ChannelVoiceKind

	Note     uint8 // NoteOff, NoteOn, PolyAftertouch
	Velocity uint8 // NoteOff, NoteOn
	Length   uint32 // NoteOn: back-patched by the notePairer; NoteOff: the same length when matched

	Pressure uint8 // PolyAftertouch, ChannelPressure

	Controller      uint8 // ControlChange
	ControllerLabel string
	Value           uint8 // ControlChange

	Program uint8 // ProgramChange

	PitchLSB     uint8
	PitchMSB     uint8
	PitchValue14 uint16 // PitchBend, (msb<<7)|lsb
}

// SystemExclusiveEvent is the payload of a 0xF0 status byte: a manufacturer
// ID followed by raw bytes up to (but not including) the 0xF7 terminator.
type SystemExclusiveEvent struct {
	ManufacturerID    uint8
	ManufacturerLabel string
	Data              []byte
}

// SystemCommonKind discriminates the 0xF2-0xF7 subtype (excluding 0xF0's own
// SysEx framing).
type SystemCommonKind int

const (
	SongPositionPointer SystemCommonKind = iota
	SongSelect
	TuneRequest
	EndOfExclusive
	SystemCommonUndefined
)

// SystemCommonEvent is the payload of a 0xF2-0xF7 status byte.
type SystemCommonEvent struct {
	Subtype byte
	Kind    SystemCommonKind
	Data    []byte
	MSB     uint8 // SongPositionPointer only
	LSB     uint8 // SongPositionPointer only
}

// SystemRealTimeKind discriminates the 0xF8-0xFE subtype.
type SystemRealTimeKind int

const (
	Clock SystemRealTimeKind = iota
	Start
	Continue
	Stop
	ActiveSensing
	SystemRealTimeUndefined
)

// SystemRealTimeEvent is the payload of a 0xF8-0xFE status byte. The SMF
// standard gives these messages no data bytes; this codec still reads and
// writes a VLQ-prefixed Data blob for them.
type SystemRealTimeEvent struct {
	Subtype byte
	Kind    SystemRealTimeKind
	Data    []byte // per Open Question 1, the decoder reads a VLQ-prefixed blob even for these normally-dataless messages
}

// FrameRate is the SMPTE frame rate encoded in bits 5-6 of an SMPTE Offset
// meta event's hour byte. Kept as a typed enum rather than a raw float so
// 29.97fps stays exactly comparable.
type FrameRate int

const (
	Fps24 FrameRate = iota
	Fps25
	Fps2997
	Fps30
)

// MetaEvent is the payload of a 0xFF status byte. MetaType selects which of
// the typed fields below is meaningful; Raw holds the payload bytes actually
// read, so unknown or mismatched-length meta events keep their bytes. The one
// exception is the Sequence Number fallback, which skips one byte and leaves
// Raw nil.
type MetaEvent struct {
	MetaType       byte
	DeclaredLength uint32
	Label          string
	Raw            []byte

	SequenceNumber *uint16 // 0x00
	NextTrackIndex *int    // 0x00 fallback when declared length != 2

	Text string // 0x01-0x09

	ChannelPrefix *uint8 // 0x20
	MIDIPort      *uint8 // 0x21

	Tempo *TempoData // 0x51

	SMPTEOffset *SMPTEOffsetData // 0x54

	TimeSignature *TimeSignatureData // 0x58

	KeySignature *KeySignatureData // 0x59

	MLiveTag *MLiveTagData // 0x4B, non-standard
}

// TempoData is the decoded payload of a Set Tempo meta event.
type TempoData struct {
	MicrosecondsPerQuarter uint32
	BPM                    int
}

// SMPTEOffsetData is the decoded payload of an SMPTE Offset meta event.
type SMPTEOffsetData struct {
	HourByte  uint8
	Hour      uint8
	Minute    uint8
	Second    uint8
	Frame     uint8
	SubFrame  uint8
	FrameRate FrameRate
}

// TimeSignatureData is the decoded payload of a Time Signature meta event.
type TimeSignatureData struct {
	Numerator         uint8
	Denominator       uint8
	Metronome         uint8
	ThirtySecondNotes uint8
}

// KeySignatureData is the decoded payload of a Key Signature meta event.
type KeySignatureData struct {
	KeySignature int8 // -7..7
	MajorOrMinor uint8
	KeyName      string
	Mode         string // "Major" or "Minor"
}

// MLiveTagData is the decoded payload of the non-standard 0x4B M-Live Tag meta event.
type MLiveTagData struct {
	Tag      uint8
	TagLabel string
	TagValue []byte
}
