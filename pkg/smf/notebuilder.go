package smf

import (
	"math"
	"sort"
)

// Note is one entry in the plain note list ConvertToMidi assembles a File from.
type Note struct {
	MidiNote uint8
	Velocity uint8
	Length   uint32 // duration in ticks
	Ticks    uint32 // ticks to advance before the next note in this track
}

// NoteTrackSpec describes one track's worth of notes plus any string meta
// events to prepend (meta type -> text, e.g. 0x03 -> track name).
type NoteTrackSpec struct {
	Notes           []Note
	MetaStringEvents map[byte]string
}

// ConvertSpec is the input to ConvertToMidi.
type ConvertSpec struct {
	PPQ       uint16 // 0 means the default of 480
	BPM       int    // 0 means "no tempo event"
	Tracks    []NoteTrackSpec
	SkipNotes map[uint8]bool
}

type timedEvent struct {
	absoluteTime uint32
	event        Event
}

// ConvertToMidi assembles a File from a plain list of notes per track,
// building NoteOn/NoteOff pairs at absolute tick positions and converting
// them to deltas at the end. Grounded on the teacher's MIDI-playback code
// path (pkg/engine/sequencer.go in the original repo walked the same
// NoteOn-then-NoteOff-at-length shape to drive playback) generalized here
// into a pure File-producing constructor instead of a player.
func ConvertToMidi(spec ConvertSpec) *File {
	ppq := spec.PPQ
	if ppq == 0 {
		ppq = 480
	}

	f := &File{
		Format:       1,
		TimeDivision: TimeDivision{Kind: TimeDivisionPPQ, PPQ: ppq},
	}

	for _, trackSpec := range spec.Tracks {
		var timed []timedEvent

		if spec.BPM > 0 {
			timed = append(timed, timedEvent{absoluteTime: 0, event: TempoEvent(spec.BPM)})
		}
		for metaType, text := range trackSpec.MetaStringEvents {
			timed = append(timed, timedEvent{absoluteTime: 0, event: MetaStringEvent(metaType, text)})
		}

		var currentTime float64 // in quarter-notes
		for _, note := range trackSpec.Notes {
			if spec.SkipNotes[note.MidiNote] {
				currentTime += float64(note.Ticks) / float64(ppq)
				continue
			}

			startTick := uint32(currentTime * float64(ppq))
			endTick := startTick + uint32(math.Ceil(float64(note.Length)))

			timed = append(timed, timedEvent{
				absoluteTime: startTick,
				event: Event{
					Label: "Note On",
					Kind:  EventChannelVoice,
					ChannelVoice: &ChannelVoiceEvent{
						Kind:     NoteOn,
						Note:     note.MidiNote,
						Velocity: note.Velocity,
					},
				},
			})
			timed = append(timed, timedEvent{
				absoluteTime: endTick,
				event: Event{
					Label: "Note Off",
					Kind:  EventChannelVoice,
					ChannelVoice: &ChannelVoiceEvent{
						Kind:     NoteOff,
						Note:     note.MidiNote,
						Velocity: 0,
						Length:   endTick - startTick,
					},
				},
			})

			currentTime += float64(note.Ticks) / float64(ppq)
		}

		timed = append(timed, timedEvent{absoluteTime: lastAbsoluteTime(timed), event: EndOfTrackEvent()})

		sort.SliceStable(timed, func(i, j int) bool { return timed[i].absoluteTime < timed[j].absoluteTime })

		events := make([]Event, len(timed))
		var lastAbsolute uint32
		for i, te := range timed {
			delta := te.absoluteTime - lastAbsolute
			lastAbsolute = te.absoluteTime
			te.event.DeltaTime = delta
			events[i] = te.event
		}

		f.Tracks = append(f.Tracks, Track{ChunkType: mtrkChunkType, ChunkLength: uint32(len(events)), Events: events})
	}

	f.TrackCount = uint16(len(f.Tracks))
	return f
}

func lastAbsoluteTime(timed []timedEvent) uint32 {
	var max uint32
	for _, te := range timed {
		if te.absoluteTime > max {
			max = te.absoluteTime
		}
	}
	return max
}

// TempoEvent builds a Set Tempo meta event for the given BPM, at delta 0.
func TempoEvent(bpm int) Event {
	microseconds := uint32(math.Round(60000000.0 / float64(bpm)))
	return Event{
		Label: "Set Tempo",
		Kind:  EventMeta,
		Meta: &MetaEvent{
			MetaType:       0x51,
			DeclaredLength: 3,
			Label:          "Set Tempo",
			Tempo:          &TempoData{MicrosecondsPerQuarter: microseconds, BPM: bpm},
		},
	}
}

// MetaStringEvent builds a text-family meta event (types 0x01-0x09) at delta 0.
func MetaStringEvent(metaType byte, text string) Event {
	return Event{
		Label: MetaTypeLabel(metaType),
		Kind:  EventMeta,
		Meta: &MetaEvent{
			MetaType:       metaType,
			DeclaredLength: uint32(len(text)),
			Label:          MetaTypeLabel(metaType),
			Text:           text,
		},
	}
}

// EndOfTrackEvent builds the mandatory End of Track meta event at delta 0.
func EndOfTrackEvent() Event {
	return Event{
		Label: "End of Track",
		Kind:  EventMeta,
		Meta: &MetaEvent{
			MetaType:       0x2F,
			DeclaredLength: 0,
			Label:          "End of Track",
		},
	}
}

// UsedNotes returns the sorted, deduplicated set of note numbers that appear
// in a Note-On with velocity > 0 anywhere in the file, each paired with its
// scientific-pitch name.
func UsedNotes(f *File) []struct {
	NoteNumber uint8
	NoteName   string
} {
	seen := make(map[uint8]bool)
	for _, track := range f.Tracks {
		for _, event := range track.Events {
			if event.Kind == EventChannelVoice && event.ChannelVoice != nil {
				cv := event.ChannelVoice
				if cv.Kind == NoteOn && cv.Velocity > 0 {
					seen[cv.Note] = true
				}
			}
		}
	}

	notes := make([]uint8, 0, len(seen))
	for n := range seen {
		notes = append(notes, n)
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i] < notes[j] })

	result := make([]struct {
		NoteNumber uint8
		NoteName   string
	}, len(notes))
	for i, n := range notes {
		result[i].NoteNumber = n
		result[i].NoteName = MidiToNote(n, 2, nil)
	}
	return result
}

// defaultNoteDegrees maps a note letter to its semitone offset from C; an
// accidental adds or subtracts one, so E# gives the same value as F, and B#
// gives the same value as the C one octave up (B#4 == C5)
// (Open Question 2: documented here, not disallowed — conversion
// is many-to-one and loses input spelling on a name->MIDI->name round trip
// through a non-canonical spelling, but noteToMidi(midiToNote(v)) still holds
// because midiToNote only ever emits the canonical spelling).
var defaultNoteDegrees = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var defaultNoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteToMidi parses a scientific-pitch name like "C4" or "F#3" into a MIDI
// note number: (octave+octaveOffset)*12 + degree + accidentals. octaveOffset
// shifts which octave is called "4" (the default offset of 2 makes C4 == 72).
// A nil noteMap uses the standard letter-degree table.
func NoteToMidi(name string, octaveOffset int, noteMap map[byte]int) (uint8, error) {
	if noteMap == nil {
		noteMap = defaultNoteDegrees
	}
	if len(name) < 2 {
		return 0, NewUnknownNoteNameError(name)
	}

	letter := name[0]
	degree, ok := noteMap[upperByte(letter)]
	if !ok {
		return 0, NewUnknownNoteNameError(name)
	}

	rest := name[1:]
	accidental := 0
	for len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		if rest[0] == '#' {
			accidental++
		} else {
			accidental--
		}
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return 0, NewUnknownNoteNameError(name)
	}

	octave, err := parseSignedInt(rest)
	if err != nil {
		return 0, NewUnknownNoteNameError(name)
	}

	value := (octave+octaveOffset)*12 + degree + accidental
	if value < 0 || value > 127 {
		return 0, NewInvalidMIDIValueError("note", value)
	}
	return uint8(value), nil
}

// MidiToNote is the inverse of NoteToMidi, always emitting the canonical
// spelling from names (sharps, never flats) unless names is non-nil.
func MidiToNote(value uint8, octaveOffset int, names []string) string {
	if names == nil {
		names = defaultNoteNames
	}
	octave := int(value)/12 - octaveOffset
	degree := int(value) % 12
	return names[degree] + itoa(octave)
}

func upperByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func parseSignedInt(s string) (int, error) {
	neg := false
	i := 0
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		i = 1
	}
	if i == len(s) {
		return 0, NewUnknownNoteNameError(s)
	}
	n := 0
	for ; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, NewUnknownNoteNameError(s)
		}
		n = n*10 + int(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [12]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
