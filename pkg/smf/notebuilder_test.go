package smf

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNoteToMidiDefaultOctaveOffset(t *testing.T) {
	got, err := NoteToMidi("C4", 2, nil)
	if err != nil {
		t.Fatalf("NoteToMidi: %v", err)
	}
	if got != 72 {
		t.Fatalf("NoteToMidi(\"C4\") = %d, want 72", got)
	}
}

func TestNoteToMidiSharpsAndFlats(t *testing.T) {
	sharp, err := NoteToMidi("C#4", 2, nil)
	if err != nil {
		t.Fatalf("NoteToMidi: %v", err)
	}
	flat, err := NoteToMidi("Db4", 2, nil)
	if err != nil {
		t.Fatalf("NoteToMidi: %v", err)
	}
	if sharp != flat {
		t.Fatalf("C#4 = %d, Db4 = %d, want equal (enharmonic)", sharp, flat)
	}
}

func TestNoteToMidiUnknownName(t *testing.T) {
	_, err := NoteToMidi("H4", 2, nil)
	if err == nil {
		t.Fatal("expected error for unrecognized note name")
	}
	codecErr, ok := err.(*CodecError)
	if !ok || codecErr.Kind != ErrorUnknownNote {
		t.Fatalf("err = %v, want *CodecError{Kind: ErrorUnknownNote}", err)
	}
}

func TestMidiToNoteRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("noteToMidi(midiToNote(v)) == v at the default octave offset", prop.ForAll(
		func(v uint8) bool {
			name := MidiToNote(v, 2, nil)
			got, err := NoteToMidi(name, 2, nil)
			return err == nil && got == v
		},
		gen.UInt8Range(0, 127),
	))

	properties.TestingRun(t)
}

func TestConvertToMidiProducesEndOfTrackAndTempo(t *testing.T) {
	spec := ConvertSpec{
		PPQ: 480,
		BPM: 120,
		Tracks: []NoteTrackSpec{{
			Notes: []Note{
				{MidiNote: 60, Velocity: 100, Length: 240, Ticks: 480},
				{MidiNote: 62, Velocity: 100, Length: 240, Ticks: 480},
			},
		}},
	}

	f := ConvertToMidi(spec)
	if len(f.Tracks) != 1 {
		t.Fatalf("len(Tracks) = %d, want 1", len(f.Tracks))
	}

	events := f.Tracks[0].Events
	if len(events) == 0 {
		t.Fatal("expected events, got none")
	}
	last := events[len(events)-1]
	if last.Kind != EventMeta || last.Meta.MetaType != 0x2F {
		t.Fatalf("last event = %+v, want End of Track", last)
	}

	foundTempo := false
	for _, e := range events {
		if e.Kind == EventMeta && e.Meta.MetaType == 0x51 {
			foundTempo = true
			if e.Meta.Tempo.BPM != 120 {
				t.Errorf("tempo bpm = %d, want 120", e.Meta.Tempo.BPM)
			}
		}
	}
	if !foundTempo {
		t.Fatal("expected a Set Tempo event")
	}

	issues := Validate(f)
	if len(issues) != 0 {
		t.Fatalf("Validate(ConvertToMidi(...)) = %v, want none", issues)
	}
}

func TestConvertToMidiSkipsNotes(t *testing.T) {
	spec := ConvertSpec{
		Tracks: []NoteTrackSpec{{
			Notes: []Note{
				{MidiNote: 60, Velocity: 100, Length: 240, Ticks: 480},
				{MidiNote: 61, Velocity: 100, Length: 240, Ticks: 480},
			},
		}},
		SkipNotes: map[uint8]bool{61: true},
	}

	f := ConvertToMidi(spec)
	for _, e := range f.Tracks[0].Events {
		if e.Kind == EventChannelVoice && e.ChannelVoice.Note == 61 {
			t.Fatalf("note 61 should have been skipped, found event %+v", e)
		}
	}
}

func TestUsedNotesDeduplicatesAndSorts(t *testing.T) {
	f := &File{
		Tracks: []Track{{
			Events: []Event{
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOn, Note: 64, Velocity: 100}},
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOn, Note: 60, Velocity: 100}},
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOn, Note: 60, Velocity: 100}},
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOn, Note: 67, Velocity: 0}}, // zero-velocity: not "used"
			},
		}},
	}

	used := UsedNotes(f)
	if len(used) != 2 {
		t.Fatalf("len(used) = %d, want 2: %+v", len(used), used)
	}
	if used[0].NoteNumber != 60 || used[1].NoteNumber != 64 {
		t.Fatalf("used = %+v, want [60, 64]", used)
	}
}
