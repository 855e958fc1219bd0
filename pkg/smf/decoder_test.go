package smf

import "testing"

func TestParseMinimalEmptyFile(t *testing.T) {
	data := []byte{
		0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0,
		0x4D, 0x54, 0x72, 0x6B, 0x00, 0x00, 0x00, 0x04, 0x00, 0xFF, 0x2F, 0x00,
	}

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if f.Format != 0 || f.TrackCount != 1 {
		t.Fatalf("header = %+v", f)
	}
	if f.TimeDivision.Kind != TimeDivisionPPQ || f.TimeDivision.PPQ != 480 {
		t.Fatalf("TimeDivision = %+v, want Ppq(480)", f.TimeDivision)
	}
	if len(f.Tracks) != 1 {
		t.Fatalf("len(Tracks) = %d, want 1", len(f.Tracks))
	}
	events := f.Tracks[0].Events
	if len(events) != 1 {
		t.Fatalf("len(Events) = %d, want 1", len(events))
	}
	if events[0].Kind != EventMeta || events[0].Meta == nil || events[0].Meta.MetaType != 0x2F {
		t.Fatalf("events[0] = %+v, want End of Track", events[0])
	}
	if events[0].DeltaTime != 0 {
		t.Fatalf("DeltaTime = %d, want 0", events[0].DeltaTime)
	}
}

func TestParseRunningStatus(t *testing.T) {
	header := []byte{0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0}
	body := []byte{
		0x00, 0x90, 0x3C, 0x40,
		0x00, 0x3E, 0x40,
		0x00, 0x40, 0x40,
		0x00, 0xFF, 0x2F, 0x00,
	}
	length := uint32(len(body))
	track := []byte{0x4D, 0x54, 0x72, 0x6B, byte(length >> 24), byte(length >> 16), byte(length >> 8), byte(length)}
	track = append(track, body...)

	data := append(append([]byte{}, header...), track...)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	events := f.Tracks[0].Events
	wantNotes := []uint8{60, 62, 64}
	var got []uint8
	for _, e := range events {
		if e.Kind == EventChannelVoice && e.ChannelVoice.Kind == NoteOn {
			got = append(got, e.ChannelVoice.Note)
		}
	}
	if len(got) != len(wantNotes) {
		t.Fatalf("got %d NoteOn events, want %d", len(got), len(wantNotes))
	}
	for i, note := range wantNotes {
		if got[i] != note {
			t.Errorf("note[%d] = %d, want %d", i, got[i], note)
		}
		if events[i].ChannelVoice.Channel != 0 {
			t.Errorf("channel[%d] = %d, want 0", i, events[i].ChannelVoice.Channel)
		}
	}
}

func TestParseNotePairingBackpatchesLength(t *testing.T) {
	header := []byte{0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0}
	body := []byte{
		0x00, 0x90, 0x3C, 0x64, // NoteOn note=60 vel=100 delta 0
		0x81, 0x70, 0x80, 0x3C, 0x00, // NoteOff note=60 vel=0 delta 240 (VLQ 0x81 0x70 = 240)
		0x00, 0xFF, 0x2F, 0x00,
	}
	length := uint32(len(body))
	track := []byte{0x4D, 0x54, 0x72, 0x6B, byte(length >> 24), byte(length >> 16), byte(length >> 8), byte(length)}
	track = append(track, body...)
	data := append(append([]byte{}, header...), track...)

	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	events := f.Tracks[0].Events
	if events[0].ChannelVoice.Kind != NoteOn || events[0].ChannelVoice.Length != 240 {
		t.Fatalf("NoteOn length = %d, want 240 (event: %+v)", events[0].ChannelVoice.Length, events[0])
	}
}

func TestParseNoRunningStatusFaults(t *testing.T) {
	header := []byte{0x4D, 0x54, 0x68, 0x64, 0x00, 0x00, 0x00, 0x06, 0x00, 0x00, 0x00, 0x01, 0x01, 0xE0}
	body := []byte{0x00, 0x3C, 0x40} // data byte with no status ever seen
	length := uint32(len(body))
	track := []byte{0x4D, 0x54, 0x72, 0x6B, byte(length >> 24), byte(length >> 16), byte(length >> 8), byte(length)}
	track = append(track, body...)
	data := append(append([]byte{}, header...), track...)

	_, err := Parse(data)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	codecErr, ok := err.(*CodecError)
	if !ok || codecErr.Kind != ErrorNoRunningStatus {
		t.Fatalf("err = %v, want *CodecError{Kind: ErrorNoRunningStatus}", err)
	}
}
