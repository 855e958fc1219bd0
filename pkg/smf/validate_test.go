package smf

import (
	"strings"
	"testing"
)

func TestValidateWellFormedFileHasNoIssues(t *testing.T) {
	f := &File{
		Format:       0,
		TrackCount:   1,
		TimeDivision: DefaultTimeDivision(),
		Tracks: []Track{{
			ChunkType:   mtrkChunkType,
			ChunkLength: 1,
			Events: []Event{
				{Kind: EventMeta, Meta: &MetaEvent{MetaType: 0x2F}},
			},
		}},
	}

	issues := Validate(f)
	if len(issues) != 0 {
		t.Fatalf("issues = %v, want none", issues)
	}
}

func TestValidateMissingEndOfTrackAndUnmatchedNoteOn(t *testing.T) {
	f := &File{
		Format:       0,
		TrackCount:   1,
		TimeDivision: DefaultTimeDivision(),
		Tracks: []Track{{
			ChunkType:   mtrkChunkType,
			ChunkLength: 4, // non-zero so it doesn't trip the chunk-length/event-count check below
			Events: []Event{
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOn, Note: 60, Velocity: 100}},
			},
		}},
	}

	issues := Validate(f)
	if len(issues) != 2 {
		t.Fatalf("issues = %v, want exactly 2", issues)
	}

	var sawMissingEOT, sawUnmatched bool
	for _, issue := range issues {
		if strings.Contains(issue, "End-of-Track") {
			sawMissingEOT = true
		}
		if strings.Contains(issue, "unmatched Note On for note 60") {
			sawUnmatched = true
		}
	}
	if !sawMissingEOT {
		t.Errorf("no issue mentioned End-of-Track: %v", issues)
	}
	if !sawUnmatched {
		t.Errorf("no issue mentioned unmatched Note On for note 60: %v", issues)
	}
}

func TestValidateNoteOffWithoutActiveNoteOn(t *testing.T) {
	f := &File{
		Format:       0,
		TrackCount:   1,
		TimeDivision: DefaultTimeDivision(),
		Tracks: []Track{{
			ChunkType:   mtrkChunkType,
			ChunkLength: 9,
			Events: []Event{
				{Kind: EventChannelVoice, ChannelVoice: &ChannelVoiceEvent{Kind: NoteOff, Note: 60}},
				{Kind: EventMeta, Meta: &MetaEvent{MetaType: 0x2F}},
			},
		}},
	}

	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "Note-Off without active Note-On for note 60") {
			found = true
		}
	}
	if !found {
		t.Fatalf("issues = %v, want one mentioning Note-Off without active Note-On", issues)
	}
}

func TestValidateDeclaredTrackCountMismatch(t *testing.T) {
	f := &File{
		Format:       0,
		TrackCount:   2,
		TimeDivision: DefaultTimeDivision(),
		Tracks: []Track{{
			ChunkType: mtrkChunkType,
			Events:    []Event{{Kind: EventMeta, Meta: &MetaEvent{MetaType: 0x2F}}},
		}},
	}

	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "declared track count 2 does not match 1 parsed tracks") {
			found = true
		}
	}
	if !found {
		t.Fatalf("issues = %v, want a declared-track-count mismatch", issues)
	}
}

func TestValidateFixedLengthMetaMismatch(t *testing.T) {
	f := &File{
		Format:       0,
		TrackCount:   1,
		TimeDivision: DefaultTimeDivision(),
		Tracks: []Track{{
			ChunkType:   mtrkChunkType,
			ChunkLength: 7,
			Events: []Event{
				{Kind: EventMeta, Meta: &MetaEvent{MetaType: 0x51, DeclaredLength: 2, Tempo: &TempoData{}}},
				{Kind: EventMeta, Meta: &MetaEvent{MetaType: 0x2F}},
			},
		}},
	}

	issues := Validate(f)
	found := false
	for _, issue := range issues {
		if strings.Contains(issue, "Set Tempo declares length 2, expected 3") {
			found = true
		}
	}
	if !found {
		t.Fatalf("issues = %v, want a Set Tempo length mismatch", issues)
	}
}
