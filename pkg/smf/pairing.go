package smf

// notePairer tracks active (sounding) notes during the decode of a single
// track so a NoteOn's Length can be back-patched once its matching NoteOff
// (a 0x8_ status byte) is seen. Its state is local to one track decode
// and discarded when the track ends.
//
// The back-patch target is recorded as an index into the track's events
// slice rather than a pointer into it, so growing the slice during decode
// never invalidates an entry already stored here.
type notePairer struct {
	active map[uint8]activeNote
}

type activeNote struct {
	startTime  uint32
	velocity   uint8
	eventIndex int
}

func newNotePairer() *notePairer {
	return &notePairer{active: make(map[uint8]activeNote)}
}

// NoteOn registers a newly decoded NoteOn at eventIndex, unconditionally
// (a velocity-0 NoteOn is inserted like any other and does not resolve the
// active entry; only ResolveNoteOff does). A second NoteOn for the same pitch before
// its NoteOff overwrites the first: last one wins, no collision policy.
func (p *notePairer) NoteOn(note uint8, velocity uint8, currentTime uint32, eventIndex int) {
	p.active[note] = activeNote{startTime: currentTime, velocity: velocity, eventIndex: eventIndex}
}

// ResolveNoteOff looks up note's active entry, returning its event index and
// computed length. ok is false if no NoteOn for this pitch is active.
func (p *notePairer) ResolveNoteOff(note uint8, currentTime uint32) (eventIndex int, length uint32, ok bool) {
	entry, found := p.active[note]
	if !found {
		return 0, 0, false
	}
	delete(p.active, note)
	return entry.eventIndex, currentTime - entry.startTime, true
}
