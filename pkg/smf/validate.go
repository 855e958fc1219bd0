package smf

import "fmt"

// Validate runs a semantic pass over an already-parsed File and returns an
// ordered list of human-readable issue strings. It never fails: a
// syntactically well-formed file always produces a (possibly empty) list.
func Validate(f *File) []string {
	var issues []string

	if f.Format > 2 {
		issues = append(issues, fmt.Sprintf("invalid format %d, expected 0, 1, or 2", f.Format))
	}

	if int(f.TrackCount) != len(f.Tracks) {
		issues = append(issues, fmt.Sprintf("declared track count %d does not match %d parsed tracks", f.TrackCount, len(f.Tracks)))
	}

	for i := range f.Tracks {
		issues = append(issues, validateTrack(i, &f.Tracks[i])...)
	}

	return issues
}

func validateTrack(index int, track *Track) []string {
	var issues []string

	if track.ChunkType != "" && track.ChunkType != mthdChunkType && track.ChunkType != mtrkChunkType {
		issues = append(issues, fmt.Sprintf("track %d: chunk type %q is neither MThd nor MTrk", index, track.ChunkType))
	}

	if (track.ChunkLength == 0) != (len(track.Events) == 0) {
		issues = append(issues, fmt.Sprintf("track %d: declared chunk length %d does not agree with %d parsed events", index, track.ChunkLength, len(track.Events)))
	}

	activeCounts := make(map[uint8]int)
	endOfTrackCount := 0

	for _, event := range track.Events {
		if int32(event.DeltaTime) < 0 {
			issues = append(issues, fmt.Sprintf("track %d: negative delta time", index))
		}

		if event.Kind == EventChannelVoice && event.ChannelVoice != nil {
			cv := event.ChannelVoice
			switch {
			case cv.Kind == NoteOn && cv.Velocity > 0:
				activeCounts[cv.Note]++
			case cv.Kind == NoteOn && cv.Velocity == 0:
				if activeCounts[cv.Note] <= 0 {
					issues = append(issues, fmt.Sprintf("track %d: Note-Off without active Note-On for note %d", index, cv.Note))
				} else {
					activeCounts[cv.Note]--
				}
			case cv.Kind == NoteOff:
				if activeCounts[cv.Note] <= 0 {
					issues = append(issues, fmt.Sprintf("track %d: Note-Off without active Note-On for note %d", index, cv.Note))
				} else {
					activeCounts[cv.Note]--
				}
			}
		}

		if event.Kind == EventMeta && event.Meta != nil {
			issues = append(issues, validateMetaLength(index, event.Meta)...)
			if event.Meta.MetaType == 0x2F {
				endOfTrackCount++
			}
		}
	}

	for note, count := range activeCounts {
		if count > 0 {
			issues = append(issues, fmt.Sprintf("track %d: unmatched Note On for note %d", index, note))
		}
	}

	switch endOfTrackCount {
	case 1:
		// well-formed
	case 0:
		issues = append(issues, fmt.Sprintf("track %d: missing End-of-Track", index))
	default:
		issues = append(issues, fmt.Sprintf("track %d: %d End-of-Track events, expected exactly 1", index, endOfTrackCount))
	}

	return issues
}

var fixedMetaLengths = map[byte]uint32{
	0x2F: 0,
	0x51: 3,
	0x54: 5,
	0x58: 4,
	0x59: 2,
}

func validateMetaLength(trackIndex int, meta *MetaEvent) []string {
	if want, ok := fixedMetaLengths[meta.MetaType]; ok && meta.DeclaredLength != want {
		return []string{fmt.Sprintf("track %d: %s declares length %d, expected %d", trackIndex, MetaTypeLabel(meta.MetaType), meta.DeclaredLength, want)}
	}
	if meta.MetaType == 0x00 && meta.DeclaredLength != 0 && meta.DeclaredLength != 2 {
		return []string{fmt.Sprintf("track %d: Sequence Number declares length %d, expected 0 or 2", trackIndex, meta.DeclaredLength)}
	}
	return nil
}
