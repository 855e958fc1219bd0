package smf

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/smfcodec/pkg/bytecursor"
)

func TestDecodeSMPTEOffsetHourByteProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("(fps<<5)|hour decodes to the expected {frameRate, hour}", prop.ForAll(
		func(fps uint8, hour uint8) bool {
			hourByte := (fps << 5) | hour

			c := bytecursor.NewWriter()
			c.WriteU8(0x54) // meta type: SMPTE Offset
			c.WriteU8(5)    // declared length (VLQ, fits in one byte)
			c.WriteU8(hourByte)
			c.WriteU8(10) // minute
			c.WriteU8(20) // second
			c.WriteU8(15) // frame
			c.WriteU8(0)  // sub-frame

			reader := bytecursor.New(c.Bytes())
			me, err := decodeMetaEvent(reader, 0)
			if err != nil {
				return false
			}
			if me.SMPTEOffset == nil {
				return false
			}
			return me.SMPTEOffset.FrameRate == FrameRate(fps) && me.SMPTEOffset.Hour == hour
		},
		gen.UInt8Range(0, 3),
		gen.UInt8Range(0, 31),
	))

	properties.TestingRun(t)
}

func TestEncodeSMPTEOffsetEventBytes(t *testing.T) {
	event := Event{
		Label: "SMPTE Offset",
		Kind:  EventMeta,
		Meta: &MetaEvent{
			MetaType:       0x54,
			DeclaredLength: 5,
			Label:          "SMPTE Offset",
			SMPTEOffset: &SMPTEOffsetData{
				Hour:      1,
				Minute:    2,
				Second:    3,
				Frame:     4,
				SubFrame:  5,
				FrameRate: Fps25,
			},
		},
	}

	f := &File{
		Format:       0,
		TrackCount:   1,
		TimeDivision: DefaultTimeDivision(),
		Tracks:       []Track{{ChunkType: mtrkChunkType, Events: []Event{event}}},
	}

	encoded, err := Encode(f)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// delta 0, 0xFF, type 0x54, VLQ length 5, hourByte (Fps25<<5)|1, minute, second, frame, subframe
	want := []byte{0x00, 0xFF, 0x54, 0x05, (byte(Fps25) << 5) | 1, 2, 3, 4, 5}
	trackBody := encoded[len(encoded)-len(want):]
	if !bytes.Equal(trackBody, want) {
		t.Fatalf("trackBody = % X, want % X", trackBody, want)
	}
}
