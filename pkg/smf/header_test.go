package smf

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/zurustar/smfcodec/pkg/bytecursor"
)

func TestDecodeTimeDivision_PPQ(t *testing.T) {
	td := decodeTimeDivision(480)
	if td.Kind != TimeDivisionPPQ {
		t.Fatalf("Kind = %v, want TimeDivisionPPQ", td.Kind)
	}
	if td.PPQ != 480 {
		t.Fatalf("PPQ = %d, want 480", td.PPQ)
	}
}

func TestDecodeTimeDivision_SMPTE(t *testing.T) {
	framesPerSecond := uint8(25)
	ticksPerFrame := uint8(0x40)
	raw := uint16(0x8000) | uint16(framesPerSecond&0x7F)<<8 | uint16(ticksPerFrame)

	td := decodeTimeDivision(raw)
	if td.Kind != TimeDivisionSMPTE {
		t.Fatalf("Kind = %v, want TimeDivisionSMPTE", td.Kind)
	}
	if td.TicksPerFrame != ticksPerFrame {
		t.Fatalf("TicksPerFrame = %d, want %#02x", td.TicksPerFrame, ticksPerFrame)
	}
	if td.FramesPerSecond != framesPerSecond {
		t.Fatalf("FramesPerSecond = %d, want %d", td.FramesPerSecond, framesPerSecond)
	}
}

func TestTimeDivisionRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("ppq division survives decode(encode(x))", prop.ForAll(
		func(ppq uint16) bool {
			td := TimeDivision{Kind: TimeDivisionPPQ, PPQ: ppq & 0x7FFF}
			raw := encodeTimeDivision(td)
			got := decodeTimeDivision(raw)
			return got.Kind == TimeDivisionPPQ && got.PPQ == td.PPQ
		},
		gen.UInt16Range(0, 0x7FFF),
	))

	properties.TestingRun(t)
}

func TestEncodeDecodeHeaderRoundTrip(t *testing.T) {
	f := &File{Format: 1, TrackCount: 3, TimeDivision: TimeDivision{Kind: TimeDivisionPPQ, PPQ: 96}}

	c := bytecursor.NewWriter()
	encodeHeader(c, f)

	reader := bytecursor.New(c.Bytes())
	got, err := decodeHeader(reader)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}

	if got.Format != f.Format || got.TrackCount != f.TrackCount || got.TimeDivision.PPQ != f.TimeDivision.PPQ {
		t.Fatalf("got %+v, want %+v", got, f)
	}
}

func TestDecodeHeaderTolerantOfNonStandardLength(t *testing.T) {
	c := bytecursor.NewWriter()
	c.WriteAsciiString("MThd")
	c.WriteU32BE(8) // two bytes of excess
	c.WriteU16BE(0)
	c.WriteU16BE(1)
	c.WriteU16BE(480)
	c.WriteU8(0xAA)
	c.WriteU8(0xBB)

	reader := bytecursor.New(c.Bytes())
	got, err := decodeHeader(reader)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if got.Format != 0 || got.TrackCount != 1 {
		t.Fatalf("got %+v", got)
	}
	if reader.Remaining() != 0 {
		t.Fatalf("expected excess bytes to be consumed, %d remaining", reader.Remaining())
	}
}
