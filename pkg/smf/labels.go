package smf

import "fmt"

// controllerNames maps MIDI Control Change numbers to their standard names.
// Grounded on the General MIDI / MMA controller assignment table; the same
// catalogue williamsharkey-midi/midimessage/channel exposes as constants.
var controllerNames = map[uint8]string{
	0:   "Bank Select (MSB)",
	1:   "Modulation Wheel (MSB)",
	2:   "Breath Controller (MSB)",
	4:   "Foot Controller (MSB)",
	5:   "Portamento Time (MSB)",
	6:   "Data Entry (MSB)",
	7:   "Channel Volume (MSB)",
	8:   "Balance (MSB)",
	10:  "Pan (MSB)",
	11:  "Expression Controller (MSB)",
	12:  "Effect Control 1 (MSB)",
	13:  "Effect Control 2 (MSB)",
	16:  "General Purpose Controller 1 (MSB)",
	17:  "General Purpose Controller 2 (MSB)",
	18:  "General Purpose Controller 3 (MSB)",
	19:  "General Purpose Controller 4 (MSB)",
	32:  "Bank Select (LSB)",
	33:  "Modulation Wheel (LSB)",
	34:  "Breath Controller (LSB)",
	36:  "Foot Controller (LSB)",
	37:  "Portamento Time (LSB)",
	38:  "Data Entry (LSB)",
	39:  "Channel Volume (LSB)",
	40:  "Balance (LSB)",
	42:  "Pan (LSB)",
	43:  "Expression Controller (LSB)",
	44:  "Effect Control 1 (LSB)",
	45:  "Effect Control 2 (LSB)",
	64:  "Damper Pedal (Sustain)",
	65:  "Portamento On/Off",
	66:  "Sostenuto",
	67:  "Soft Pedal",
	68:  "Legato Footswitch",
	69:  "Hold 2",
	70:  "Sound Controller 1 (Sound Variation)",
	71:  "Sound Controller 2 (Timbre/Harmonic)",
	72:  "Sound Controller 3 (Release Time)",
	73:  "Sound Controller 4 (Attack Time)",
	74:  "Sound Controller 5 (Brightness)",
	75:  "Sound Controller 6",
	76:  "Sound Controller 7",
	77:  "Sound Controller 8",
	78:  "Sound Controller 9",
	79:  "Sound Controller 10",
	80:  "General Purpose Controller 5",
	81:  "General Purpose Controller 6",
	82:  "General Purpose Controller 7",
	83:  "General Purpose Controller 8",
	84:  "Portamento Control",
	88:  "High Resolution Velocity Prefix",
	91:  "Effects 1 Depth (Reverb)",
	92:  "Effects 2 Depth (Tremolo)",
	93:  "Effects 3 Depth (Chorus)",
	94:  "Effects 4 Depth (Detune)",
	95:  "Effects 5 Depth (Phaser)",
	96:  "Data Increment",
	97:  "Data Decrement",
	98:  "Non-Registered Parameter Number (LSB)",
	99:  "Non-Registered Parameter Number (MSB)",
	100: "Registered Parameter Number (LSB)",
	101: "Registered Parameter Number (MSB)",
	120: "All Sound Off",
	121: "Reset All Controllers",
	122: "Local Control On/Off",
	123: "All Notes Off",
	124: "Omni Mode Off",
	125: "Omni Mode On",
	126: "Mono Mode On",
	127: "Poly Mode On",
}

// ControllerLabel returns the human name for a Control Change controller number.
func ControllerLabel(controller uint8) string {
	if name, ok := controllerNames[controller]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Controller: %d", controller)
}

// manufacturerNames maps SysEx manufacturer ID bytes to vendor names.
// Grounded on the MMA-assigned manufacturer ID list referenced throughout
// the retrieval pack's SysEx handling (williamsharkey-midi/midimessage/sysex).
var manufacturerNames = map[uint8]string{
	0x01: "Sequential Circuits",
	0x02: "IDP",
	0x03: "Voyetra/Octave-Plateau",
	0x04: "Moog",
	0x05: "Passport Designs",
	0x06: "Lexicon",
	0x07: "Kurzweil",
	0x08: "Fender",
	0x09: "Gulbransen",
	0x0A: "Delta Labs",
	0x0B: "Sound Comp.",
	0x0C: "General Electro",
	0x0D: "Techmar",
	0x0E: "Matthews Research",
	0x10: "Oberheim",
	0x11: "PAIA",
	0x12: "Simmons",
	0x13: "DigiDesign",
	0x14: "Fairlight",
	0x15: "JL Cooper",
	0x16: "Lowrey",
	0x17: "Lin",
	0x18: "Emu",
	0x1B: "Peavey",
	0x1C: "863 Peavey",
	0x1D: "360 Systems",
	0x1E: "Spectrum/Resonance",
	0x1F: "Perfect Fretworks",
	0x20: "KAT",
	0x21: "Opcode",
	0x22: "Rane",
	0x23: "Anadi/CAE",
	0x24: "KMX",
	0x25: "Allen & Heath",
	0x26: "Peavey Electronics",
	0x27: "360 Systems",
	0x29: "Spatial Sound/Anadigic",
	0x2B: "Zeta Systems",
	0x2C: "Axxes",
	0x2D: "Orban",
	0x36: "Kaged",
	0x37: "Digital Music",
	0x40: "Kawai",
	0x41: "Roland",
	0x42: "Korg",
	0x43: "Yamaha",
	0x44: "Casio",
	0x46: "Kamiya Studio",
	0x47: "Akai",
	0x48: "Japan Victor",
	0x49: "Meisosha",
	0x4A: "Hoshino Gakki (Ibanez)",
	0x4B: "Fujitsu Ten",
	0x4C: "Kawasaki",
	0x4D: "Kansai Electronics",
	0x4E: "Teac",
	0x50: "Matsushita",
	0x51: "Fostex",
	0x52: "Zoom",
	0x54: "Matsushita",
	0x55: "Suzuki",
	0x7D: "Educational/Non-commercial Use",
	0x7E: "Universal Non-Realtime",
	0x7F: "Universal Realtime",
}

// ManufacturerLabel returns the human name for a SysEx manufacturer ID byte.
func ManufacturerLabel(id uint8) string {
	if name, ok := manufacturerNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Manufacturer: %#02x", id)
}

// keyNames maps a Key Signature meta event's signed sharps/flats count to the
// name of its major key.
var keyNames = map[int8]string{
	-7: "Cb", -6: "Gb", -5: "Db", -4: "Ab", -3: "Eb", -2: "Bb", -1: "F",
	0: "C",
	1: "G", 2: "D", 3: "A", 4: "E", 5: "B", 6: "F#", 7: "C#",
}

// KeyName returns the major-key name for a Key Signature sharps/flats count.
func KeyName(keySignature int8) string {
	if name, ok := keyNames[keySignature]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Key: %d", keySignature)
}

// frameRateValues maps the 2-bit SMPTE frame rate code to its nominal fps.
var frameRateValues = map[FrameRate]float64{
	Fps24:   24,
	Fps25:   25,
	Fps2997: 29.97,
	Fps30:   30,
}

// FrameRateValue returns the nominal frames-per-second for an SMPTE frame rate.
func FrameRateValue(fr FrameRate) float64 {
	return frameRateValues[fr]
}

// mLiveTagLabels maps the non-standard 0x4B M-Live Tag's tag byte to its name.
var mLiveTagLabels = map[uint8]string{
	1: "Genre",
	2: "Artist",
	3: "Composer",
	4: "Duration",
	5: "BPM",
}

// MLiveTagLabel returns the human name for an M-Live Tag's tag byte.
func MLiveTagLabel(tag uint8) string {
	if name, ok := mLiveTagLabels[tag]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Tag: %d", tag)
}

// metaTypeLabels maps a meta event's type byte to its standard name.
var metaTypeLabels = map[byte]string{
	0x00: "Sequence Number",
	0x01: "Text",
	0x02: "Copyright Notice",
	0x03: "Track Name",
	0x04: "Instrument Name",
	0x05: "Lyrics",
	0x06: "Marker",
	0x07: "Cue Point",
	0x08: "Program Name",
	0x09: "Device Name",
	0x20: "Channel Prefix",
	0x21: "MIDI Port",
	0x2F: "End of Track",
	0x4B: "M-Live Tag",
	0x51: "Set Tempo",
	0x54: "SMPTE Offset",
	0x58: "Time Signature",
	0x59: "Key Signature",
	0x7F: "Sequencer Specific",
}

// MetaTypeLabel returns the human name for a meta event type byte.
func MetaTypeLabel(metaType byte) string {
	if name, ok := metaTypeLabels[metaType]; ok {
		return name
	}
	return fmt.Sprintf("Unknown Meta Event: %#02x", metaType)
}
