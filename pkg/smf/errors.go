package smf

import (
	"fmt"

	"github.com/zurustar/smfcodec/pkg/bytecursor"
)

// ErrorKind discriminates the codec's syntactic/structural failure modes.
// Semantic issues (a well-formed file that violates SMF conventions) are
// never reported this way; they come back as strings from Validate.
type ErrorKind string

const (
	ErrorUnderflow      ErrorKind = "UNDERFLOW"
	ErrorMissingField   ErrorKind = "MISSING_FIELD"
	ErrorInvalidMIDI    ErrorKind = "INVALID_MIDI_VALUE"
	ErrorUnknownNote    ErrorKind = "UNKNOWN_NOTE_NAME"
	ErrorBadChunkType   ErrorKind = "BAD_CHUNK_TYPE"
	ErrorNoRunningStatus ErrorKind = "NO_RUNNING_STATUS"
)

// CodecError is the single error type raised by the decoder and encoder for
// structural failures. It carries a Kind discriminator the way the teacher
// repo's RuntimeError carries a Type, so callers can switch on failure class
// without string-matching Error().
type CodecError struct {
	Kind    ErrorKind
	Message string
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// NewUnderflowError wraps a bytecursor.Underflow in a CodecError.
func NewUnderflowError(requested, available int) *CodecError {
	return &CodecError{
		Kind:    ErrorUnderflow,
		Message: fmt.Sprintf("requested %d bytes, %d available", requested, available),
	}
}

// NewMissingFieldError reports a required field missing from an event being encoded.
func NewMissingFieldError(event, field string) *CodecError {
	return &CodecError{
		Kind:    ErrorMissingField,
		Message: fmt.Sprintf("%s: missing required field %q", event, field),
	}
}

// NewInvalidMIDIValueError reports a value outside the legal MIDI range for its field.
func NewInvalidMIDIValueError(field string, value int) *CodecError {
	return &CodecError{
		Kind:    ErrorInvalidMIDI,
		Message: fmt.Sprintf("%s: value %d out of MIDI range", field, value),
	}
}

// NewUnknownNoteNameError reports a scientific-pitch name that doesn't parse.
func NewUnknownNoteNameError(name string) *CodecError {
	return &CodecError{
		Kind:    ErrorUnknownNote,
		Message: fmt.Sprintf("unrecognized note name: %q", name),
	}
}

// NewNoRunningStatusError reports a data byte encountered with no status byte ever seen.
func NewNoRunningStatusError(trackIndex int) *CodecError {
	return &CodecError{
		Kind:    ErrorNoRunningStatus,
		Message: fmt.Sprintf("track %d: data byte with no running status active", trackIndex),
	}
}

// wrapUnderflow converts a bytecursor.Underflow into the codec's own error
// type so callers of Parse/Encode only ever see *CodecError.
func wrapUnderflow(err error) error {
	if uf, ok := err.(*bytecursor.Underflow); ok {
		return NewUnderflowError(uf.Requested, uf.Available)
	}
	return err
}
