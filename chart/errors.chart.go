package chart

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownNote    = errors.New("unknown note type")
	ErrNoTempo        = errors.New("chart has no tempo note")
	ErrUnsortedTempo  = errors.New("tempo notes are not sorted by beat")
	ErrInvalidTempo   = errors.New("tempo must be positive")
	ErrEmptySlide     = errors.New("slide has no connections")
	ErrUnsortedSlide  = errors.New("slide connections are not sorted by beat")
	ErrLaneOutOfRange = errors.New("lane out of range")
	ErrInvalidBeat    = fmt.Errorf("beat must be in [0, %d]", BeatLimit)
	ErrInvalidWidth   = errors.New("directional width must be at least 1")
)

// ValidationError points at the note that broke a chart invariant.
type ValidationError struct {
	Index int
	Type  NoteType
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("note %d (%s): %v", e.Index, e.Type, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
