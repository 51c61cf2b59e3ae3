package narrate

import (
	"errors"
	"fmt"
)

// ErrFallbackUnavailable reports that the primary path failed and no
// fallback speech capability was injected.
var ErrFallbackUnavailable = errors.New("no fallback speech capability available")

// SynthesisError reports that the provider could not synthesize a sentence.
type SynthesisError struct {
	Index int
	Err   error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("synthesis failed for sentence %d: %v", e.Index, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// PlaybackError reports that a synthesized sentence could not be played.
type PlaybackError struct {
	Index int
	Err   error
}

func (e *PlaybackError) Error() string {
	return fmt.Sprintf("playback failed for sentence %d: %v", e.Index, e.Err)
}

func (e *PlaybackError) Unwrap() error {
	return e.Err
}
