// Package narrate drives sentence-by-sentence narration of tutor replies:
// synthesize a sentence, play it, wait a computed pause, move on. A narration
// session can be cancelled at any point and falls back to a local speech
// capability when the primary path fails.
package narrate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"kidspeak/internal/playback"
	"kidspeak/internal/segment"
	"kidspeak/internal/speech"
)

// FallbackSpeech speaks text as a single unit when the primary synthesis or
// playback path fails. Optional; a nil capability means the session fails
// instead.
type FallbackSpeech interface {
	Speak(text string, rate float64) error
}

// Callbacks report narration progress. All three fire strictly in sentence
// order and never after cancellation. Any of them may be nil, and any of
// them may call Cancel.
type Callbacks struct {
	OnSentenceStart func(s segment.Sentence)
	OnSentenceEnd   func(s segment.Sentence)
	OnPause         func(d time.Duration, index int)
}

// Request describes one narration session.
type Request struct {
	Text      string
	Voice     string
	Model     string
	Rate      float64       // playback speed multiplier, 0 = natural
	BasePause time.Duration // base pause between sentences, 0 = 1s
	Callbacks Callbacks
}

// Outcome of a finished session. Cancellation is an outcome, not an error.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeCancelled
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State of a narration session.
type State int

const (
	StateIdle State = iota
	StateSegmenting
	StateSpeaking
	StatePausing
	StateDone
	StateCancelled
	StateFailed
)

// session is the mutable state of one Speak call. Only the run loop writes
// to state; the session context is the single cancellation signal.
type session struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	state  State
}

// Controller narrates one text at a time. Starting a new session cancels the
// active one first, so two sessions never play audio concurrently.
type Controller struct {
	synth    speech.Synthesizer
	player   playback.Player
	fallback FallbackSpeech

	mu     sync.Mutex
	active *session
}

func NewController(synth speech.Synthesizer, player playback.Player, fallback FallbackSpeech) *Controller {
	return &Controller{
		synth:    synth,
		player:   player,
		fallback: fallback,
	}
}

// Speak narrates req.Text sentence by sentence and blocks until the session
// finishes. Returns OutcomeCancelled with a nil error when cancelled; an
// error accompanies only OutcomeFailed.
func (c *Controller) Speak(ctx context.Context, req Request) (Outcome, error) {
	s := c.begin(ctx)
	defer c.finish(s)
	return c.run(s, req)
}

// Cancel halts the active session: current audio stops, any pending pause is
// skipped, no further callbacks fire. Idempotent, and safe to call from
// inside a progress callback.
func (c *Controller) Cancel() {
	c.mu.Lock()
	s := c.active
	c.mu.Unlock()

	if s == nil {
		return
	}
	s.cancel()
	c.player.Stop()
}

// begin installs a fresh session, cancelling and waiting out any prior one
// so that no two sessions ever play audio at the same time.
func (c *Controller) begin(ctx context.Context) *session {
	for {
		c.mu.Lock()
		if c.active == nil {
			sctx, cancel := context.WithCancel(ctx)
			s := &session{
				id:     uuid.NewString()[:8],
				ctx:    sctx,
				cancel: cancel,
				done:   make(chan struct{}),
				state:  StateIdle,
			}
			c.active = s
			c.mu.Unlock()
			return s
		}
		prior := c.active
		c.mu.Unlock()

		prior.cancel()
		c.player.Stop()
		<-prior.done
	}
}

func (c *Controller) finish(s *session) {
	s.cancel()
	c.mu.Lock()
	if c.active == s {
		c.active = nil
	}
	c.mu.Unlock()
	close(s.done)
}

func (c *Controller) run(s *session, req Request) (Outcome, error) {
	log := logrus.WithField("session", s.id)

	s.state = StateSegmenting
	sentences := segment.Split(req.Text)
	if len(sentences) == 0 {
		s.state = StateDone
		return OutcomeDone, nil
	}

	rate := req.Rate
	if rate <= 0 {
		rate = 1.0
	}
	base := req.BasePause
	if base <= 0 {
		base = time.Second
	}

	log.WithField("sentences", len(sentences)).Debug("narration started")

	for i, sentence := range sentences {
		if s.ctx.Err() != nil {
			s.state = StateCancelled
			return OutcomeCancelled, nil
		}
		s.state = StateSpeaking

		audio, err := c.synth.Synthesize(s.ctx, sentence.Text, req.Voice, req.Model)
		if s.ctx.Err() != nil {
			// A late synthesis result is discarded, never played.
			s.state = StateCancelled
			return OutcomeCancelled, nil
		}
		if err != nil {
			return c.speakRemaining(s, sentences[i:], rate, &SynthesisError{Index: i, Err: err})
		}

		if cb := req.Callbacks.OnSentenceStart; cb != nil {
			cb(sentence)
		}

		if err := c.player.Play(s.ctx, audio, rate); err != nil {
			if s.ctx.Err() != nil {
				s.state = StateCancelled
				return OutcomeCancelled, nil
			}
			return c.speakRemaining(s, sentences[i:], rate, &PlaybackError{Index: i, Err: err})
		}
		if s.ctx.Err() != nil {
			s.state = StateCancelled
			return OutcomeCancelled, nil
		}

		if cb := req.Callbacks.OnSentenceEnd; cb != nil {
			cb(sentence)
		}
		if s.ctx.Err() != nil {
			s.state = StateCancelled
			return OutcomeCancelled, nil
		}

		if i == len(sentences)-1 {
			break
		}

		s.state = StatePausing
		pause := segment.PauseDuration(sentence.Text, base)
		if cb := req.Callbacks.OnPause; cb != nil {
			cb(pause, i)
		}

		timer := time.NewTimer(pause)
		select {
		case <-timer.C:
		case <-s.ctx.Done():
			timer.Stop()
			s.state = StateCancelled
			return OutcomeCancelled, nil
		}
	}

	s.state = StateDone
	log.Debug("narration finished")
	return OutcomeDone, nil
}

// speakRemaining makes the single fallback attempt: the rest of the text is
// spoken as one unit, with no further per-sentence callbacks.
func (c *Controller) speakRemaining(s *session, rest []segment.Sentence, rate float64, cause error) (Outcome, error) {
	if s.ctx.Err() != nil {
		s.state = StateCancelled
		return OutcomeCancelled, nil
	}

	if c.fallback == nil {
		s.state = StateFailed
		return OutcomeFailed, fmt.Errorf("%w (primary error: %v)", ErrFallbackUnavailable, cause)
	}

	texts := make([]string, len(rest))
	for i, sn := range rest {
		texts[i] = sn.Text
	}
	remaining := strings.Join(texts, " ")

	logrus.WithField("session", s.id).WithError(cause).
		Warn("primary narration path failed, using fallback speech")

	if err := c.fallback.Speak(remaining, rate); err != nil {
		s.state = StateFailed
		return OutcomeFailed, fmt.Errorf("fallback speech failed: %v (primary error: %w)", err, cause)
	}

	s.state = StateDone
	return OutcomeDone, nil
}
