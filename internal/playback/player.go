// Package playback abstracts audio output for narration.
package playback

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

// Player plays one synthesized audio clip at a time. Play blocks until the
// clip finishes or ctx is cancelled. Stop is safe to call when nothing is
// playing.
type Player interface {
	Play(ctx context.Context, audio []byte, rate float64) error
	Stop()
}

// nopReadCloser wraps a bytes.Reader so mp3.Decode can own it.
type nopReadCloser struct{ io.Reader }

func (nopReadCloser) Close() error { return nil }

// BeepPlayer renders MP3 clips through the system speaker.
type BeepPlayer struct {
	mu          sync.Mutex
	ctrl        *beep.Ctrl
	done        chan struct{}
	initialized bool
	sampleRate  beep.SampleRate
}

func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Play decodes the clip and plays it at the given rate (1.0 = natural
// speed). Slower rates stretch the audio via resampling.
func (p *BeepPlayer) Play(ctx context.Context, audio []byte, rate float64) error {
	streamer, format, err := mp3.Decode(nopReadCloser{bytes.NewReader(audio)})
	if err != nil {
		return fmt.Errorf("failed to decode audio: %w", err)
	}
	defer streamer.Close()

	if rate <= 0 {
		rate = 1.0
	}

	p.mu.Lock()
	if !p.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			p.mu.Unlock()
			return fmt.Errorf("failed to init speaker: %w", err)
		}
		p.initialized = true
		p.sampleRate = format.SampleRate
	}

	var stream beep.Streamer = streamer
	if format.SampleRate != p.sampleRate {
		stream = beep.Resample(4, format.SampleRate, p.sampleRate, streamer)
	}
	if rate != 1.0 {
		// ResampleRatio at ratio r plays r times faster.
		stream = beep.ResampleRatio(4, rate, stream)
	}

	ctrl := &beep.Ctrl{Streamer: stream}
	done := make(chan struct{})
	p.ctrl = ctrl
	p.done = done
	p.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
		p.mu.Lock()
		p.ctrl = nil
		p.mu.Unlock()
		return nil
	case <-ctx.Done():
		p.Stop()
		return ctx.Err()
	}
}

// Stop silences the current clip, if any.
func (p *BeepPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	p.ctrl.Streamer = nil
	speaker.Unlock()
	p.ctrl = nil
}
