// Last-resort narration via eSpeak/eSpeak-NG when the primary synthesis and
// playback path fails.

package speech

import (
	"fmt"
	"os/exec"
	"strconv"
)

// ESpeakFallback speaks text through a local espeak binary. It trades voice
// quality for independence from the network and the audio decoder.
type ESpeakFallback struct {
	path string
}

// DetectESpeak looks for eSpeak on PATH. A nil error means the fallback
// capability is present.
func DetectESpeak() (*ESpeakFallback, error) {
	candidates := []string{"espeak-ng", "espeak"}
	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return &ESpeakFallback{path: path}, nil
		}
	}
	return nil, fmt.Errorf("eSpeak executable not found in PATH")
}

// Speak synthesizes and plays text as a single unit. rate is the playback
// multiplier, mapped onto eSpeak's words-per-minute scale (default 175).
func (e *ESpeakFallback) Speak(text string, rate float64) error {
	if rate <= 0 {
		rate = 1.0
	}
	speed := int(175 * rate)

	cmd := exec.Command(e.path, "-s", strconv.Itoa(speed), text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("eSpeak failed: %w", err)
	}
	return nil
}
