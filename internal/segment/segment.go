// Package segment splits tutor replies into sentences and estimates the
// pause a young listener needs between them.
package segment

import (
	"math"
	"strings"
	"time"
	"unicode"
)

// Sentence is one narratable fragment of a reply, in source order.
type Sentence struct {
	Text  string
	Index int
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split breaks text into sentences. Whitespace runs are collapsed to single
// spaces, the terminal punctuation stays attached to its sentence, and text
// without any terminator comes back as a single sentence. Empty or
// whitespace-only input yields no sentences.
func Split(text string) []Sentence {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	var parts []string
	var b strings.Builder
	runes := []rune(normalized)
	for i, r := range runes {
		b.WriteRune(r)
		// Break after .!? when the next rune is a space.
		if isTerminal(r) && i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			parts = append(parts, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}

	sentences := make([]Sentence, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, Sentence{Text: p, Index: len(sentences)})
	}

	if len(sentences) == 0 {
		return []Sentence{{Text: normalized, Index: 0}}
	}
	return sentences
}

// PauseDuration estimates how long to wait after a sentence before speaking
// the next one. Longer sentences, questions, exclamations and numbers all
// earn the listener extra thinking time.
func PauseDuration(sentence string, base time.Duration) time.Duration {
	words := len(strings.Split(sentence, " "))

	multiplier := 1.0
	if words > 10 {
		multiplier += 0.5
	}
	if words > 15 {
		multiplier += 0.5
	}
	if strings.Contains(sentence, "?") {
		multiplier += 0.3
	}
	if strings.Contains(sentence, "!") {
		multiplier += 0.2
	}
	if strings.ContainsFunc(sentence, unicode.IsDigit) {
		multiplier += 0.4
	}

	ms := math.Round(float64(base.Milliseconds()) * multiplier)
	return time.Duration(ms) * time.Millisecond
}

// Speech rates per student level.
const (
	RateBeginner     = 0.7
	RateIntermediate = 0.9
	RateAdvanced     = 1.1
)

// RateForLevel maps a student level to a playback rate. Unknown levels get
// the beginner rate.
func RateForLevel(level string) float64 {
	switch level {
	case "intermediate":
		return RateIntermediate
	case "advanced":
		return RateAdvanced
	default:
		return RateBeginner
	}
}

// FormatForSpeech spaces out digits and terminal punctuation so the
// synthesizer pronounces them distinctly.
func FormatForSpeech(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4)
	inNumber := false
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			if !inNumber {
				b.WriteRune(' ')
				inNumber = true
			}
			b.WriteRune(r)
		case isTerminal(r):
			if inNumber {
				b.WriteRune(' ')
				inNumber = false
			}
			b.WriteRune(r)
			b.WriteRune(' ')
		default:
			if inNumber {
				b.WriteRune(' ')
				inNumber = false
			}
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
