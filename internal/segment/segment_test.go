package segment

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(sentences []Sentence) []string {
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = s.Text
	}
	return out
}

func TestSplit_Empty(t *testing.T) {
	assert.Empty(t, Split(""))
	assert.Empty(t, Split("   "))
	assert.Empty(t, Split("\n\t  \n"))
}

func TestSplit_NoTerminalPunctuation(t *testing.T) {
	got := Split("Hello world")
	require.Len(t, got, 1)
	assert.Equal(t, "Hello world", got[0].Text)
	assert.Equal(t, 0, got[0].Index)
}

func TestSplit_MultipleSentences(t *testing.T) {
	got := Split("Hi! How are you? I am fine.")
	assert.Equal(t, []string{"Hi!", "How are you?", "I am fine."}, texts(got))
	for i, s := range got {
		assert.Equal(t, i, s.Index)
	}
}

func TestSplit_NormalizesWhitespace(t *testing.T) {
	got := Split("  Multiple   spaces   here.  ")
	assert.Equal(t, []string{"Multiple spaces here."}, texts(got))
}

func TestSplit_TerminatorWithoutTrailingSpace(t *testing.T) {
	// "3.14" must not split mid-number.
	got := Split("Pi is about 3.14 you know. Neat!")
	assert.Equal(t, []string{"Pi is about 3.14 you know.", "Neat!"}, texts(got))
}

func TestSplit_Idempotent(t *testing.T) {
	inputs := []string{
		"Hi! How are you? I am fine.",
		"One sentence only",
		"  Spaced   out.   Very  spaced!  ",
		"Pi is about 3.14 you know. Neat!",
	}
	for _, input := range inputs {
		first := Split(input)
		rejoined := strings.Join(texts(first), " ")
		second := Split(rejoined)
		assert.Equal(t, texts(first), texts(second), "input %q", input)
	}
}

func TestPauseDuration_Question(t *testing.T) {
	// 9 words, no length bonus, question bonus 0.3.
	got := PauseDuration("Is it raining today in the big city now?", time.Second)
	assert.Equal(t, 1300*time.Millisecond, got)
}

func TestPauseDuration_LongSentence(t *testing.T) {
	// 16 words: +0.5 for >10 and +0.5 for >15. "sixteen" is a word, not a digit.
	sentence := "One two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen."
	got := PauseDuration(sentence, time.Second)
	assert.Equal(t, 2*time.Second, got)
}

func TestPauseDuration_Additive(t *testing.T) {
	// 13 words (+0.5), digit (+0.4), question (+0.3): multiplier 2.2.
	sentence := "Can you count all the way up to the number 20 for me?"
	got := PauseDuration(sentence, time.Second)
	assert.Equal(t, 2200*time.Millisecond, got)
}

func TestPauseDuration_Exclamation(t *testing.T) {
	got := PauseDuration("Wow, great job!", 500*time.Millisecond)
	assert.Equal(t, 600*time.Millisecond, got)
}

func TestPauseDuration_Plain(t *testing.T) {
	got := PauseDuration("I like cats.", time.Second)
	assert.Equal(t, time.Second, got)
}

func TestRateForLevel(t *testing.T) {
	assert.Equal(t, 0.7, RateForLevel("beginner"))
	assert.Equal(t, 0.9, RateForLevel("intermediate"))
	assert.Equal(t, 1.1, RateForLevel("advanced"))
	assert.Equal(t, 0.7, RateForLevel("unknown"))
	assert.Equal(t, 0.7, RateForLevel(""))
}

func TestFormatForSpeech(t *testing.T) {
	assert.Equal(t, "I am 7 years old. Hooray!", FormatForSpeech("I am 7 years old.Hooray!"))
	assert.Equal(t, "Count to 20 now", FormatForSpeech("Count to 20 now"))
	assert.Equal(t, "a 42 b", FormatForSpeech("a42b"))
}
