package tutor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kidspeak/internal/chat"
	"kidspeak/internal/cli/scheme/colours"
	"kidspeak/internal/domain/topic"
	"kidspeak/internal/narrate"
	"kidspeak/internal/playback"
	"kidspeak/internal/segment"
	"kidspeak/internal/speech"
)

// KidSpeak main application structure
type KidSpeak struct {
	chatClient *chat.Client
	synth      speech.Synthesizer
	Narrator   *narrate.Controller

	topics  []topic.Topic
	student chat.StudentInfo

	ctx    context.Context
	cancel context.CancelFunc
}

func NewKidSpeak() *KidSpeak {
	providerType := viper.GetString("tts.provider")

	synth, err := speech.NewSynthesizer(speech.Config{
		Type:       providerType,
		BackendURL: viper.GetString("backend.url"),
	})
	if err != nil {
		logrus.WithError(err).Fatal("failed to create speech synthesizer")
	}

	var player playback.Player
	if providerType == speech.ProviderMock.String() {
		player = playback.NewMockPlayer()
	} else {
		player = playback.NewBeepPlayer()
	}

	// The fallback capability is detected once at startup; narration runs
	// without it when eSpeak is not installed.
	var fallback narrate.FallbackSpeech
	if espeak, err := speech.DetectESpeak(); err == nil {
		fallback = espeak
	} else {
		logrus.WithError(err).Debug("no fallback speech capability")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &KidSpeak{
		chatClient: chat.NewClient(viper.GetString("backend.url")),
		synth:      synth,
		Narrator:   narrate.NewController(synth, player, fallback),
		topics:     topic.Default(),
		student: chat.StudentInfo{
			Name:  viper.GetString("student.name"),
			Age:   viper.GetInt("student.age"),
			Level: viper.GetString("student.level"),
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Cancel stops any running narration and shuts the app down.
func (ks *KidSpeak) Cancel() {
	ks.Narrator.Cancel()
	ks.cancel()
	ks.synth.Close()
}

func (ks *KidSpeak) ShowWelcome() {
	fmt.Println()
	colours.Title.Println("🦉 Welcome to KidSpeak! 🦉")
	fmt.Println()
	colours.Info.Println("📚 Available commands:")
	fmt.Println("  • kidspeak chat     - Start a spoken English lesson")
	fmt.Println("  • kidspeak speak    - Read a text aloud sentence by sentence")
	fmt.Println("  • kidspeak topics   - Browse learning topics")
	fmt.Println("  • kidspeak voices   - List available voices")
	fmt.Println("  • kidspeak settings - Show voice and student settings")
	fmt.Println()
	colours.Prompt.Println("✨ Ready to practice some English? ✨")
}

// StartChat runs the interactive lesson loop: student types (or says) a
// message, the backend replies, and the reply is narrated sentence by
// sentence.
func (ks *KidSpeak) StartChat(cmd *cobra.Command, args []string) {
	topicID, _ := cmd.Flags().GetString("topic")

	current := topic.Find(ks.topics, topicID)
	if current == nil {
		current = ks.interactiveTopicSelection()
		if current == nil {
			return
		}
	}

	greeting := ks.topicGreeting(*current)
	fmt.Println()
	colours.Teacher.Printf("🦉 Teacher: %s\n", greeting)
	go ks.narrate(greeting)

	fmt.Println()
	colours.Info.Println("💡 Type your answer and press Enter. 'stop' interrupts the teacher,")
	colours.Info.Println("   'topic' picks a new topic, 'q' ends the lesson.")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-ks.ctx.Done():
			return
		default:
		}

		fmt.Println()
		colours.Student.Print("🧒 You: ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		input = strings.TrimSpace(input)

		switch strings.ToLower(input) {
		case "":
			continue
		case "q", "quit":
			ks.Narrator.Cancel()
			colours.Warning.Println("👋 Great lesson! See you next time! 🌟")
			return
		case "stop":
			ks.Narrator.Cancel()
			colours.Warning.Println("⏹️  Stopped")
			continue
		case "topic":
			ks.Narrator.Cancel()
			if next := ks.interactiveTopicSelection(); next != nil {
				current = next
				greeting := ks.topicGreeting(*current)
				fmt.Println()
				colours.Teacher.Printf("🦉 Teacher: %s\n", greeting)
				go ks.narrate(greeting)
			}
			continue
		}

		reply, err := ks.chatClient.Send(ks.ctx, chat.Message{
			Text:    input,
			Topic:   current,
			Student: ks.student,
		})
		if err != nil {
			colours.Error.Printf("❌ Oops! Something went wrong: %v\n", err)
			colours.Info.Println("💡 Please try again.")
			continue
		}

		fmt.Println()
		colours.Teacher.Printf("🦉 Teacher: %s\n", reply)
		go ks.narrate(reply)
	}
}

// SpeakText narrates the given text once and reports the outcome.
func (ks *KidSpeak) SpeakText(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		colours.Error.Println("❌ Nothing to speak! Try: kidspeak speak \"Hello there!\"")
		return
	}
	text := strings.Join(args, " ")

	colours.Success.Println("🎵 Narrating... 🎵")
	outcome, err := ks.speakWithProgress(text)
	switch outcome {
	case narrate.OutcomeDone:
		colours.Success.Println("✅ All done! 🌟")
	case narrate.OutcomeCancelled:
		colours.Warning.Println("⏹️  Narration cancelled")
	case narrate.OutcomeFailed:
		colours.Error.Printf("❌ Narration failed: %v\n", err)
	}
}

// narrate speaks text in the background, logging rather than printing the
// outcome so it doesn't fight the input prompt.
func (ks *KidSpeak) narrate(text string) {
	outcome, err := ks.speakWithProgress(text)
	if outcome == narrate.OutcomeFailed {
		colours.Error.Printf("\n❌ The teacher's voice failed: %v\n", err)
	}
}

func (ks *KidSpeak) speakWithProgress(text string) (narrate.Outcome, error) {
	total := len(segment.Split(text))
	basePause := time.Duration(viper.GetInt("narration.base_pause_ms")) * time.Millisecond

	return ks.Narrator.Speak(ks.ctx, narrate.Request{
		Text:      text,
		Voice:     viper.GetString("tts.voice"),
		Model:     viper.GetString("tts.model"),
		Rate:      segment.RateForLevel(ks.student.Level),
		BasePause: basePause,
		Callbacks: narrate.Callbacks{
			OnSentenceStart: func(s segment.Sentence) {
				logrus.WithFields(logrus.Fields{
					"sentence": s.Index + 1,
					"of":       total,
				}).Debug("speaking")
			},
			OnPause: func(d time.Duration, index int) {
				logrus.WithFields(logrus.Fields{
					"after": index,
					"pause": d,
				}).Debug("pausing")
			},
		},
	})
}

func (ks *KidSpeak) topicGreeting(t topic.Topic) string {
	title := strings.ToLower(t.Title)
	return fmt.Sprintf(
		"Hello %s! I'm Professor Wise-Owl, your English teacher! Today we're going to learn about %s! %s. Let's start by learning some new words. What do you know about %s, %s?",
		ks.student.Name, title, t.Description, title, ks.student.Name)
}

func (ks *KidSpeak) interactiveTopicSelection() *topic.Topic {
	available := topic.ForAge(ks.topics, ks.student.Age)
	if len(available) == 0 {
		available = ks.topics
	}

	fmt.Println()
	colours.Title.Println("🎯 Choose Your Learning Topic! 🎯")
	fmt.Println()

	for i, t := range available {
		fmt.Printf("%d. %s ", i+1, t.Icon)
		colours.Title.Printf("%s", t.Title)
		fmt.Printf(" — %s (ages %s)\n", t.Description, t.AgeRange)
	}

	fmt.Println()
	colours.Prompt.Print("🌟 Enter the number of your topic (or 'q' to quit): ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if input == "q" || input == "quit" {
		colours.Warning.Println("👋 Maybe next time! 🌙")
		return nil
	}

	choice, err := strconv.Atoi(input)
	if err != nil || choice < 1 || choice > len(available) {
		colours.Error.Println("❌ Invalid selection! Please try again.")
		return nil
	}
	return &available[choice-1]
}

// ListTopics prints the available lesson topics, optionally filtered by age.
func (ks *KidSpeak) ListTopics(cmd *cobra.Command, args []string) {
	age, _ := cmd.Flags().GetInt("age")

	topics := ks.topics
	if age > 0 {
		topics = topic.ForAge(topics, age)
	}

	fmt.Println()
	colours.Title.Println("🎯 Learning Topics 🎯")
	fmt.Println()

	for _, t := range topics {
		fmt.Printf("  %s ", t.Icon)
		colours.Title.Printf("%s", t.Title)
		fmt.Printf(" (ages %s)\n", t.AgeRange)
		fmt.Printf("     💡 %s\n", t.Description)
		colours.Info.Printf("     📖 Words: %s\n", strings.Join(t.Vocabulary, ", "))
		fmt.Println()
	}

	if len(topics) == 0 {
		colours.Warning.Println("🔍 No topics for that age.")
	} else {
		colours.Success.Printf("✨ %d topics ready to explore! ✨\n", len(topics))
	}
}

// ListVoices shows what the configured synthesis provider offers.
func (ks *KidSpeak) ListVoices(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("🎤 Available Voices 🎤")
	fmt.Println()

	switch s := ks.synth.(type) {
	case *speech.BackendSynthesizer:
		opts := s.TTSOptions(ks.ctx)
		colours.Info.Printf("Voices: %s\n", strings.Join(opts.Voices, ", "))
		colours.Info.Printf("Models: %s\n", strings.Join(opts.Models, ", "))
	case *speech.GoogleSynthesizer:
		voices, err := s.ListVoices(ks.ctx)
		if err != nil {
			colours.Error.Printf("❌ Failed to list voices: %v\n", err)
			return
		}
		for _, v := range voices {
			fmt.Printf("  • %s\n", v)
		}
	default:
		opts := speech.DefaultOptions()
		colours.Info.Printf("Voices: %s\n", strings.Join(opts.Voices, ", "))
		colours.Info.Printf("Models: %s\n", strings.Join(opts.Models, ", "))
	}
}

// ConfigureSettings shows the current voice and student settings.
func (ks *KidSpeak) ConfigureSettings(cmd *cobra.Command, args []string) {
	fmt.Println()
	colours.Title.Println("⚙️ KidSpeak Settings ⚙️")
	fmt.Println()

	available := make([]string, 0, 4)
	for _, p := range speech.AvailableProviders() {
		available = append(available, p.String())
	}

	colours.Prompt.Println("🎤 Voice:")
	fmt.Printf("  • Provider: %s (available: %s)\n",
		viper.GetString("tts.provider"), strings.Join(available, ", "))
	fmt.Printf("  • Voice: %s\n", viper.GetString("tts.voice"))
	fmt.Printf("  • Model: %s\n", viper.GetString("tts.model"))
	fmt.Printf("  • Base pause: %dms\n", viper.GetInt("narration.base_pause_ms"))
	fmt.Println()

	colours.Prompt.Println("🧒 Student:")
	fmt.Printf("  • Name: %s\n", ks.student.Name)
	fmt.Printf("  • Age: %d\n", ks.student.Age)
	fmt.Printf("  • Level: %s (speech rate %.1fx)\n",
		ks.student.Level, segment.RateForLevel(ks.student.Level))
	fmt.Println()

	colours.Info.Println("💡 Edit ~/.kidspeak/kidspeak.yaml to change these.")
}
