package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"kidspeak/internal/cli/scheme/colours"
	"kidspeak/internal/config"
	"kidspeak/internal/tutor"
)

func main() {

	app := tutor.NewKidSpeak()

	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		app.Cancel()
		fmt.Println("\n" + colours.Warning.Sprint("👋 Goodbye! Keep practicing! 🌟"))
		os.Exit(0)
	}()

	rootCmd := &cobra.Command{
		Use:   "kidspeak",
		Short: "🦉 A talking English teacher for kids",
		Long: `
┌─────────────────────────────────────┐
│  🦉 Welcome to KidSpeak! 🗣️        │
│  Your talking English teacher       │
│  Lessons read aloud for kids 👶✨  │
└─────────────────────────────────────┘

KidSpeak chats with young learners and reads every reply aloud,
one sentence at a time, with pauses to think. Perfect for practice! 🌟
		`,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowWelcome()
		},
	}

	// Chat command
	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "💬 Start a spoken English lesson",
		Long:  "Chat with the teacher; every reply is narrated sentence by sentence",
		Run:   app.StartChat,
	}

	// Speak command
	speakCmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "🗣️ Read a text aloud",
		Long:  "Narrate the given text sentence by sentence with pacing pauses",
		Run:   app.SpeakText,
	}

	// Topics command
	topicsCmd := &cobra.Command{
		Use:   "topics",
		Short: "🎯 List learning topics",
		Long:  "Display the lesson topics and their vocabulary",
		Run:   app.ListTopics,
	}

	// Voices command
	voicesCmd := &cobra.Command{
		Use:   "voices",
		Short: "🎤 List available voices",
		Long:  "Show the voices and models the speech provider offers",
		Run:   app.ListVoices,
	}

	// Settings command
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "⚙️ Show voice and student settings",
		Long:  "Display the configured voice, speech rate, and student profile",
		Run:   app.ConfigureSettings,
	}

	// Add flags
	chatCmd.Flags().StringP("topic", "t", "", "Start directly with a topic ID (see topics list)")
	topicsCmd.Flags().IntP("age", "a", 0, "Filter topics by student age")

	rootCmd.AddCommand(chatCmd, speakCmd, topicsCmd, voicesCmd, settingsCmd)

	if err := rootCmd.Execute(); err != nil {
		colours.Error.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}
}

// Configuration management with Viper
func init() {
	viper.SetConfigName("kidspeak")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME/.kidspeak")
	viper.AddConfigPath(".")

	config.SetDefaults()

	viper.SetEnvPrefix("kidspeak")
	viper.BindEnv("backend.url", "KIDSPEAK_BACKEND_URL")

	viper.ReadInConfig()
}
