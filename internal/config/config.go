package config

import "github.com/spf13/viper"

func SetDefaults() {
	viper.SetDefault("tts.provider", "auto") // Auto-select best provider
	viper.SetDefault("tts.voice", "alloy")
	viper.SetDefault("tts.model", "tts-1")
	viper.SetDefault("tts.cache_path", "")

	viper.SetDefault("backend.url", "http://localhost:5000/api/chat")
	viper.SetDefault("backend.stream_url", "ws://localhost:5000/api/chat/speech-stream")

	viper.SetDefault("narration.base_pause_ms", 1000)

	viper.SetDefault("student.name", "friend")
	viper.SetDefault("student.age", 7)
	viper.SetDefault("student.level", "beginner")
}
