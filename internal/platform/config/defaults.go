package config

import "time"

// DefaultConfig returns the built-in configuration. A config file and
// environment variables are layered on top of these values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			IP:   "0.0.0.0",
			Port: 8000,
		},
		Log: LogConfig{
			Level: "INFO",
			Dir:   "data/logs",
			File:  "traductor.log",
		},
		Pipeline: PipelineConfig{
			ForcedLanguage:      "es",
			DefaultLanguage:     "es",
			TieMargin:           2,
			ReinforceRatio:      1.25,
			SimilarityThreshold: 0.75,
		},
		ASR: ASRConfig{
			Whisper: WhisperConfig{
				Model:   "whisper-1",
				Timeout: 30 * time.Second,
			},
		},
		Translate: TranslateConfig{
			Timeout: 15 * time.Second,
			Google: GoogleConfig{
				BaseURL: "https://translate.googleapis.com",
			},
			MyMemory: MyMemoryConfig{
				BaseURL: "https://api.mymemory.translated.net",
			},
		},
		Glossary: GlossaryConfig{
			Enabled: true,
		},
		TTS: TTSConfig{
			Eleven: ElevenConfig{
				BaseURL: "https://api.elevenlabs.io",
				ModelID: "eleven_multilingual_v2",
				Timeout: 30 * time.Second,
			},
			Edge: EdgeConfig{
				VoiceSpanish: "es-ES-ElviraNeural",
				VoiceEnglish: "en-US-AriaNeural",
			},
			Tempo: TempoConfig{
				Factor: 0.95,
				FFmpeg: "ffmpeg",
			},
		},
	}
}
