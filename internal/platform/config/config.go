package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	ASR       ASRConfig       `yaml:"asr"`
	Translate TranslateConfig `yaml:"translate"`
	Glossary  GlossaryConfig  `yaml:"glossary"`
	TTS       TTSConfig       `yaml:"tts"`
}

type ServerConfig struct {
	IP   string `yaml:"ip"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"log_level"`
	Dir   string `yaml:"log_dir"`
	File  string `yaml:"log_file"`
}

// PipelineConfig carries the language decision heuristics. The numeric
// thresholds are empirical; they have not been validated against a real
// audio corpus and are kept overridable for exactly that reason.
type PipelineConfig struct {
	ForcedLanguage      string  `yaml:"forced_language"`      // auto|es|en
	DefaultLanguage     string  `yaml:"default_language"`     // fallback source for ties/unknown
	TieMargin           int     `yaml:"tie_margin"`
	ReinforceRatio      float64 `yaml:"reinforce_ratio"`
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

type ASRConfig struct {
	Whisper WhisperConfig `yaml:"whisper"`
}

type WhisperConfig struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

type TranslateConfig struct {
	Timeout  time.Duration  `yaml:"timeout"`
	Google   GoogleConfig   `yaml:"google"`
	MyMemory MyMemoryConfig `yaml:"mymemory"`
}

type GoogleConfig struct {
	BaseURL string `yaml:"base_url"`
}

type MyMemoryConfig struct {
	BaseURL string `yaml:"base_url"`
	Email   string `yaml:"email"` // optional, raises the daily quota
}

type GlossaryConfig struct {
	Enabled bool `yaml:"enabled"`
}

type TTSConfig struct {
	Eleven ElevenConfig `yaml:"elevenlabs"`
	Edge   EdgeConfig   `yaml:"edge"`
	Tempo  TempoConfig  `yaml:"tempo"`
}

// ElevenConfig holds the primary voice provider credential pair. The
// provider is skipped entirely unless both values are present.
type ElevenConfig struct {
	APIKey  string        `yaml:"api_key"`
	VoiceID string        `yaml:"voice_id"`
	BaseURL string        `yaml:"base_url"`
	ModelID string        `yaml:"model_id"`
	Timeout time.Duration `yaml:"timeout"`
}

type EdgeConfig struct {
	VoiceSpanish string `yaml:"voice_es"`
	VoiceEnglish string `yaml:"voice_en"`
}

type TempoConfig struct {
	Factor float64 `yaml:"factor"`
	FFmpeg string  `yaml:"ffmpeg"`
}

// Validate rejects configuration the service cannot start with. This is the
// only place a bad value is fatal; at runtime every failure degrades.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}

	switch c.Pipeline.ForcedLanguage {
	case "auto", "es", "en":
	default:
		return fmt.Errorf("forced_language must be auto, es or en, got %q", c.Pipeline.ForcedLanguage)
	}

	switch c.Pipeline.DefaultLanguage {
	case "es", "en":
	default:
		return fmt.Errorf("default_language must be es or en, got %q", c.Pipeline.DefaultLanguage)
	}

	if c.Pipeline.TieMargin < 0 {
		return fmt.Errorf("tie_margin must not be negative, got %d", c.Pipeline.TieMargin)
	}
	if c.Pipeline.ReinforceRatio <= 1.0 {
		return fmt.Errorf("reinforce_ratio must be greater than 1.0, got %g", c.Pipeline.ReinforceRatio)
	}
	if c.Pipeline.SimilarityThreshold <= 0 || c.Pipeline.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity_threshold must be in (0,1], got %g", c.Pipeline.SimilarityThreshold)
	}

	// Single-filter atempo accepts factors in [0.5, 2.0] only.
	if c.TTS.Tempo.Factor < 0.5 || c.TTS.Tempo.Factor > 2.0 {
		return fmt.Errorf("tempo factor must be within [0.5, 2.0], got %g", c.TTS.Tempo.Factor)
	}

	return nil
}
