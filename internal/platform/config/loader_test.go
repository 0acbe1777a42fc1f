package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_Load(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
server:
  ip: "127.0.0.1"
  port: 8080
log:
  log_level: "DEBUG"
  log_dir: "/tmp/logs"
  log_file: "test.log"
pipeline:
  forced_language: "auto"
  tie_margin: 3
`

	if err := os.WriteFile(configFile, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	loader := NewLoader().WithDotEnv(false).WithPath(configFile)
	result, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg := result.Config

	if cfg.Server.IP != "127.0.0.1" {
		t.Errorf("expected server IP 127.0.0.1, got %s", cfg.Server.IP)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected server port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Pipeline.ForcedLanguage != "auto" {
		t.Errorf("expected forced language auto, got %s", cfg.Pipeline.ForcedLanguage)
	}
	if cfg.Pipeline.TieMargin != 3 {
		t.Errorf("expected tie margin 3, got %d", cfg.Pipeline.TieMargin)
	}
	// Untouched sections keep their defaults.
	if cfg.Pipeline.SimilarityThreshold != 0.75 {
		t.Errorf("expected default similarity threshold, got %g", cfg.Pipeline.SimilarityThreshold)
	}
	if !cfg.Glossary.Enabled {
		t.Error("glossary should default to enabled")
	}
}

func TestLoader_MissingFileUsesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	result, err := NewLoader().WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("expected defaults without config file, got error: %v", err)
	}
	if result.Config.Pipeline.TieMargin != 2 {
		t.Errorf("expected default tie margin 2, got %d", result.Config.Pipeline.TieMargin)
	}
	if result.Config.TTS.Tempo.Factor != 0.95 {
		t.Errorf("expected default tempo factor 0.95, got %g", result.Config.TTS.Tempo.Factor)
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	t.Setenv("ELEVEN_API_KEY", "key-from-env")
	t.Setenv("ELEVEN_VOICE_ID", "voice-from-env")

	tempDir := t.TempDir()
	oldWd, _ := os.Getwd()
	os.Chdir(tempDir)
	defer os.Chdir(oldWd)

	result, err := NewLoader().WithDotEnv(false).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if result.Config.TTS.Eleven.APIKey != "key-from-env" {
		t.Errorf("expected env api key, got %q", result.Config.TTS.Eleven.APIKey)
	}
	if result.Config.TTS.Eleven.VoiceID != "voice-from-env" {
		t.Errorf("expected env voice id, got %q", result.Config.TTS.Eleven.VoiceID)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = -1 }, true},
		{"bad forced language", func(c *Config) { c.Pipeline.ForcedLanguage = "fr" }, true},
		{"bad default language", func(c *Config) { c.Pipeline.DefaultLanguage = "auto" }, true},
		{"negative tie margin", func(c *Config) { c.Pipeline.TieMargin = -1 }, true},
		{"ratio below one", func(c *Config) { c.Pipeline.ReinforceRatio = 0.9 }, true},
		{"similarity above one", func(c *Config) { c.Pipeline.SimilarityThreshold = 1.5 }, true},
		{"zero tempo factor", func(c *Config) { c.TTS.Tempo.Factor = 0 }, true},
		{"tempo factor below atempo range", func(c *Config) { c.TTS.Tempo.Factor = 0.3 }, true},
		{"tempo factor above atempo range", func(c *Config) { c.TTS.Tempo.Factor = 5.0 }, true},
		{"tempo factor at upper bound", func(c *Config) { c.TTS.Tempo.Factor = 2.0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
