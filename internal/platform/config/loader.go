package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
)

const defaultConfigFile = "config.yaml"

// Loader reads configuration from defaults, an optional yaml file and the
// process environment, in that order.
type Loader struct {
	useDotEnv bool
	path      string
}

func NewLoader() *Loader {
	return &Loader{useDotEnv: true}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the config file location (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	l.path = path
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			// Missing .env is normal; the process environment still applies.
			fmt.Println("no .env file found, using process environment")
		}
	}

	path := l.path
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultConfigFile
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, platformerrors.Wrap(platformerrors.KindConfig, "load", "parse config file", err)
		}
	case os.IsNotExist(err) && l.path == "":
		// No file is fine: defaults plus environment.
		path = ""
	default:
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "load", "read config file", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, platformerrors.Wrap(platformerrors.KindConfig, "load", "invalid configuration", err)
	}

	return &Result{Config: cfg, Path: path}, nil
}

// applyEnvOverrides layers secrets from the environment over the file
// values. Credentials never need to live in the yaml file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.ASR.Whisper.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.ASR.Whisper.BaseURL = v
	}
	if v := os.Getenv("ELEVEN_API_KEY"); v != "" {
		cfg.TTS.Eleven.APIKey = v
	}
	if v := os.Getenv("ELEVEN_VOICE_ID"); v != "" {
		cfg.TTS.Eleven.VoiceID = v
	}
	if v := os.Getenv("MYMEMORY_EMAIL"); v != "" {
		cfg.Translate.MyMemory.Email = v
	}
	if v := os.Getenv("FORCED_LANGUAGE"); v != "" {
		cfg.Pipeline.ForcedLanguage = v
	}
}
