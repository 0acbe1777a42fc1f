// Package asr defines the recognizer contract. Recognizers are opaque
// services: one instance per supported language, each pinned to its own
// language model, each free to return an empty transcript.
package asr

import (
	"context"
	"fmt"
	"time"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// Recognizer transcribes mono 16kHz PCM audio into text.
type Recognizer interface {
	// Transcribe returns the recognized text, possibly empty on silence.
	Transcribe(ctx context.Context, audio []byte) (string, error)
	// Language reports which language model this instance is pinned to.
	Language() lang.Language
}

// Config configures one recognizer instance.
type Config struct {
	Type     string
	Language lang.Language
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// Factory builds a recognizer from its config.
type Factory func(cfg *Config, logger *logging.Logger) (Recognizer, error)

var factories = make(map[string]Factory)

// Register adds a recognizer factory under a type name.
func Register(name string, factory Factory) {
	factories[name] = factory
}

// Create builds a recognizer by type name.
func Create(name string, cfg *Config, logger *logging.Logger) (Recognizer, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown recognizer type: %s", name)
	}

	recognizer, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create recognizer %s: %w", name, err)
	}

	return recognizer, nil
}
