// Package tts defines the voice synthesis contract and the fallback chain
// that routes text through the configured synthesizers.
package tts

import (
	"context"
	"fmt"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// Synthesizer renders text into spoken MP3 audio.
type Synthesizer interface {
	// Name identifies the provider in logs and responses.
	Name() string
	// Synthesize returns encoded audio for the text in the given language.
	Synthesize(ctx context.Context, text string, language lang.Language) ([]byte, error)
}

// Config configures one synthesizer instance.
type Config struct {
	Type         string
	APIKey       string
	VoiceID      string
	BaseURL      string
	ModelID      string
	VoiceSpanish string
	VoiceEnglish string
}

// Factory builds a synthesizer from its config.
type Factory func(cfg *Config, logger *logging.Logger) (Synthesizer, error)

var factories = make(map[string]Factory)

// Register adds a synthesizer factory under a type name.
func Register(name string, factory Factory) {
	factories[name] = factory
}

// Create builds a synthesizer by type name.
func Create(name string, cfg *Config, logger *logging.Logger) (Synthesizer, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown synthesizer type: %s", name)
	}

	synthesizer, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer %s: %w", name, err)
	}

	return synthesizer, nil
}

// Result is the outcome of one synthesis attempt.
type Result struct {
	Audio    []byte
	Provider string
}

// Chain invokes synthesizers in order until one returns audio. Empty audio
// counts as a failure just like an error.
type Chain struct {
	synthesizers []Synthesizer
	logger       *logging.Logger
}

func NewChain(logger *logging.Logger, synthesizers ...Synthesizer) *Chain {
	return &Chain{synthesizers: synthesizers, logger: logger}
}

// Synthesize renders text with the first synthesizer that succeeds. When all
// of them fail the error is ErrSynthesisUnavailable; the caller is expected
// to fall back to a text-only response.
func (c *Chain) Synthesize(ctx context.Context, text string, language lang.Language) (Result, error) {
	for _, synth := range c.synthesizers {
		audio, err := synth.Synthesize(ctx, text, language)
		if err != nil {
			c.logger.WarnTag("TTS", "synthesizer %s failed: %v", synth.Name(), err)
			continue
		}
		if len(audio) == 0 {
			c.logger.WarnTag("TTS", "synthesizer %s returned no audio", synth.Name())
			continue
		}
		return Result{Audio: audio, Provider: synth.Name()}, nil
	}

	return Result{}, platformerrors.ErrSynthesisUnavailable
}
