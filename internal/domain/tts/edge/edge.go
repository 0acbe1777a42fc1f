// Package edge implements the synthesizer contract on Microsoft Edge's
// free neural voices. It needs no credentials, which makes it the
// always-available fallback behind the paid provider.
package edge

import (
	"context"
	"fmt"

	"github.com/wujunwei928/edge-tts-go/edge_tts"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

func init() {
	tts.Register("edge", func(cfg *tts.Config, logger *logging.Logger) (tts.Synthesizer, error) {
		return New(cfg, logger), nil
	})
}

type Provider struct {
	voiceSpanish string
	voiceEnglish string
	logger       *logging.Logger
}

func New(cfg *tts.Config, logger *logging.Logger) *Provider {
	voiceES := cfg.VoiceSpanish
	if voiceES == "" {
		voiceES = "es-ES-ElviraNeural"
	}
	voiceEN := cfg.VoiceEnglish
	if voiceEN == "" {
		voiceEN = "en-US-AriaNeural"
	}

	return &Provider{
		voiceSpanish: voiceES,
		voiceEnglish: voiceEN,
		logger:       logger,
	}
}

func (p *Provider) Name() string {
	return "edge"
}

func (p *Provider) voiceFor(language lang.Language) string {
	if language == lang.English {
		return p.voiceEnglish
	}
	return p.voiceSpanish
}

func (p *Provider) Synthesize(ctx context.Context, text string, language lang.Language) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("edge tts: empty text")
	}

	voice := p.voiceFor(language)
	communicate, err := edge_tts.NewCommunicate(text, edge_tts.SetVoice(voice))
	if err != nil {
		return nil, fmt.Errorf("edge tts communicator: %w", err)
	}

	done := make(chan struct{})
	var audio []byte
	var synthErr error
	go func() {
		defer close(done)
		audio, synthErr = communicate.Stream()
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}
	if synthErr != nil {
		return nil, fmt.Errorf("edge tts synthesis: %w", synthErr)
	}

	p.logger.DebugTag("TTS", "edge synthesized %d bytes with voice %s", len(audio), voice)
	return audio, nil
}
