// Package elevenlabs implements the synthesizer contract on the ElevenLabs
// text-to-speech API. One voice serves both languages; the multilingual
// model picks pronunciation from the text itself.
package elevenlabs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

func init() {
	tts.Register("elevenlabs", func(cfg *tts.Config, logger *logging.Logger) (tts.Synthesizer, error) {
		return New(cfg, logger)
	})
}

type Provider struct {
	client  *resty.Client
	voiceID string
	modelID string
	logger  *logging.Logger
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// New builds the provider. Both the API key and the voice ID are required;
// with only one of the pair the provider cannot issue a valid request, so
// construction fails and the caller falls through to the next synthesizer.
func New(cfg *tts.Config, logger *logging.Logger) (*Provider, error) {
	if cfg.APIKey == "" || cfg.VoiceID == "" {
		return nil, fmt.Errorf("elevenlabs requires both api_key and voice_id")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.elevenlabs.io"
	}
	modelID := cfg.ModelID
	if modelID == "" {
		modelID = "eleven_multilingual_v2"
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("xi-api-key", cfg.APIKey).
		SetHeader("Accept", "audio/mpeg")

	return &Provider{
		client:  client,
		voiceID: cfg.VoiceID,
		modelID: modelID,
		logger:  logger,
	}, nil
}

func (p *Provider) Name() string {
	return "elevenlabs"
}

func (p *Provider) Synthesize(ctx context.Context, text string, language lang.Language) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("elevenlabs: empty text")
	}

	started := time.Now()
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(speechRequest{
			Text:    text,
			ModelID: p.modelID,
			VoiceSettings: voiceSettings{
				Stability:       0.5,
				SimilarityBoost: 0.75,
			},
		}).
		Post("/v1/text-to-speech/" + p.voiceID)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("elevenlabs status %d: %s", resp.StatusCode(), resp.String())
	}

	audio := resp.Body()
	p.logger.DebugTag("TTS", "elevenlabs synthesized %d bytes (%s) in %v", len(audio), language, time.Since(started))
	return audio, nil
}
