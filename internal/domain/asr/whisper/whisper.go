// Package whisper implements the recognizer contract on the OpenAI audio
// transcription API, one client per pinned language.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/asr"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

func init() {
	asr.Register("whisper", func(cfg *asr.Config, logger *logging.Logger) (asr.Recognizer, error) {
		return New(cfg, logger)
	})
}

type Provider struct {
	client   *openai.Client
	language lang.Language
	model    string
	timeout  time.Duration
	logger   *logging.Logger
}

func New(cfg *asr.Config, logger *logging.Logger) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("whisper recognizer requires an api key")
	}
	if cfg.Language == lang.Unknown {
		return nil, fmt.Errorf("whisper recognizer requires a pinned language")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.Whisper1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Provider{
		client:   openai.NewClientWithConfig(clientConfig),
		language: cfg.Language,
		model:    model,
		timeout:  timeout,
		logger:   logger,
	}, nil
}

func (p *Provider) Language() lang.Language {
	return p.language
}

// Transcribe sends the audio to the transcription endpoint with the pinned
// language hint. Silence comes back as an empty string, not an error.
func (p *Provider) Transcribe(ctx context.Context, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "voice.wav",
		Language: string(p.language),
	})
	if err != nil {
		return "", fmt.Errorf("whisper transcription (%s): %w", p.language, err)
	}

	text := strings.TrimSpace(resp.Text)
	p.logger.DebugTag("ASR", "whisper %s transcribed %d bytes in %v: %q",
		p.language, len(audio), time.Since(start), text)

	return text, nil
}
