// Package google implements the translation provider contract on the
// public Google translate web endpoint (client=gtx, no credentials).
package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
)

type Provider struct {
	client *resty.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://translate.googleapis.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Provider{client: client}
}

func (p *Provider) Name() string {
	return "google"
}

func (p *Provider) Translate(ctx context.Context, text string, target, sourceHint lang.Language) (string, error) {
	source := "auto"
	if sourceHint != lang.Unknown {
		source = string(sourceHint)
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     source,
			"tl":     string(target),
			"dt":     "t",
			"q":      text,
		}).
		Get("/translate_a/single")
	if err != nil {
		return "", fmt.Errorf("google translate request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("google translate status %d", resp.StatusCode())
	}

	return parseResponse(resp.Body())
}

// parseResponse unpacks the gtx nested-array payload: the first element is
// a list of segments, each segment's first element the translated text.
func parseResponse(body []byte) (string, error) {
	var raw []interface{}
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("google translate payload: %w", err)
	}
	if len(raw) == 0 {
		return "", fmt.Errorf("google translate payload empty")
	}

	segments, ok := raw[0].([]interface{})
	if !ok {
		return "", fmt.Errorf("google translate payload malformed")
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]interface{})
		if !ok || len(parts) == 0 {
			continue
		}
		if piece, ok := parts[0].(string); ok {
			sb.WriteString(piece)
		}
	}

	return sb.String(), nil
}
