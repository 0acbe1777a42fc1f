// Package mymemory implements the translation provider contract on the
// keyless MyMemory REST API, used as the fallback tier.
package mymemory

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
)

type Provider struct {
	client *resty.Client
	email  string
}

type Config struct {
	BaseURL string
	Email   string
	Timeout time.Duration
}

type response struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus  interface{} `json:"responseStatus"`
	ResponseDetails string      `json:"responseDetails"`
}

func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.mymemory.translated.net"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &Provider{client: client, email: cfg.Email}
}

func (p *Provider) Name() string {
	return "mymemory"
}

func (p *Provider) Translate(ctx context.Context, text string, target, sourceHint lang.Language) (string, error) {
	source := "auto"
	if sourceHint != lang.Unknown {
		source = string(sourceHint)
	}

	params := map[string]string{
		"q":        text,
		"langpair": fmt.Sprintf("%s|%s", source, target),
	}
	if p.email != "" {
		// An email raises the anonymous daily quota.
		params["de"] = p.email
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get("/get")
	if err != nil {
		return "", fmt.Errorf("mymemory request: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("mymemory status %d", resp.StatusCode())
	}

	var payload response
	if err := sonic.Unmarshal(resp.Body(), &payload); err != nil {
		return "", fmt.Errorf("mymemory payload: %w", err)
	}

	// The API reports errors inside a 200 body; responseStatus may be a
	// number or a string depending on the failure.
	if status := fmt.Sprintf("%v", payload.ResponseStatus); status != "200" {
		return "", fmt.Errorf("mymemory error %s: %s", status, payload.ResponseDetails)
	}

	return payload.ResponseData.TranslatedText, nil
}
