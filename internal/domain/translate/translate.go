// Package translate routes text through an ordered chain of translation
// providers, falling back down the chain until one produces output.
package translate

import (
	"context"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
)

// Provider is one translation backend. The source hint may be
// lang.Unknown, in which case the provider should let the backend detect
// the source language itself.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text string, target, sourceHint lang.Language) (string, error)
}

// Tier identifies which position in the chain served a request.
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
	TierNone      Tier = "none"
)

// Result is the outcome of one routed translation.
type Result struct {
	Text     string
	Target   lang.Language
	Provider Tier
}
