package translate

import (
	"context"
	"strings"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// Chain invokes providers in order until one returns non-empty output. An
// empty translation counts as a failure just like an error.
type Chain struct {
	providers []Provider
	logger    *logging.Logger
}

func NewChain(logger *logging.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

func tierFor(index int) Tier {
	switch index {
	case 0:
		return TierPrimary
	default:
		return TierSecondary
	}
}

// Translate routes text to the target language. When every provider fails
// the result carries TierNone and ErrTranslationUnavailable; the caller is
// expected to continue with a text-only response.
func (c *Chain) Translate(ctx context.Context, text string, target, sourceHint lang.Language) (Result, error) {
	for i, provider := range c.providers {
		out, err := provider.Translate(ctx, text, target, sourceHint)
		if err != nil {
			c.logger.WarnTag("TRAD", "provider %s failed: %v", provider.Name(), err)
			continue
		}
		out = strings.TrimSpace(out)
		if out == "" {
			c.logger.WarnTag("TRAD", "provider %s returned empty output", provider.Name())
			continue
		}
		return Result{Text: out, Target: target, Provider: tierFor(i)}, nil
	}

	return Result{Target: target, Provider: TierNone}, platformerrors.ErrTranslationUnavailable
}
