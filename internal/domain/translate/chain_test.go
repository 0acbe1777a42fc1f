package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	platformtesting "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/testing"
)

type stubProvider struct {
	name string
	out  string
	err  error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Translate(ctx context.Context, text string, target, sourceHint lang.Language) (string, error) {
	return s.out, s.err
}

func TestChain_PrimarySucceeds(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	chain := NewChain(logger,
		&stubProvider{name: "first", out: "hello"},
		&stubProvider{name: "second", out: "should not be reached"},
	)

	result, err := chain.Translate(context.Background(), "hola", lang.English, lang.Spanish)
	platformtesting.AssertNoError(t, err)
	platformtesting.AssertEqual(t, "hello", result.Text)
	platformtesting.AssertEqual(t, TierPrimary, result.Provider)
	platformtesting.AssertEqual(t, lang.English, result.Target)
}

func TestChain_FallsBackToSecondary(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)

	tests := []struct {
		name    string
		primary *stubProvider
	}{
		{"primary errors", &stubProvider{name: "first", err: errors.New("boom")}},
		{"primary returns empty", &stubProvider{name: "first", out: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := NewChain(logger,
				tt.primary,
				&stubProvider{name: "second", out: "fallback text"},
			)

			result, err := chain.Translate(context.Background(), "hola", lang.English, lang.Spanish)
			platformtesting.AssertNoError(t, err)
			platformtesting.AssertEqual(t, "fallback text", result.Text)
			platformtesting.AssertEqual(t, TierSecondary, result.Provider)
		})
	}
}

func TestChain_AllFail(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	chain := NewChain(logger,
		&stubProvider{name: "first", err: errors.New("down")},
		&stubProvider{name: "second", err: errors.New("also down")},
	)

	result, err := chain.Translate(context.Background(), "hola", lang.English, lang.Spanish)
	if !errors.Is(err, platformerrors.ErrTranslationUnavailable) {
		t.Errorf("expected ErrTranslationUnavailable, got %v", err)
	}
	platformtesting.AssertEqual(t, TierNone, result.Provider)
	platformtesting.AssertEqual(t, "", result.Text)
}
