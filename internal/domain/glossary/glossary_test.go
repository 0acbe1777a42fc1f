package glossary

import (
	"testing"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
)

func TestApply(t *testing.T) {
	g, err := New(true)
	if err != nil {
		t.Fatalf("failed to build glossary: %v", err)
	}

	tests := []struct {
		name   string
		text   string
		target lang.Language
		want   string
	}{
		{
			name:   "fixes literal trading terms in english",
			text:   "I recommend a taking of profits near the stop of loss",
			target: lang.English,
			want:   "I recommend a take profit near the stop loss",
		},
		{
			name:   "case insensitive",
			text:   "The Bag Of Values opened green",
			target: lang.English,
			want:   "The stock market opened green",
		},
		{
			name:   "fixes anglicisms in spanish",
			text:   "pon el take profit arriba de las candlesticks",
			target: lang.Spanish,
			want:   "pon el toma de ganancias arriba de las velas japonesas",
		},
		{
			name:   "no-op on clean text",
			text:   "nothing to substitute here",
			target: lang.English,
			want:   "nothing to substitute here",
		},
		{
			name:   "unknown direction passes through",
			text:   "taking of profits",
			target: lang.Unknown,
			want:   "taking of profits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Apply(tt.text, tt.target); got != tt.want {
				t.Errorf("Apply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	g, err := New(true)
	if err != nil {
		t.Fatalf("failed to build glossary: %v", err)
	}

	inputs := []string{
		"I recommend a taking of profits near the stop of loss",
		"take profit",
		"the japanese sails on the graphic of prices",
		"pon el take profit arriba de las candlesticks",
		"",
		"already clean text with stop loss in place",
	}

	for _, target := range []lang.Language{lang.Spanish, lang.English} {
		for _, input := range inputs {
			once := g.Apply(input, target)
			twice := g.Apply(once, target)
			if once != twice {
				t.Errorf("glossary not idempotent for %q (%s): %q != %q", input, target, once, twice)
			}
		}
	}
}

func TestApply_Disabled(t *testing.T) {
	g, err := New(false)
	if err != nil {
		t.Fatalf("failed to build glossary: %v", err)
	}

	text := "taking of profits everywhere"
	if got := g.Apply(text, lang.English); got != text {
		t.Errorf("disabled glossary should pass through, got %q", got)
	}
}

func TestNewWithRules_RejectsSelfMatchingReplacement(t *testing.T) {
	_, err := NewWithRules(true, map[lang.Language][]Rule{
		lang.English: {
			{Pattern: `\bstop\b`, Replacement: "stop loss"},
		},
	})
	if err == nil {
		t.Fatal("expected rejection of a replacement that re-matches its own pattern")
	}
}

func TestNewWithRules_RejectsBadPattern(t *testing.T) {
	_, err := NewWithRules(true, map[lang.Language][]Rule{
		lang.English: {
			{Pattern: `([unclosed`, Replacement: "x"},
		},
	})
	if err == nil {
		t.Fatal("expected rejection of an invalid pattern")
	}
}
