package glossary

import "github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"

// DefaultRules returns the built-in trading vocabulary, keyed by the
// target language of the translated text. Patterns fix the literal
// renderings the translation providers produce for domain terms.
func DefaultRules() map[lang.Language][]Rule {
	return map[lang.Language][]Rule{
		lang.English: {
			{Pattern: `\btaking of (profits|gains)\b`, Replacement: "take profit"},
			{Pattern: `\bstop[- ]of[- ]loss(es)?\b`, Replacement: "stop loss"},
			{Pattern: `\bbag of values\b`, Replacement: "stock market"},
			{Pattern: `\bjapanese sails?\b`, Replacement: "candlesticks"},
			{Pattern: `\bgraphic of prices\b`, Replacement: "price chart"},
			{Pattern: `\bentrance point\b`, Replacement: "entry point"},
		},
		lang.Spanish: {
			{Pattern: `\btake profit\b`, Replacement: "toma de ganancias"},
			{Pattern: `\btrailing stop\b`, Replacement: "stop dinámico"},
			{Pattern: `\bcandlesticks?\b`, Replacement: "velas japonesas"},
			{Pattern: `\bpunto de entrada del mercado\b`, Replacement: "punto de entrada"},
			{Pattern: `\border pendiente\b`, Replacement: "orden pendiente"},
		},
	}
}
