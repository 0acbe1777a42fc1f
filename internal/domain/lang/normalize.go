package lang

import (
	"regexp"
	"strings"
)

// Filler and interjection vocabulary stripped before scoring. Hesitation
// noises inflate word counts without carrying language signal.
var fillerPattern = regexp.MustCompile(`(?i)\b(eh+|um+|uh+|uhm|hm+|mm+|ah+|er+|aja)\b`)

// Everything outside this whitelist is recognizer noise: word characters,
// accented vowels, ñ/ü, inverted punctuation and base punctuation.
var disallowedPattern = regexp.MustCompile(`[^0-9A-Za-zÁÉÍÓÚÜÑáéíóúüñ¿¡?!.,;:'"\s-]`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Normalize cleans a raw transcript for scoring: removes filler words,
// strips non-whitelisted symbols and collapses repeated whitespace.
// Pure and deterministic.
func Normalize(raw string) string {
	text := fillerPattern.ReplaceAllString(raw, " ")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
