package lang

import "strings"

// Marker vocabularies: small sets of high-frequency function words used as
// lightweight language signals. Deliberately short; a long list inflates
// scores on code-switched speech.

var spanishMarkers = newMarkerSet(
	"el", "la", "los", "las", "un", "una", "unos", "unas",
	"de", "del", "al", "que", "y", "o", "en", "es", "está",
	"por", "para", "con", "sin", "no", "se", "me", "te", "lo",
	"como", "pero", "más", "muy", "yo", "tú", "qué", "cómo",
	"cuándo", "dónde", "hay", "este", "esta", "eso",
)

var englishMarkers = newMarkerSet(
	"the", "a", "an", "and", "or", "of", "to", "in", "on", "at",
	"is", "are", "was", "were", "be", "it", "you", "i", "we",
	"that", "this", "for", "with", "as", "but", "not", "what",
	"how", "when", "where", "there", "do", "have", "my", "your",
)

// spanishMarks are characters that essentially never appear in English
// recognizer output. Their presence reinforces the Spanish hypothesis.
const spanishMarks = "áéíóúüñÁÉÍÓÚÜÑ¿¡"

type markerSet map[string]struct{}

func newMarkerSet(words ...string) markerSet {
	set := make(markerSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func markersFor(language Language) markerSet {
	switch language {
	case Spanish:
		return spanishMarkers
	case English:
		return englishMarkers
	default:
		return nil
	}
}

// CountMarkers counts whole-word, case-insensitive marker hits for the
// given language in text.
func CountMarkers(text string, language Language) int {
	set := markersFor(language)
	if set == nil {
		return 0
	}

	hits := 0
	for _, token := range tokens(text) {
		if _, ok := set[token]; ok {
			hits++
		}
	}
	return hits
}

// HasSpanishMarks reports whether text contains Spanish-specific diacritics
// or punctuation.
func HasSpanishMarks(text string) bool {
	return strings.ContainsAny(text, spanishMarks)
}

// tokens lowercases and splits on whitespace, trimming clinging punctuation
// so "¿cómo?" matches the marker "cómo".
func tokens(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,;:!?¿¡\"'()-")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
