// Package lang decides which of two competing recognizer hypotheses a
// speaker actually produced. The service supports exactly two languages;
// everything here is lexical heuristics over normalized transcripts, no
// general language identification.
package lang

// Language identifies one of the two supported languages. The zero value
// means the decision could not name a language.
type Language string

const (
	Spanish Language = "es"
	English Language = "en"
	Unknown Language = ""
)

// Complement returns the translation target for a source language.
func (l Language) Complement() Language {
	switch l {
	case Spanish:
		return English
	case English:
		return Spanish
	default:
		return Unknown
	}
}

func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return string(l)
}

// Parse maps a configuration value to a Language. "auto" and anything
// unrecognized map to Unknown.
func Parse(s string) Language {
	switch s {
	case "es", "spanish":
		return Spanish
	case "en", "english":
		return English
	default:
		return Unknown
	}
}

// Hypothesis is one recognizer's candidate transcript. It only lives for
// the duration of a single decision.
type Hypothesis struct {
	Text     string
	Language Language
}

// Decision is the outcome of weighing both hypotheses. Provisional stays
// true until the reconciliation pass has had its one chance to correct it.
type Decision struct {
	Text        string
	Language    Language
	Provisional bool
}
