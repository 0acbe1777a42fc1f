// Package glossary applies deterministic domain-term substitutions to
// translated text. Rules are fixed at construction and applied in listed
// order; a rule's replacement must never match its own pattern, which
// makes the whole pass idempotent by construction.
package glossary

import (
	"fmt"
	"regexp"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
)

// Rule is one substitution: a case-insensitive pattern and its fixed
// replacement.
type Rule struct {
	Pattern     string
	Replacement string
}

type compiledRule struct {
	re          *regexp.Regexp
	replacement string
}

// Glossary holds one ordered rule list per translation direction, keyed by
// the target language of the translated text.
type Glossary struct {
	enabled bool
	rules   map[lang.Language][]compiledRule
}

// New builds a glossary with the built-in trading vocabulary.
func New(enabled bool) (*Glossary, error) {
	return NewWithRules(enabled, DefaultRules())
}

// NewWithRules compiles the given rule sets. It rejects any rule whose
// replacement re-matches its own pattern, since such a rule would make
// repeated application diverge.
func NewWithRules(enabled bool, ruleSets map[lang.Language][]Rule) (*Glossary, error) {
	compiled := make(map[lang.Language][]compiledRule, len(ruleSets))
	for target, rules := range ruleSets {
		list := make([]compiledRule, 0, len(rules))
		for _, rule := range rules {
			re, err := regexp.Compile("(?i)" + rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("glossary rule %q: %w", rule.Pattern, err)
			}
			if re.MatchString(rule.Replacement) {
				return nil, fmt.Errorf("glossary rule %q: replacement %q re-matches its own pattern",
					rule.Pattern, rule.Replacement)
			}
			list = append(list, compiledRule{re: re, replacement: rule.Replacement})
		}
		compiled[target] = list
	}

	return &Glossary{enabled: enabled, rules: compiled}, nil
}

// Apply rewrites translated text for the given target language. Unknown
// directions and disabled glossaries pass text through unchanged.
func (g *Glossary) Apply(text string, target lang.Language) string {
	if !g.enabled {
		return text
	}
	rules, ok := g.rules[target]
	if !ok {
		return text
	}

	for _, rule := range rules {
		text = rule.re.ReplaceAllString(text, rule.replacement)
	}
	return text
}
