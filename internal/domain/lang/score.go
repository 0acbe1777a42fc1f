package lang

// Score is the lexical confidence of one hypothesis against its own
// language's marker set.
type Score struct {
	WordCount int
	StopHits  int
}

// Value weighs marker hits double: a marker word is both a word and a
// language signal.
func (s Score) Value() int {
	return s.WordCount + 2*s.StopHits
}

// ScoreText computes the lexical score of a normalized transcript for the
// given language.
func ScoreText(text string, language Language) Score {
	toks := tokens(text)
	score := Score{WordCount: len(toks)}

	set := markersFor(language)
	if set == nil {
		return score
	}
	for _, token := range toks {
		if _, ok := set[token]; ok {
			score.StopHits++
		}
	}
	return score
}
