package lang

import (
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
)

// Options carries the decision heuristics. The numeric values are
// empirical defaults; callers populate them from configuration.
type Options struct {
	// Forced pins one recognizer; Unknown means auto mode.
	Forced Language
	// Default breaks exact ties and anchors the translation direction when
	// the decision lands on Unknown.
	Default Language
	// TieMargin is the score distance treated as a tie.
	TieMargin int
	// ReinforceRatio is the word-count dominance ratio that selects a side
	// outright.
	ReinforceRatio float64
}

// Decide weighs two normalized hypotheses and picks a provisional winner.
// Returns ErrNoSpeech when neither hypothesis carries any speech.
func Decide(hypA, hypB Hypothesis, opts Options) (Decision, error) {
	if opts.Forced != Unknown {
		return decideForced(hypA, hypB, opts.Forced)
	}

	scoreA := ScoreText(hypA.Text, hypA.Language)
	scoreB := ScoreText(hypB.Text, hypB.Language)

	// A single non-empty hypothesis wins outright with its language tag;
	// there is nothing to disambiguate.
	if scoreA.WordCount > 0 && scoreB.WordCount == 0 {
		return provisional(hypA), nil
	}
	if scoreB.WordCount > 0 && scoreA.WordCount == 0 {
		return provisional(hypB), nil
	}

	if scoreA.Value() == 0 && scoreB.Value() == 0 {
		return Decision{}, platformerrors.ErrNoSpeech
	}

	// Reinforcement overrides, highest priority: clear word-count dominance
	// first, then Spanish orthography backed by marker hits.
	ratio := opts.ReinforceRatio
	if scoreA.WordCount >= 3 && float64(scoreA.WordCount) >= ratio*float64(scoreB.WordCount) {
		return provisional(hypA), nil
	}
	if scoreB.WordCount >= 3 && float64(scoreB.WordCount) >= ratio*float64(scoreA.WordCount) {
		return provisional(hypB), nil
	}
	if hypA.Language == Spanish && HasSpanishMarks(hypA.Text) && scoreA.StopHits >= 2 {
		return provisional(hypA), nil
	}
	if hypB.Language == Spanish && HasSpanishMarks(hypB.Text) && scoreB.StopHits >= 2 {
		return provisional(hypB), nil
	}

	// Near ties: prefer the side that shows an actual language signal.
	diff := scoreA.Value() - scoreB.Value()
	if diff < 0 {
		diff = -diff
	}
	if diff <= opts.TieMargin {
		qualifiesA := scoreA.StopHits >= 1 && scoreA.WordCount >= 2
		qualifiesB := scoreB.StopHits >= 1 && scoreB.WordCount >= 2
		if qualifiesA && !qualifiesB {
			return provisional(hypA), nil
		}
		if qualifiesB && !qualifiesA {
			return provisional(hypB), nil
		}
		// Both or neither qualify: fall through to the score comparison.
	}

	winner, winnerScore := hypA, scoreA
	switch {
	case scoreA.Value() > scoreB.Value():
	case scoreB.Value() > scoreA.Value():
		winner, winnerScore = hypB, scoreB
	default:
		// Exact tie: the configured default language side wins.
		if hypB.Language == opts.Default {
			winner, winnerScore = hypB, scoreB
		}
	}

	decision := provisional(winner)
	if winnerScore.WordCount < 2 {
		// Too little material to trust the language tag.
		decision.Language = Unknown
	}
	return decision, nil
}

func decideForced(hypA, hypB Hypothesis, forced Language) (Decision, error) {
	chosen := hypA
	if hypB.Language == forced {
		chosen = hypB
	}
	if chosen.Text == "" {
		return Decision{}, platformerrors.ErrNoSpeech
	}
	return provisional(chosen), nil
}

func provisional(h Hypothesis) Decision {
	return Decision{Text: h.Text, Language: h.Language, Provisional: true}
}
