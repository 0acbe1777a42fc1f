// Package services wires the domain stages into the request pipeline:
// recognize, decide, translate, reconcile, synthesize.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/asr"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/eventbus"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/glossary"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/translate"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// Options carries the tunable pipeline behavior.
type Options struct {
	Decision            lang.Options
	SimilarityThreshold float64
	TempoFactor         float64
}

// Request is one unit of work. Audio feeds the recognizers; alternatively
// a caller may supply both transcripts directly and skip recognition.
type Request struct {
	Audio       []byte
	TranscriptA string // Spanish-model transcript when no audio is given
	TranscriptB string // English-model transcript when no audio is given
}

// Result is the full pipeline outcome for one request. Audio may be empty
// when synthesis was unavailable; Notices explains every degradation.
type Result struct {
	RequestID      string
	SourceText     string
	SourceLanguage lang.Language
	TargetLanguage lang.Language
	TranslatedText string
	Provider       translate.Tier
	Reconciled     bool
	Audio          []byte
	AudioProvider  string
	Tempo          float64
	AudioDuration  time.Duration
	Notices        []string
}

// Pipeline owns one configured instance of every stage.
type Pipeline struct {
	recognizerA asr.Recognizer // Spanish model
	recognizerB asr.Recognizer // English model
	translator  *translate.Chain
	glossary    *glossary.Glossary
	synthesizer *tts.Chain
	normalizer  *tts.Normalizer
	opts        Options
	logger      *logging.Logger
}

func NewPipeline(
	recognizerA, recognizerB asr.Recognizer,
	translator *translate.Chain,
	gloss *glossary.Glossary,
	synthesizer *tts.Chain,
	normalizer *tts.Normalizer,
	opts Options,
	logger *logging.Logger,
) *Pipeline {
	return &Pipeline{
		recognizerA: recognizerA,
		recognizerB: recognizerB,
		translator:  translator,
		glossary:    gloss,
		synthesizer: synthesizer,
		normalizer:  normalizer,
		opts:        opts,
		logger:      logger,
	}
}

// Process runs one request through every stage. The only hard failure is
// ErrNoSpeech; every later stage degrades into a notice on the result.
func (p *Pipeline) Process(ctx context.Context, req Request) (*Result, error) {
	requestID := uuid.NewString()

	hypA, hypB, err := p.recognize(ctx, req)
	if err != nil {
		return nil, err
	}

	decision, err := lang.Decide(hypA, hypB, p.opts.Decision)
	if err != nil {
		return nil, err
	}

	forced := p.opts.Decision.Forced != lang.Unknown
	eventbus.Publish(eventbus.EventDecisionMade, eventbus.DecisionEventData{
		RequestID: requestID,
		Language:  decision.Language.String(),
		Forced:    forced,
	})
	p.logger.InfoTag("LANG", "request %s: chose %s (provisional=%t)", requestID, decision.Language, decision.Provisional)

	result := &Result{
		RequestID:      requestID,
		SourceText:     decision.Text,
		SourceLanguage: decision.Language,
	}

	// An unknown source still gets a direction: the configured default
	// language anchors it.
	source := decision.Language
	if source == lang.Unknown {
		source = p.opts.Decision.Default
		result.Notices = append(result.Notices, "source language uncertain, assumed "+source.String())
	}
	target := source.Complement()

	translated, tier, ok := p.translateAndGloss(ctx, requestID, decision.Text, target, decision.Language)
	if !ok {
		result.TargetLanguage = target
		result.Provider = translate.TierNone
		result.Notices = append(result.Notices, "translation unavailable, returning transcript only")
		return result, nil
	}

	// One corrective pass: a Spanish verdict whose translation barely
	// differs from its source was English all along.
	if !forced && decision.Language == lang.Spanish {
		similarity := lang.Jaccard(decision.Text, translated)
		englishSignal := lang.CountMarkers(decision.Text, lang.English)
		if similarity >= p.opts.SimilarityThreshold || englishSignal >= 2 {
			eventbus.Publish(eventbus.EventReconciliationFired, eventbus.ReconciliationEventData{
				RequestID:  requestID,
				From:       lang.Spanish.String(),
				To:         lang.English.String(),
				Similarity: similarity,
			})
			p.logger.InfoTag("LANG", "request %s: reconciled es -> en (similarity %.2f, english markers %d)",
				requestID, similarity, englishSignal)

			source, target = lang.English, lang.Spanish
			result.SourceLanguage = lang.English
			result.Reconciled = true

			translated, tier, ok = p.translateAndGloss(ctx, requestID, decision.Text, target, lang.English)
			if !ok {
				result.TargetLanguage = target
				result.Provider = translate.TierNone
				result.Notices = append(result.Notices, "translation unavailable, returning transcript only")
				return result, nil
			}
		}
	}

	result.TargetLanguage = target
	result.TranslatedText = translated
	result.Provider = tier

	p.synthesize(ctx, requestID, result)
	return result, nil
}

// recognize produces both hypotheses, running the recognizers concurrently
// when audio is present. A recognizer failure degrades to an empty
// transcript so the other side can still win the decision.
func (p *Pipeline) recognize(ctx context.Context, req Request) (lang.Hypothesis, lang.Hypothesis, error) {
	var textA, textB string

	if len(req.Audio) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			out, err := p.recognizerA.Transcribe(gctx, req.Audio)
			if err != nil {
				p.logger.WarnTag("ASR", "spanish recognizer failed: %v", err)
				return nil
			}
			textA = out
			return nil
		})
		g.Go(func() error {
			out, err := p.recognizerB.Transcribe(gctx, req.Audio)
			if err != nil {
				p.logger.WarnTag("ASR", "english recognizer failed: %v", err)
				return nil
			}
			textB = out
			return nil
		})
		if err := g.Wait(); err != nil {
			return lang.Hypothesis{}, lang.Hypothesis{}, err
		}
	} else {
		textA, textB = req.TranscriptA, req.TranscriptB
	}

	hypA := lang.Hypothesis{Text: lang.Normalize(textA), Language: lang.Spanish}
	hypB := lang.Hypothesis{Text: lang.Normalize(textB), Language: lang.English}
	return hypA, hypB, nil
}

func (p *Pipeline) translateAndGloss(ctx context.Context, requestID, text string, target, sourceHint lang.Language) (string, translate.Tier, bool) {
	routed, err := p.translator.Translate(ctx, text, target, sourceHint)
	if err != nil {
		p.logger.WarnTag("TRAD", "request %s: %v", requestID, err)
		return "", translate.TierNone, false
	}

	eventbus.Publish(eventbus.EventTranslationDone, eventbus.TranslationEventData{
		RequestID: requestID,
		Target:    target.String(),
		Provider:  string(routed.Provider),
	})

	return p.glossary.Apply(routed.Text, target), routed.Provider, true
}

// synthesize renders the translated text and applies tempo normalization.
// Failure is never fatal; the result keeps its text and gains a notice.
func (p *Pipeline) synthesize(ctx context.Context, requestID string, result *Result) {
	synth, err := p.synthesizer.Synthesize(ctx, result.TranslatedText, result.TargetLanguage)
	if err != nil {
		if platformerrors.IsKind(err, platformerrors.KindSynthesis) {
			result.Notices = append(result.Notices, "voice synthesis unavailable, returning text only")
		}
		p.logger.WarnTag("TTS", "request %s: %v", requestID, err)
		return
	}

	// Report the factor the normalizer actually works with, never the raw
	// configured value.
	tempo := tts.ClampTempo(p.opts.TempoFactor)

	result.Audio = p.normalizer.Apply(ctx, synth.Audio)
	result.AudioProvider = synth.Provider
	result.Tempo = tempo
	if duration, err := tts.Duration(result.Audio); err == nil {
		result.AudioDuration = duration
	}

	eventbus.Publish(eventbus.EventSynthesisDone, eventbus.SynthesisEventData{
		RequestID: requestID,
		Bytes:     len(result.Audio),
		Tempo:     tempo,
	})
}
