package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/glossary"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/lang"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/translate"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/domain/tts"
	platformerrors "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/errors"
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
	platformtesting "github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/testing"
)

type scriptedTranslator struct {
	outputs []string
	err     error
	calls   int
}

func (s *scriptedTranslator) Name() string { return "scripted" }

func (s *scriptedTranslator) Translate(ctx context.Context, text string, target, sourceHint lang.Language) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if len(s.outputs) == 0 {
		return text, nil
	}
	out := s.outputs[0]
	if len(s.outputs) > 1 {
		s.outputs = s.outputs[1:]
	}
	return out, nil
}

type stubRecognizer struct {
	text     string
	err      error
	language lang.Language
	calls    int
}

func (s *stubRecognizer) Transcribe(ctx context.Context, audio []byte) (string, error) {
	s.calls++
	return s.text, s.err
}

func (s *stubRecognizer) Language() lang.Language { return s.language }

type stubSynth struct {
	audio []byte
	err   error
}

func (s *stubSynth) Name() string { return "stub-voice" }

func (s *stubSynth) Synthesize(ctx context.Context, text string, language lang.Language) ([]byte, error) {
	return s.audio, s.err
}

func defaultOptions() Options {
	return Options{
		Decision: lang.Options{
			Forced:         lang.Unknown,
			Default:        lang.Spanish,
			TieMargin:      2,
			ReinforceRatio: 1.25,
		},
		SimilarityThreshold: 0.75,
		TempoFactor:         1.0,
	}
}

func buildPipeline(t *testing.T, logger *logging.Logger, translator translate.Provider, synth tts.Synthesizer, opts Options) *Pipeline {
	t.Helper()

	gloss, err := glossary.New(true)
	if err != nil {
		t.Fatalf("glossary: %v", err)
	}

	return NewPipeline(
		&stubRecognizer{language: lang.Spanish},
		&stubRecognizer{language: lang.English},
		translate.NewChain(logger, translator),
		gloss,
		tts.NewChain(logger, synth),
		tts.NewNormalizer(opts.TempoFactor, "ffmpeg", logger),
		opts,
		logger,
	)
}

func TestPipeline_SpanishToEnglish(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	translator := &scriptedTranslator{outputs: []string{"hello friend I want to buy the stock now"}}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "hola amigo quiero comprar la acción ahora",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, lang.Spanish, result.SourceLanguage)
	platformtesting.AssertEqual(t, lang.English, result.TargetLanguage)
	platformtesting.AssertEqual(t, "hello friend I want to buy the stock now", result.TranslatedText)
	platformtesting.AssertEqual(t, translate.TierPrimary, result.Provider)
	platformtesting.AssertEqual(t, false, result.Reconciled)
	platformtesting.AssertEqual(t, "stub-voice", result.AudioProvider)
	if len(result.Audio) == 0 {
		t.Error("expected synthesized audio")
	}
	if result.RequestID == "" {
		t.Error("expected a request id")
	}
}

func TestPipeline_ReconcilesEnglishMisreadAsSpanish(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)

	// First pass echoes the source back, which is what a translator does
	// with text already in the target language. Second pass translates.
	translator := &scriptedTranslator{outputs: []string{
		"I think you should take the profit now",
		"creo que deberías tomar la ganancia ahora",
	}}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "I think you should take the profit now",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, true, result.Reconciled)
	platformtesting.AssertEqual(t, lang.English, result.SourceLanguage)
	platformtesting.AssertEqual(t, lang.Spanish, result.TargetLanguage)
	platformtesting.AssertEqual(t, "creo que deberías tomar la ganancia ahora", result.TranslatedText)

	// The corrective pass runs exactly once.
	platformtesting.AssertEqual(t, 2, translator.calls)
}

func TestPipeline_ReconciliationFiresOnlyOnce(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)

	// A pure echo keeps similarity at 1.0 on every pass. The flip must
	// happen once and never cascade.
	translator := &scriptedTranslator{}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "I think you should take the profit now",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, true, result.Reconciled)
	platformtesting.AssertEqual(t, lang.English, result.SourceLanguage)
	platformtesting.AssertEqual(t, 2, translator.calls)
}

func TestPipeline_RoundTrip(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)

	spanish := "hola amigo cómo estás tú"
	english := "hello friend how are you"
	forward := &scriptedTranslator{outputs: []string{english}}
	p := buildPipeline(t, logger, forward, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	first, err := p.Process(context.Background(), Request{TranscriptA: spanish})
	platformtesting.AssertNoError(t, err)
	platformtesting.AssertEqual(t, english, first.TranslatedText)

	backward := &scriptedTranslator{outputs: []string{spanish}}
	p2 := buildPipeline(t, logger, backward, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	second, err := p2.Process(context.Background(), Request{TranscriptB: first.TranslatedText})
	platformtesting.AssertNoError(t, err)
	platformtesting.AssertEqual(t, lang.English, second.SourceLanguage)
	platformtesting.AssertEqual(t, spanish, second.TranslatedText)
}

func TestPipeline_NoSpeech(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	p := buildPipeline(t, logger, &scriptedTranslator{}, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	_, err := p.Process(context.Background(), Request{})
	if !errors.Is(err, platformerrors.ErrNoSpeech) {
		t.Fatalf("expected ErrNoSpeech, got %v", err)
	}
}

func TestPipeline_TranslationUnavailable(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	translator := &scriptedTranslator{err: errors.New("every backend is down")}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "hola amigo quiero comprar la acción ahora",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, translate.TierNone, result.Provider)
	platformtesting.AssertEqual(t, "", result.TranslatedText)
	if result.SourceText == "" {
		t.Error("transcript should survive a translation outage")
	}
	if len(result.Audio) != 0 {
		t.Error("no audio should be synthesized without a translation")
	}
	assertNotice(t, result.Notices, "translation unavailable")
}

func TestPipeline_SynthesisUnavailable(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	translator := &scriptedTranslator{outputs: []string{"hello friend I want to buy the stock now"}}
	p := buildPipeline(t, logger, translator, &stubSynth{err: errors.New("voice service down")}, defaultOptions())

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "hola amigo quiero comprar la acción ahora",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, "hello friend I want to buy the stock now", result.TranslatedText)
	if len(result.Audio) != 0 {
		t.Error("expected no audio after synthesis outage")
	}
	assertNotice(t, result.Notices, "voice synthesis unavailable")
}

func TestPipeline_UncertainSourceAnchorsToDefault(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	translator := &scriptedTranslator{outputs: []string{"hello"}}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, defaultOptions())

	// Two one-word hypotheses with no markers: the winner is too thin to
	// trust, so the configured default direction applies.
	result, err := p.Process(context.Background(), Request{
		TranscriptA: "hola",
		TranscriptB: "whatever",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, lang.Unknown, result.SourceLanguage)
	platformtesting.AssertEqual(t, lang.English, result.TargetLanguage)
	assertNotice(t, result.Notices, "assumed es")
}

func TestPipeline_AudioRunsBothRecognizers(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	gloss, err := glossary.New(true)
	if err != nil {
		t.Fatalf("glossary: %v", err)
	}

	recognizerA := &stubRecognizer{language: lang.Spanish, err: errors.New("model overloaded")}
	recognizerB := &stubRecognizer{language: lang.English, text: "good morning how are you today"}
	translator := &scriptedTranslator{outputs: []string{"buenos días cómo estás hoy"}}

	p := NewPipeline(
		recognizerA, recognizerB,
		translate.NewChain(logger, translator),
		gloss,
		tts.NewChain(logger, &stubSynth{audio: []byte("mp3")}),
		tts.NewNormalizer(1.0, "ffmpeg", logger),
		defaultOptions(),
		logger,
	)

	result, err := p.Process(context.Background(), Request{Audio: []byte("fake-wav")})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, 1, recognizerA.calls)
	platformtesting.AssertEqual(t, 1, recognizerB.calls)

	// The failed recognizer degrades to an empty hypothesis; the surviving
	// side wins with its own language tag.
	platformtesting.AssertEqual(t, lang.English, result.SourceLanguage)
	platformtesting.AssertEqual(t, lang.Spanish, result.TargetLanguage)
}

func TestPipeline_TempoReportedClamped(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)
	gloss, err := glossary.New(true)
	if err != nil {
		t.Fatalf("glossary: %v", err)
	}

	opts := defaultOptions()
	opts.TempoFactor = 5.0

	// The missing binary forces the adjustment to degrade to a copy; the
	// reported factor must still be the clamped one.
	p := NewPipeline(
		&stubRecognizer{language: lang.Spanish},
		&stubRecognizer{language: lang.English},
		translate.NewChain(logger, &scriptedTranslator{outputs: []string{"hello friend I want to buy the stock now"}}),
		gloss,
		tts.NewChain(logger, &stubSynth{audio: []byte("mp3")}),
		tts.NewNormalizer(opts.TempoFactor, "/nonexistent/ffmpeg", logger),
		opts,
		logger,
	)

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "hola amigo quiero comprar la acción ahora",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, 2.0, result.Tempo)
	if string(result.Audio) != "mp3" {
		t.Errorf("audio should degrade to the unadjusted copy, got %q", result.Audio)
	}
}

func TestPipeline_ForcedLanguageSkipsReconciliation(t *testing.T) {
	logger := platformtesting.SetupTestLogger(t)

	opts := defaultOptions()
	opts.Decision.Forced = lang.Spanish

	// The echo output would trip the similarity check in auto mode.
	translator := &scriptedTranslator{}
	p := buildPipeline(t, logger, translator, &stubSynth{audio: []byte("mp3")}, opts)

	result, err := p.Process(context.Background(), Request{
		TranscriptA: "I think you should take the profit now",
	})
	platformtesting.AssertNoError(t, err)

	platformtesting.AssertEqual(t, false, result.Reconciled)
	platformtesting.AssertEqual(t, lang.Spanish, result.SourceLanguage)
	platformtesting.AssertEqual(t, 1, translator.calls)
}

func assertNotice(t *testing.T, notices []string, fragment string) {
	t.Helper()
	for _, n := range notices {
		if strings.Contains(n, fragment) {
			return
		}
	}
	t.Errorf("expected a notice containing %q, got %v", fragment, notices)
}
