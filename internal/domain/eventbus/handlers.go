package eventbus

import (
	"github.com/JOHAALETRADER/bot-traductor-audio/internal/platform/logging"
)

// SetupEventHandlers subscribes the logging observers for every pipeline
// topic. Observers only log; stage behavior never depends on them.
func SetupEventHandlers(logger *logging.Logger) error {
	if err := Subscribe(EventDecisionMade, func(data DecisionEventData) {
		logger.DebugTag("LANG", "event: request %s decided %s (forced=%t)", data.RequestID, data.Language, data.Forced)
	}); err != nil {
		return err
	}

	if err := Subscribe(EventTranslationDone, func(data TranslationEventData) {
		logger.DebugTag("TRAD", "event: request %s translated to %s via %s", data.RequestID, data.Target, data.Provider)
	}); err != nil {
		return err
	}

	if err := Subscribe(EventReconciliationFired, func(data ReconciliationEventData) {
		logger.InfoTag("LANG", "event: request %s reconciled %s -> %s (similarity %.2f)", data.RequestID, data.From, data.To, data.Similarity)
	}); err != nil {
		return err
	}

	return Subscribe(EventSynthesisDone, func(data SynthesisEventData) {
		logger.DebugTag("TTS", "event: request %s synthesized %d bytes (tempo %.2f)", data.RequestID, data.Bytes, data.Tempo)
	})
}
