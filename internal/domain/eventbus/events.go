package eventbus

// Pipeline stage topics.
const (
	EventDecisionMade        = "pipeline.decision.made"
	EventTranslationDone     = "pipeline.translation.done"
	EventReconciliationFired = "pipeline.reconciliation.fired"
	EventSynthesisDone       = "pipeline.synthesis.done"
)

// DecisionEventData reports the provisional language pick for a request.
type DecisionEventData struct {
	RequestID string
	Language  string
	Forced    bool
}

// TranslationEventData reports which provider tier served a translation.
type TranslationEventData struct {
	RequestID string
	Target    string
	Provider  string
}

// ReconciliationEventData reports the single corrective flip.
type ReconciliationEventData struct {
	RequestID  string
	From       string
	To         string
	Similarity float64
}

// SynthesisEventData reports the synthesized artifact size and tempo.
type SynthesisEventData struct {
	RequestID string
	Bytes     int
	Tempo     float64
}
