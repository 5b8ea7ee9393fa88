package services

// AnalysisService runs the four-stage pipeline over a shared read-only
// knowledge base. All stages are pure functions of request-local data, so a
// single instance serves concurrent requests.
type AnalysisService struct {
	kb *KnowledgeBase
}

func NewAnalysisService(kb *KnowledgeBase) *AnalysisService {
	return &AnalysisService{kb: kb}
}

// AnalysisResult is the externally visible output of one analyze call.
type AnalysisResult struct {
	NormalizedIngredients []Ingredient   `json:"normalized_ingredients"`
	InferredIntent        IntentScore    `json:"inferred_intent"`
	DecisionCard          DecisionCard   `json:"decision_card"`
	Debug                 map[string]any `json:"debug"`
}

// Analyze normalizes the label text, infers the user's intent, scores the
// product against that intent, and composes the decision card. Blank text is
// not an error; it yields an empty list and a default general-intent card.
func (s *AnalysisService) Analyze(text, optimizeFor string, prefs UserPrefs) AnalysisResult {
	normalized := NormalizeIngredients(text, s.kb)
	intent := InferIntent(normalized, optimizeFor, prefs)
	fit := ScoreFit(normalized, intent.TopIntent)
	card := ComposeDecisionCard(normalized, intent, fit)

	return AnalysisResult{
		NormalizedIngredients: normalized,
		InferredIntent:        intent,
		DecisionCard:          card,
		Debug: map[string]any{
			"fit":          fit,
			"optimize_for": optimizeFor,
			"user_prefs":   prefs,
		},
	}
}
