package metrics

// TokenUsage captures LLM token counts used to satisfy a request.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens,omitempty"`
	TotalTokens      int `json:"totalTokens"`
}

// IsZero reports whether usage data is absent.
func (u TokenUsage) IsZero() bool {
	return u.PromptTokens == 0 && u.CompletionTokens == 0 && u.TotalTokens == 0
}

// ObserveTokenUsage adds non-empty usage to the LLM token counters.
func ObserveTokenUsage(u TokenUsage) {
	if u.IsZero() {
		return
	}
	LLMTokens.WithLabelValues("prompt").Add(float64(u.PromptTokens))
	LLMTokens.WithLabelValues("completion").Add(float64(u.CompletionTokens))
}
