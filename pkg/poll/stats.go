package poll

// Stats is a point-in-time snapshot of the service counters. Requests counts
// successful provider calls only; synthesized fallback answers are free and
// not counted. Costs are fixed per-call estimates, not metered billing.
type Stats struct {
	TotalRequests      int     `json:"total_requests"`
	TotalCost          float64 `json:"total_cost"`
	AvgCostPerRequest  float64 `json:"avg_cost_per_request"`
	OpenAIAvailable    bool    `json:"openai_available"`
	AnthropicAvailable bool    `json:"anthropic_available"`
}
