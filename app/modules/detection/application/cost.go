package detectionservice

import "math"

// Pricing is the vision cost model: a flat per-image price plus per-1K-token
// input and output prices.
type Pricing struct {
	PerImage    float64
	InputPer1K  float64
	OutputPer1K float64
}

// Cost computes the dollar cost of one call, rounded to 6 decimals so the
// ledger matches the provider's invoice granularity.
func (p Pricing) Cost(images, promptTokens, completionTokens int) float64 {
	cost := float64(images)*p.PerImage +
		float64(promptTokens)/1000*p.InputPer1K +
		float64(completionTokens)/1000*p.OutputPer1K
	return math.Round(cost*1e6) / 1e6
}
