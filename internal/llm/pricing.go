package llm

// ModelCost is the list price of a model in USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost returns the USD price of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1_000_000
}

// LookupCost returns the price of modelID. Dated snapshot ids such as
// "claude-haiku-4-5-20251001" fall back to their undated family.
func LookupCost(modelID string) (ModelCost, bool) {
	if c, ok := modelCosts[modelID]; ok {
		return c, true
	}
	// Strip a trailing -YYYYMMDD or -YYYY-MM-DD.
	for _, n := range []int{9, 11} {
		if len(modelID) > n && modelID[len(modelID)-n] == '-' && isDigit(modelID[len(modelID)-1]) {
			if c, ok := modelCosts[modelID[:len(modelID)-n]]; ok {
				return c, true
			}
		}
	}
	return ModelCost{}, false
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// modelCosts covers the models the aliases resolve to plus their common
// neighbours. Prices as of 2026-02.
var modelCosts = map[string]ModelCost{
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"claude-3-5-haiku":  {0.8, 4},

	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},

	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},

	"google/gemini-2.0-flash-001": {0.1, 0.4},
}
