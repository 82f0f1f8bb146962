package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model  string
		found  bool
		input  float64
		output float64
	}{
		{"gpt-4o-mini", true, 0.15, 0.6},
		{"claude-haiku-4-5-20251001", true, 1, 5},
		{"gpt-4o-2024-08-06", true, 2.5, 10},
		{"mock", false, 0, 0},
		{"claude-haiku-4-5-latest", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c, ok := LookupCost(tt.model)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if c.InputPerMTok != tt.input || c.OutputPerMTok != tt.output {
				t.Fatalf("cost = %+v", c)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	got := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}.Cost(2_000, 1_000)
	if math.Abs(got-0.007) > 1e-12 {
		t.Fatalf("cost = %v, want 0.007", got)
	}
}
