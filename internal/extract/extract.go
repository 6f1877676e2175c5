// Package extract pulls verifiable factual claims out of a model answer.
// Two extractors exist: a deterministic rule-based one and an LLM-backed one;
// the pipeline picks per configuration.
package extract

import (
	"context"
	"fmt"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

// Extractor turns free text into a list of claims to verify
type Extractor interface {
	Extract(ctx context.Context, text string) ([]model.Claim, error)
}

// New selects an extractor from configuration. Mode "rules" (the default)
// needs no provider; mode "llm" uses the configured extraction provider.
func New(ctx context.Context, cfg *model.Config) (Extractor, error) {
	switch cfg.Extract.Mode {
	case "", "rules":
		return NewRuleExtractor(), nil
	case "llm":
		provider, err := llm.NewProvider(ctx, cfg.Extract.Provider, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating extraction provider: %w", err)
		}
		return NewLLMExtractor(provider), nil
	default:
		return nil, fmt.Errorf("unknown extraction mode %q", cfg.Extract.Mode)
	}
}

// assignIDs stamps stable per-answer claim IDs (claim_1, claim_2, ...)
func assignIDs(claims []model.Claim) []model.Claim {
	for i := range claims {
		claims[i].ID = fmt.Sprintf("claim_%d", i+1)
	}
	return claims
}
