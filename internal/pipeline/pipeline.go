// Package pipeline orchestrates one full analysis: ask the target model,
// extract claims from its answer, resolve each claim through the voting
// engine, optionally corroborate against Wikipedia, then score and summarize.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/graph"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/score"
	"github.com/veridict/veridict/internal/verifier"
	"github.com/veridict/veridict/internal/voting"
	"github.com/veridict/veridict/internal/wiki"
)

// Pipeline holds the wired components for the configured target model
type Pipeline struct {
	cfg       *model.Config
	target    llm.Provider
	extractor extract.Extractor
	engine    *voting.Engine
	verifiers []string
	scorer    *score.Scorer
	wiki      *wiki.Client // nil when corroboration is disabled
}

// New wires a pipeline from configuration. Fails fast on configuration
// problems: unknown providers, or a priority list that leaves fewer than two
// verifiers after excluding the target.
func New(ctx context.Context, cfg *model.Config) (*Pipeline, error) {
	target, err := llm.NewProvider(ctx, cfg.Target.Provider, cfg)
	if err != nil {
		return nil, fmt.Errorf("target provider: %w", err)
	}

	extractor, err := extract.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("claim extractor: %w", err)
	}

	names, err := voting.SelectVerifiers(cfg.Priority, cfg.Target.Provider)
	if err != nil {
		return nil, err
	}

	registry, err := verifier.NewRegistry(ctx, cfg)
	if err != nil {
		return nil, err
	}
	verifiers, err := registry.Resolve(names)
	if err != nil {
		return nil, err
	}

	engine, err := voting.NewEngine(verifiers, cfg.Verify.Fallback)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:       cfg,
		target:    target,
		extractor: extractor,
		engine:    engine,
		verifiers: names,
		scorer:    score.NewDefaultScorer(),
	}
	if cfg.Wikipedia.Enabled {
		p.wiki = wiki.NewClient(cfg)
	}
	return p, nil
}

// Verifiers returns the priority order actually in use, target excluded
func (p *Pipeline) Verifiers() []string {
	return p.verifiers
}

// Analyze runs the full pipeline for one question
func (p *Pipeline) Analyze(ctx context.Context, questionID, question string) (*model.Report, error) {
	answer, err := p.target.Complete(ctx, llm.CompletionRequest{
		Prompt:    question,
		MaxTokens: p.cfg.Target.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("target answer: %w", err)
	}

	claims, err := p.extractor.Extract(ctx, answer.Text)
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	resolutions := p.engine.ResolveAll(ctx, claims, p.cfg.Verify.MaxConcurrent)

	results := make([]model.ClaimResult, 0, len(resolutions))
	for _, res := range resolutions {
		external := model.ExternalSkipped
		if p.wiki != nil {
			external = p.wiki.Check(ctx, res.Claim.Text)
		}
		results = append(results, p.scorer.Score(res, external))
	}

	report := &model.Report{
		QuestionID: questionID,
		Question:   question,
		Target:     p.target.Name(),
		Answer:     answer.Text,
		Verifiers:  p.verifiers,
		Claims:     results,
		Graph:      graph.Build(results),
		Summary:    p.summarize(results),
		CreatedAt:  time.Now().UTC(),
	}
	return report, nil
}

func (p *Pipeline) summarize(results []model.ClaimResult) model.Summary {
	s := model.Summary{
		TotalClaims:       len(results),
		OverallConfidence: p.scorer.Overall(results),
	}
	for _, r := range results {
		switch r.Risk {
		case model.RiskHigh:
			s.HighRiskClaims++
		case model.RiskMedium:
			s.MediumRiskClaims++
		case model.RiskLow:
			s.LowRiskClaims++
		}
		if r.VotingTriggered {
			s.VotesEscalated++
		}
	}
	return s
}
