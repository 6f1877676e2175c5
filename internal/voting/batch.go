package voting

import (
	"context"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/worker"
)

type claimJob struct {
	engine *Engine
	index  int
	claim  model.Claim
}

type claimResult struct {
	index      int
	resolution model.Resolution
}

// Err always returns nil: verifier failures are encoded in the resolution
// itself, so a batch never aborts on one bad claim.
func (claimResult) Err() error { return nil }

func (j claimJob) Execute(ctx context.Context) worker.Result {
	return claimResult{index: j.index, resolution: j.engine.Resolve(ctx, j.claim)}
}

// ResolveAll resolves every claim on a bounded pool and returns resolutions
// in the original claim order. Every input claim gets a resolution: claims
// the pool never reached (cancelled context) come back incomplete instead
// of leaving holes in the batch.
func (e *Engine) ResolveAll(ctx context.Context, claims []model.Claim, maxConcurrent int) []model.Resolution {
	if len(claims) == 0 {
		return nil
	}

	jobs := make([]worker.Job, len(claims))
	for i, claim := range claims {
		jobs[i] = claimJob{engine: e, index: i, claim: claim}
	}
	results := worker.NewPool(maxConcurrent).Process(ctx, jobs)

	resolutions := make([]model.Resolution, len(claims))
	resolved := make([]bool, len(claims))
	for _, r := range results {
		cr := r.(claimResult)
		resolutions[cr.index] = cr.resolution
		resolved[cr.index] = true
	}
	for i, done := range resolved {
		if !done {
			resolutions[i] = model.Resolution{
				Claim:      claims[i],
				Verdict:    model.VerdictUncertain,
				Incomplete: true,
				Note:       IncompleteNote,
			}
		}
	}
	return resolutions
}
