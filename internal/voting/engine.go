package voting

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/verifier"
)

// IncompleteNote marks a claim whose verification could not assemble enough
// usable responses. Such claims are still reported, never dropped.
const IncompleteNote = "verification incomplete"

// Engine resolves one claim at a time against an ordered verifier list. It
// holds no per-claim state, so one engine may resolve many claims
// concurrently.
type Engine struct {
	verifiers []verifier.Verifier
	fallback  model.FallbackPolicy
}

// NewEngine creates an engine over verifiers already in priority order with
// the target excluded. Fails with a ConfigError when fewer than two are
// available.
func NewEngine(verifiers []verifier.Verifier, fallback model.FallbackPolicy) (*Engine, error) {
	if len(verifiers) < 2 {
		return nil, &ConfigError{
			Reason: fmt.Sprintf("need at least 2 verifiers, have %d", len(verifiers)),
		}
	}
	if fallback == "" {
		fallback = model.FallbackEscalate
	}
	return &Engine{verifiers: verifiers, fallback: fallback}, nil
}

// Resolve produces the final verdict for one claim. The first two verifiers
// run concurrently; the third is consulted only on disagreement. Verifier
// failures degrade the claim according to the fallback policy — they never
// propagate as errors.
func (e *Engine) Resolve(ctx context.Context, claim model.Claim) model.Resolution {
	res := model.Resolution{Claim: claim, Verdict: model.VerdictUncertain}

	type outcome struct {
		vote model.Vote
		err  error
	}
	first := make([]outcome, 2)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			v := e.verifiers[slot]
			verdict, err := v.Verify(ctx, claim.Text)
			first[slot] = outcome{vote: model.Vote{Verifier: v.Name(), Verdict: verdict}, err: err}
		}(i)
	}
	wg.Wait()

	next := 2 // next untried priority index
	var notes []string

	for slot := 0; slot < 2; slot++ {
		o := first[slot]
		if o.err == nil {
			res.Votes = append(res.Votes, o.vote)
			continue
		}
		notes = append(notes, fmt.Sprintf("%s unavailable", o.vote.Verifier))
		if e.fallback == model.FallbackEscalate {
			if vote, ok := e.nextVote(ctx, claim.Text, &next, &notes); ok {
				res.Votes = append(res.Votes, vote)
			}
		}
	}

	switch len(res.Votes) {
	case 0:
		res.Incomplete = true
		notes = append(notes, IncompleteNote)

	case 1:
		if e.fallback == model.FallbackDegrade {
			// The surviving response stands as its own agreement
			res.Verdict = res.Votes[0].Verdict
		} else {
			res.Incomplete = true
			notes = append(notes, IncompleteNote)
		}

	default:
		a, b := res.Votes[0].Verdict, res.Votes[1].Verdict
		if a == b {
			res.Verdict = a
			break
		}

		third, ok := e.nextVote(ctx, claim.Text, &next, &notes)
		if !ok {
			// No tie-breaker left: best effort, Uncertain without voting
			notes = append(notes, "no third verifier available for tie-break")
			break
		}

		res.Votes = append(res.Votes, third)
		res.VotingTriggered = true
		res.Verdict = majority(a, b, third.Verdict)
	}

	res.Note = strings.Join(notes, "; ")
	return res
}

// nextVote walks the remaining priority order until a verifier answers.
// Under the degrade policy a single failure stops the walk.
func (e *Engine) nextVote(ctx context.Context, claimText string, next *int, notes *[]string) (model.Vote, bool) {
	for *next < len(e.verifiers) {
		v := e.verifiers[*next]
		*next++

		verdict, err := v.Verify(ctx, claimText)
		if err != nil {
			*notes = append(*notes, fmt.Sprintf("%s unavailable", v.Name()))
			if e.fallback != model.FallbackEscalate {
				return model.Vote{}, false
			}
			continue
		}
		return model.Vote{Verifier: v.Name(), Verdict: verdict}, true
	}
	return model.Vote{}, false
}

// majority returns the value supported by at least two of the three votes,
// or Uncertain when all three differ.
func majority(a, b, c model.Verdict) model.Verdict {
	switch {
	case a == b || a == c:
		return a
	case b == c:
		return b
	default:
		return model.VerdictUncertain
	}
}
