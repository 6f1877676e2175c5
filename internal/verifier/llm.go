package verifier

import (
	"context"
	"fmt"
	"os"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/worker"
)

const verifySystem = "You are a strict fact-checker. You answer with exactly one word."

const verifyPromptFormat = `Respond with ONLY one word: "Yes", "No", or "Uncertain"

Yes = the claim is factually correct according to widely accepted knowledge
No = the claim is factually incorrect
Uncertain = the claim is ambiguous, partially true, or you're not confident

Claim: %s`

// LLMVerifier asks one LLM provider to judge claims. Out-of-vocabulary
// answers are coerced to Uncertain with a warning rather than failing the
// claim; only transport-level failures surface as ErrUnavailable.
type LLMVerifier struct {
	provider llm.Provider
	cache    *cache.VerdictCache // nil disables caching
	limiter  *worker.Limiter     // nil disables rate limiting
}

// NewLLMVerifier wraps provider. cache and limiter may be nil.
func NewLLMVerifier(provider llm.Provider, vc *cache.VerdictCache, limiter *worker.Limiter) *LLMVerifier {
	return &LLMVerifier{provider: provider, cache: vc, limiter: limiter}
}

// Name returns the underlying provider identity
func (v *LLMVerifier) Name() string {
	return v.provider.Name()
}

// Verify judges one claim
func (v *LLMVerifier) Verify(ctx context.Context, claim string) (model.Verdict, error) {
	if v.cache != nil {
		if verdict, ok := v.cache.Get(v.Name(), claim); ok {
			return verdict, nil
		}
	}

	if v.limiter != nil {
		if err := v.limiter.Wait(ctx, v.Name()); err != nil {
			return model.VerdictUncertain, fmt.Errorf("%w: %s: %v", ErrUnavailable, v.Name(), err)
		}
	}

	resp, err := v.provider.Complete(ctx, llm.CompletionRequest{
		System:    verifySystem,
		Prompt:    fmt.Sprintf(verifyPromptFormat, claim),
		MaxTokens: 10,
	})
	if err != nil {
		return model.VerdictUncertain, fmt.Errorf("%w: %s: %v", ErrUnavailable, v.Name(), err)
	}

	verdict, ok := model.NormalizeVerdict(resp.Text)
	if !ok {
		fmt.Fprintf(os.Stderr, "Warning: %s returned %q for claim %q, treating as Uncertain\n",
			v.Name(), resp.Text, claim)
	}

	if v.cache != nil {
		if err := v.cache.Set(v.Name(), claim, verdict); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: verdict cache write failed: %v\n", err)
		}
	}
	return verdict, nil
}
