package voting

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/verifier"
)

// fixedVerifier always answers with the same verdict, or fails when broken.
type fixedVerifier struct {
	name    string
	verdict model.Verdict
	broken  bool
	calls   atomic.Int64
}

func (f *fixedVerifier) Name() string { return f.name }

func (f *fixedVerifier) Verify(_ context.Context, _ string) (model.Verdict, error) {
	f.calls.Add(1)
	if f.broken {
		return model.VerdictUncertain, fmt.Errorf("%w: %s: connection refused", verifier.ErrUnavailable, f.name)
	}
	return f.verdict, nil
}

func newEngine(t *testing.T, fallback model.FallbackPolicy, vs ...verifier.Verifier) *Engine {
	t.Helper()
	e, err := NewEngine(vs, fallback)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func TestSelectVerifiersExcludesTarget(t *testing.T) {
	priority := []string{"openai", "anthropic", "gemini", "deepseek"}

	got, err := SelectVerifiers(priority, "OpenAI")
	if err != nil {
		t.Fatalf("SelectVerifiers: %v", err)
	}
	want := []string{"anthropic", "gemini", "deepseek"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSelectVerifiersTargetNotInPriority(t *testing.T) {
	priority := []string{"openai", "anthropic", "gemini", "deepseek"}

	got, err := SelectVerifiers(priority, "mistral")
	if err != nil {
		t.Fatalf("SelectVerifiers: %v", err)
	}
	if !reflect.DeepEqual(got, priority) {
		t.Errorf("got %v, want full priority %v", got, priority)
	}
}

func TestSelectVerifiersTooFew(t *testing.T) {
	_, err := SelectVerifiers([]string{"openai", "anthropic"}, "openai")
	if err == nil {
		t.Fatal("expected error with 1 remaining verifier")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigError, got %T", err)
	}
}

func TestNewEngineRequiresTwoVerifiers(t *testing.T) {
	_, err := NewEngine([]verifier.Verifier{&fixedVerifier{name: "a"}}, model.FallbackEscalate)
	if err == nil {
		t.Fatal("expected error with a single verifier")
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Errorf("expected ConfigError, got %T", err)
	}
}

func TestResolveAgreementSkipsThird(t *testing.T) {
	third := &fixedVerifier{name: "c", verdict: model.VerdictNo}
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictYes},
		third,
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "water boils at 100C"})

	if res.Verdict != model.VerdictYes {
		t.Errorf("verdict = %s, want yes", res.Verdict)
	}
	if res.VotingTriggered {
		t.Error("voting should not trigger on agreement")
	}
	if len(res.Votes) != 2 {
		t.Errorf("votes = %d, want 2", len(res.Votes))
	}
	if third.calls.Load() != 0 {
		t.Errorf("third verifier called %d times on agreement", third.calls.Load())
	}
}

func TestResolveDisagreementMajority(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictNo},
		&fixedVerifier{name: "c", verdict: model.VerdictYes},
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictYes {
		t.Errorf("verdict = %s, want yes", res.Verdict)
	}
	if !res.VotingTriggered {
		t.Error("voting should trigger on disagreement")
	}
	if len(res.Votes) != 3 {
		t.Errorf("votes = %d, want 3", len(res.Votes))
	}
}

func TestResolveAllDistinctVerdicts(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictNo},
		&fixedVerifier{name: "c", verdict: model.VerdictUncertain},
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want uncertain", res.Verdict)
	}
	if !res.VotingTriggered {
		t.Error("voting should trigger on disagreement")
	}
}

func TestResolveDisagreementNoThirdConfigured(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictNo},
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want uncertain", res.Verdict)
	}
	if res.VotingTriggered {
		t.Error("voting must not trigger when no third response exists")
	}
	if len(res.Votes) != 2 {
		t.Errorf("votes = %d, want 2", len(res.Votes))
	}
	if !strings.Contains(res.Note, "no third verifier") {
		t.Errorf("note %q should mention the missing tie-breaker", res.Note)
	}
}

func TestVotingTriggeredMatchesThirdResponse(t *testing.T) {
	// Invariant: a third response exists exactly when voting triggered
	cases := []struct {
		name      string
		verifiers []verifier.Verifier
	}{
		{"agreement", []verifier.Verifier{
			&fixedVerifier{name: "a", verdict: model.VerdictNo},
			&fixedVerifier{name: "b", verdict: model.VerdictNo},
			&fixedVerifier{name: "c", verdict: model.VerdictYes},
		}},
		{"tie-break", []verifier.Verifier{
			&fixedVerifier{name: "a", verdict: model.VerdictNo},
			&fixedVerifier{name: "b", verdict: model.VerdictYes},
			&fixedVerifier{name: "c", verdict: model.VerdictYes},
		}},
		{"no third", []verifier.Verifier{
			&fixedVerifier{name: "a", verdict: model.VerdictNo},
			&fixedVerifier{name: "b", verdict: model.VerdictYes},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t, model.FallbackEscalate, tc.verifiers...)
			res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})
			if res.VotingTriggered != (len(res.Votes) == 3) {
				t.Errorf("votingTriggered=%v with %d votes", res.VotingTriggered, len(res.Votes))
			}
		})
	}
}

func TestResolveEscalatesPastFailedVerifier(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", broken: true},
		&fixedVerifier{name: "c", verdict: model.VerdictYes},
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictYes {
		t.Errorf("verdict = %s, want yes", res.Verdict)
	}
	if res.VotingTriggered {
		t.Error("replacement vote is not a tie-break")
	}
	if len(res.Votes) != 2 {
		t.Errorf("votes = %d, want 2", len(res.Votes))
	}
	for _, v := range res.Votes {
		if v.Verifier == "b" {
			t.Error("failed verifier must not contribute a vote")
		}
	}
	if !strings.Contains(res.Note, "b unavailable") {
		t.Errorf("note %q should record the failure", res.Note)
	}
}

func TestResolveDegradeKeepsSurvivingVote(t *testing.T) {
	spare := &fixedVerifier{name: "c", verdict: model.VerdictNo}
	e := newEngine(t, model.FallbackDegrade,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", broken: true},
		spare,
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictYes {
		t.Errorf("verdict = %s, want yes from the surviving verifier", res.Verdict)
	}
	if res.Incomplete {
		t.Error("degrade with one vote is not incomplete")
	}
	if spare.calls.Load() != 0 {
		t.Error("degrade policy must not escalate to spare verifiers")
	}
}

func TestResolveAllVerifiersDown(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", broken: true},
		&fixedVerifier{name: "b", broken: true},
		&fixedVerifier{name: "c", broken: true},
	)

	res := e.Resolve(context.Background(), model.Claim{ID: "c1", Text: "x"})

	if res.Verdict != model.VerdictUncertain {
		t.Errorf("verdict = %s, want uncertain", res.Verdict)
	}
	if !res.Incomplete {
		t.Error("expected incomplete resolution when every verifier fails")
	}
	if len(res.Votes) != 0 {
		t.Errorf("votes = %d, want 0", len(res.Votes))
	}
	if !strings.Contains(res.Note, IncompleteNote) {
		t.Errorf("note %q should flag the incomplete verification", res.Note)
	}
}

func TestResolveIdempotent(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictNo},
		&fixedVerifier{name: "c", verdict: model.VerdictYes},
	)
	claim := model.Claim{ID: "c1", Text: "the moon orbits the earth"}

	first := e.Resolve(context.Background(), claim)
	second := e.Resolve(context.Background(), claim)

	if first.Verdict != second.Verdict || first.VotingTriggered != second.VotingTriggered {
		t.Errorf("resolutions differ: %+v vs %+v", first, second)
	}
}

func TestResolveAllPreservesOrder(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictYes},
	)

	claims := make([]model.Claim, 10)
	for i := range claims {
		claims[i] = model.Claim{ID: fmt.Sprintf("c%d", i), Text: fmt.Sprintf("claim %d", i)}
	}

	resolutions := e.ResolveAll(context.Background(), claims, 3)

	if len(resolutions) != len(claims) {
		t.Fatalf("got %d resolutions, want %d", len(resolutions), len(claims))
	}
	for i, res := range resolutions {
		if res.Claim.ID != claims[i].ID {
			t.Errorf("resolution %d carries claim %s", i, res.Claim.ID)
		}
	}
}

func TestResolveAllEmpty(t *testing.T) {
	e := newEngine(t, model.FallbackEscalate,
		&fixedVerifier{name: "a", verdict: model.VerdictYes},
		&fixedVerifier{name: "b", verdict: model.VerdictYes},
	)
	if got := e.ResolveAll(context.Background(), nil, 4); got != nil {
		t.Errorf("expected nil for empty claim list, got %v", got)
	}
}

// Batches much larger than the concurrency bound must resolve completely,
// even with a single worker.
func TestResolveAllLargeBatch(t *testing.T) {
	claims := make([]model.Claim, 30)
	for i := range claims {
		claims[i] = model.Claim{ID: fmt.Sprintf("c%d", i), Text: fmt.Sprintf("claim %d", i)}
	}

	for _, maxConcurrent := range []int{1, 4} {
		a := &fixedVerifier{name: "a", verdict: model.VerdictYes}
		b := &fixedVerifier{name: "b", verdict: model.VerdictYes}
		e := newEngine(t, model.FallbackEscalate, a, b)

		done := make(chan []model.Resolution, 1)
		go func() { done <- e.ResolveAll(context.Background(), claims, maxConcurrent) }()

		var resolutions []model.Resolution
		select {
		case resolutions = <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("maxConcurrent=%d: ResolveAll stalled on %d claims", maxConcurrent, len(claims))
		}

		if len(resolutions) != len(claims) {
			t.Fatalf("maxConcurrent=%d: got %d resolutions, want %d", maxConcurrent, len(resolutions), len(claims))
		}
		for i, res := range resolutions {
			if res.Claim.ID != claims[i].ID {
				t.Errorf("maxConcurrent=%d: resolution %d carries claim %s", maxConcurrent, i, res.Claim.ID)
			}
			if res.Verdict != model.VerdictYes || res.Incomplete {
				t.Errorf("maxConcurrent=%d: claim %s resolved %s (incomplete=%v)", maxConcurrent, res.Claim.ID, res.Verdict, res.Incomplete)
			}
		}
		if a.calls.Load() != int64(len(claims)) || b.calls.Load() != int64(len(claims)) {
			t.Errorf("maxConcurrent=%d: verifiers called %d/%d times, want %d each", maxConcurrent, a.calls.Load(), b.calls.Load(), len(claims))
		}
	}
}

// stalledVerifier blocks until its context is cancelled, signalling once
// when the first call arrives.
type stalledVerifier struct {
	name    string
	started chan struct{}
	once    sync.Once
}

func (v *stalledVerifier) Name() string { return v.name }

func (v *stalledVerifier) Verify(ctx context.Context, _ string) (model.Verdict, error) {
	if v.started != nil {
		v.once.Do(func() { close(v.started) })
	}
	<-ctx.Done()
	return model.VerdictUncertain, fmt.Errorf("%w: %s: %v", verifier.ErrUnavailable, v.name, ctx.Err())
}

func TestResolveAllCancelledMidBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	e := newEngine(t, model.FallbackEscalate,
		&stalledVerifier{name: "a", started: started},
		&stalledVerifier{name: "b"},
	)

	claims := make([]model.Claim, 6)
	for i := range claims {
		claims[i] = model.Claim{ID: fmt.Sprintf("c%d", i), Text: fmt.Sprintf("claim %d", i)}
	}

	done := make(chan []model.Resolution, 1)
	go func() { done <- e.ResolveAll(ctx, claims, 1) }()

	<-started
	cancel()

	var resolutions []model.Resolution
	select {
	case resolutions = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ResolveAll did not return after cancellation")
	}

	if len(resolutions) != len(claims) {
		t.Fatalf("got %d resolutions, want %d", len(resolutions), len(claims))
	}
	for i, res := range resolutions {
		if res.Claim.ID != claims[i].ID {
			t.Errorf("resolution %d carries claim %s", i, res.Claim.ID)
		}
		if res.Verdict != model.VerdictUncertain || !res.Incomplete {
			t.Errorf("claim %s: verdict %s incomplete=%v after cancellation", res.Claim.ID, res.Verdict, res.Incomplete)
		}
		if !strings.Contains(res.Note, IncompleteNote) {
			t.Errorf("claim %s: note %q lacks the incomplete marker", res.Claim.ID, res.Note)
		}
	}
}
