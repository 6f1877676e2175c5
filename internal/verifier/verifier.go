// Package verifier implements the verify(claim) capability: one external
// judge asked whether a factual claim holds, answering Yes, No or Uncertain.
package verifier

import (
	"context"
	"errors"

	"github.com/veridict/veridict/internal/model"
)

// ErrUnavailable marks a single failed verifier call (timeout, transport
// error, provider outage). The voting engine recovers from it per claim; it
// never crashes a batch.
var ErrUnavailable = errors.New("verifier unavailable")

// Verifier judges one claim at a time. Implementations must be safe for
// concurrent use: the voting engine calls the same verifier for many claims
// at once.
type Verifier interface {
	// Name returns the verifier identity (matches the priority list)
	Name() string

	// Verify judges the claim. A non-nil error wraps ErrUnavailable; the
	// verdict is then meaningless.
	Verify(ctx context.Context, claim string) (model.Verdict, error)
}
