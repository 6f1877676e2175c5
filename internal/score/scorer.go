// Package score derives per-claim confidence and hallucination risk from the
// voting outcome, optional external corroboration and the claim text itself.
package score

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// Default component weights: cross-model agreement and external
// corroboration dominate, claim context is a small corrective.
const (
	DefaultAlpha = 0.4
	DefaultBeta  = 0.4
	DefaultGamma = 0.2
)

// Scorer blends three component scores into one confidence value:
//
//	confidence = alpha*crossModel + beta*external + gamma*context
type Scorer struct {
	alpha float64
	beta  float64
	gamma float64
}

// NewScorer creates a scorer with the given weights, normalized to sum to 1
func NewScorer(alpha, beta, gamma float64) *Scorer {
	total := alpha + beta + gamma
	if total <= 0 {
		return &Scorer{alpha: DefaultAlpha, beta: DefaultBeta, gamma: DefaultGamma}
	}
	if math.Abs(total-1.0) > 0.001 {
		fmt.Fprintf(os.Stderr, "Warning: confidence weights sum to %.3f, normalizing\n", total)
	}
	return &Scorer{alpha: alpha / total, beta: beta / total, gamma: gamma / total}
}

// NewDefaultScorer creates a scorer with the standard weights
func NewDefaultScorer() *Scorer {
	return NewScorer(DefaultAlpha, DefaultBeta, DefaultGamma)
}

// Components are the unweighted inputs to one claim's confidence
type Components struct {
	CrossModel float64 `json:"cross_model"`
	External   float64 `json:"external"`
	Context    float64 `json:"context"`
}

// Score attaches confidence and risk to a resolved claim
func (s *Scorer) Score(res model.Resolution, external model.ExternalStatus) model.ClaimResult {
	confidence, _ := s.ClaimConfidence(res, external)
	return model.ClaimResult{
		Resolution: res,
		Confidence: confidence,
		Risk:       Risk(res.Votes),
		External:   external,
	}
}

// ClaimConfidence computes the weighted confidence and returns the component
// breakdown alongside it.
func (s *Scorer) ClaimConfidence(res model.Resolution, external model.ExternalStatus) (float64, Components) {
	c := Components{
		CrossModel: CrossModelScore(res.Votes),
		External:   ExternalScore(external),
		Context:    ContextScore(res.Claim.Text),
	}
	return s.alpha*c.CrossModel + s.beta*c.External + s.gamma*c.Context, c
}

// Overall computes the weighted average confidence across all claims, where
// each claim's weight reflects its importance. Zero when no claims exist.
func (s *Scorer) Overall(results []model.ClaimResult) float64 {
	var weightedSum, weights float64
	for _, r := range results {
		w := ClaimWeight(r.Claim.Text)
		weightedSum += r.Confidence * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return weightedSum / weights
}

// CrossModelScore maps the first two verifier verdicts to an agreement
// score. Missing votes count as Uncertain.
func CrossModelScore(votes []model.Vote) float64 {
	a, b := model.VerdictUncertain, model.VerdictUncertain
	if len(votes) > 0 {
		a = votes[0].Verdict
	}
	if len(votes) > 1 {
		b = votes[1].Verdict
	}

	if a == b {
		switch a {
		case model.VerdictYes:
			return 0.9
		case model.VerdictNo:
			return 0.1 // shared No means a likely hallucination, not high trust
		default:
			return 0.3
		}
	}

	if a == model.VerdictUncertain || b == model.VerdictUncertain {
		other := a
		if a == model.VerdictUncertain {
			other = b
		}
		if other == model.VerdictYes {
			return 0.5
		}
		return 0.3
	}

	// direct Yes/No split
	return 0.2
}

// ExternalScore maps the corroboration status to a confidence component
func ExternalScore(status model.ExternalStatus) float64 {
	switch status {
	case model.ExternalSupports:
		return 0.9
	case model.ExternalContradicts:
		return 0.1
	case model.ExternalUnclear:
		return 0.4
	case model.ExternalNotFound:
		return 0.3
	default: // skipped or unknown
		return 0.5
	}
}

var (
	yearPattern        = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	datePattern        = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`)
	properNamePattern  = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	locationPattern    = regexp.MustCompile(`\bin\s+[A-Z][a-z]+\b`)
	measurementPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(km|miles|meters|feet|kg|pounds|years|months|days)\b`)
	sciencePattern     = regexp.MustCompile(`\b(theory|law|principle|equation|formula)\s+of\b`)

	subjectiveWords = []string{"probably", "might", "could", "seems", "appears", "likely", "perhaps", "possibly"}

	importantKeywords = []string{
		"theory", "discovery", "invention", "principle", "law",
		"born", "died", "published", "awarded", "prize",
		"president", "founded", "established", "created",
	}
)

// ContextScore rates how checkable a claim looks: concrete anchors (dates,
// names, measurements) raise it, length and hedging lower it. Clamped to
// [0, 1].
func ContextScore(claim string) float64 {
	lower := strings.ToLower(claim)
	score := 0.5

	if yearPattern.MatchString(lower) {
		score += 0.2
	}
	if datePattern.MatchString(lower) {
		score += 0.3
	}
	if properNamePattern.MatchString(claim) {
		score += 0.1
	}
	if locationPattern.MatchString(claim) {
		score += 0.1
	}
	if measurementPattern.MatchString(lower) {
		score += 0.15
	}
	if sciencePattern.MatchString(lower) {
		score += 0.1
	}

	switch words := len(strings.Fields(claim)); {
	case words > 20:
		score -= 0.2
	case words > 15:
		score -= 0.1
	case words < 5:
		score += 0.1
	}

	for _, word := range subjectiveWords {
		if strings.Contains(lower, word) {
			score -= 0.1
		}
	}

	return math.Max(0, math.Min(1, score))
}

// ClaimWeight rates a claim's contribution to the overall confidence.
// Longer claims and claims about notable facts weigh more. Clamped to
// [0.5, 2].
func ClaimWeight(claim string) float64 {
	weight := 1.0

	switch words := len(strings.Fields(claim)); {
	case words > 15:
		weight += 0.3
	case words > 10:
		weight += 0.2
	case words < 5:
		weight -= 0.2
	}

	lower := strings.ToLower(claim)
	for _, keyword := range importantKeywords {
		if strings.Contains(lower, keyword) {
			weight += 0.1
		}
	}

	return math.Max(0.5, math.Min(2, weight))
}

// Risk buckets a claim by the first two verifier verdicts: a shared No is
// high risk, a shared Yes low, everything mixed or uncertain medium.
func Risk(votes []model.Vote) model.RiskLevel {
	a, b := model.VerdictUncertain, model.VerdictUncertain
	if len(votes) > 0 {
		a = votes[0].Verdict
	}
	if len(votes) > 1 {
		b = votes[1].Verdict
	}

	switch {
	case a == model.VerdictNo && b == model.VerdictNo:
		return model.RiskHigh
	case a == model.VerdictYes && b == model.VerdictYes:
		return model.RiskLow
	default:
		return model.RiskMedium
	}
}
