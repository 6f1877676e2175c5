package model

import "strings"

// Verdict is a verifier's judgment of a single claim
type Verdict string

const (
	VerdictYes       Verdict = "Yes"
	VerdictNo        Verdict = "No"
	VerdictUncertain Verdict = "Uncertain"
)

// Valid reports whether v is one of the three allowed verdicts
func (v Verdict) Valid() bool {
	return v == VerdictYes || v == VerdictNo || v == VerdictUncertain
}

// NormalizeVerdict maps a raw model response to a Verdict. The second return
// value is false when the response was outside the expected vocabulary and
// had to be coerced to Uncertain.
func NormalizeVerdict(raw string) (Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), ".!"))) {
	case "yes", "true", "correct", "supported", "agree":
		return VerdictYes, true
	case "no", "false", "incorrect", "contradicted", "disagree":
		return VerdictNo, true
	case "uncertain", "unsure", "unknown", "unclear":
		return VerdictUncertain, true
	default:
		return VerdictUncertain, false
	}
}
