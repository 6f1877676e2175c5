package verifier

import (
	"context"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// stubRule maps a set of required substrings to a verdict. Rules are
// evaluated in order; the first full match wins.
type stubRule struct {
	all     []string
	verdict model.Verdict
}

// StubVerifier is a deterministic offline verifier. Each identity gets its
// own keyword table so the personalities disagree on a few claims — enough
// to exercise the tie-break path without any API calls.
type StubVerifier struct {
	name  string
	rules []stubRule
}

// NewStubVerifier creates the stub persona for the given identity
func NewStubVerifier(name string) *StubVerifier {
	name = strings.ToLower(name)
	rules, ok := stubRules[name]
	if !ok {
		rules = stubRules["anthropic"]
	}
	return &StubVerifier{name: name, rules: rules}
}

// Name returns the simulated verifier identity
func (v *StubVerifier) Name() string {
	return v.name
}

// Verify applies the keyword table to the claim
func (v *StubVerifier) Verify(ctx context.Context, claim string) (model.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return model.VerdictUncertain, err
	}

	lower := strings.ToLower(claim)
	for _, rule := range v.rules {
		matched := true
		for _, needle := range rule.all {
			if !strings.Contains(lower, needle) {
				matched = false
				break
			}
		}
		if matched {
			return rule.verdict, nil
		}
	}
	return model.VerdictUncertain, nil
}

// Keyword tables derived from a fixed set of demo topics (Newton, Einstein,
// WW2, Python, climate). The personalities deliberately differ on the
// apocryphal apple story and Einstein's Nobel year.
var stubRules = map[string][]stubRule{
	"anthropic": {
		{[]string{"1643"}, model.VerdictYes},
		{[]string{"berlin"}, model.VerdictNo},
		{[]string{"1687", "gravit"}, model.VerdictYes},
		{[]string{"apple", "gravit"}, model.VerdictUncertain},
		{[]string{"royal society", "president"}, model.VerdictYes},
		{[]string{"calculus", "principia"}, model.VerdictYes},
		{[]string{"1727"}, model.VerdictYes},
		{[]string{"1879"}, model.VerdictYes},
		{[]string{"munich"}, model.VerdictNo},
		{[]string{"1922", "nobel"}, model.VerdictNo},
		{[]string{"quantum mechanics", "nobel"}, model.VerdictNo},
		{[]string{"1939", "1945"}, model.VerdictYes},
		{[]string{"september", "japan"}, model.VerdictNo},
		{[]string{"may 1945", "germany"}, model.VerdictYes},
		{[]string{"guido", "1991"}, model.VerdictYes},
		{[]string{"monty python"}, model.VerdictYes},
		{[]string{"python 3", "2008"}, model.VerdictYes},
		{[]string{"1.1", "temperature"}, model.VerdictYes},
		{[]string{"fossil fuels", "greenhouse"}, model.VerdictYes},
	},
	"gemini": {
		{[]string{"1643"}, model.VerdictYes},
		{[]string{"berlin"}, model.VerdictNo},
		{[]string{"apple", "gravit"}, model.VerdictNo},
		{[]string{"1687", "gravit"}, model.VerdictUncertain},
		{[]string{"royal society", "president"}, model.VerdictYes},
		{[]string{"calculus", "principia"}, model.VerdictYes},
		{[]string{"1727"}, model.VerdictYes},
		{[]string{"1879"}, model.VerdictYes},
		{[]string{"munich"}, model.VerdictNo},
		{[]string{"princeton", "1933"}, model.VerdictYes},
		{[]string{"1922", "nobel"}, model.VerdictUncertain},
		{[]string{"1939", "1945"}, model.VerdictYes},
		{[]string{"september", "japan"}, model.VerdictNo},
		{[]string{"may 1945", "germany"}, model.VerdictYes},
		{[]string{"guido", "1991"}, model.VerdictYes},
		{[]string{"interpreted"}, model.VerdictYes},
		{[]string{"monty python"}, model.VerdictYes},
		{[]string{"backward compatible"}, model.VerdictYes},
		{[]string{"temperature", "increased"}, model.VerdictYes},
		{[]string{"19th century"}, model.VerdictYes},
	},
	"openai": {
		{[]string{"1643"}, model.VerdictYes},
		{[]string{"berlin"}, model.VerdictNo},
		{[]string{"apple", "gravit"}, model.VerdictNo},
		{[]string{"1687", "gravit"}, model.VerdictYes},
		{[]string{"royal society", "president"}, model.VerdictYes},
		{[]string{"calculus", "principia"}, model.VerdictYes},
		{[]string{"1727"}, model.VerdictYes},
		{[]string{"1879"}, model.VerdictYes},
		{[]string{"munich"}, model.VerdictNo},
		{[]string{"1922", "nobel"}, model.VerdictNo},
		{[]string{"1939", "1945"}, model.VerdictYes},
		{[]string{"september", "japan"}, model.VerdictNo},
		{[]string{"may 1945", "germany"}, model.VerdictYes},
		{[]string{"guido", "1991"}, model.VerdictYes},
		{[]string{"monty python"}, model.VerdictYes},
		{[]string{"python 3", "2008"}, model.VerdictYes},
		{[]string{"1.1", "temperature"}, model.VerdictYes},
		{[]string{"fossil fuels", "greenhouse"}, model.VerdictYes},
	},
	"deepseek": {
		{[]string{"1643"}, model.VerdictYes},
		{[]string{"berlin"}, model.VerdictNo},
		{[]string{"apple", "gravit"}, model.VerdictUncertain},
		{[]string{"1687", "gravit"}, model.VerdictUncertain},
		{[]string{"royal society", "president"}, model.VerdictYes},
		{[]string{"1727"}, model.VerdictYes},
		{[]string{"1879"}, model.VerdictYes},
		{[]string{"munich"}, model.VerdictNo},
		{[]string{"1922", "nobel"}, model.VerdictUncertain},
		{[]string{"1939", "1945"}, model.VerdictYes},
		{[]string{"guido", "1991"}, model.VerdictYes},
		{[]string{"monty python"}, model.VerdictYes},
		{[]string{"fossil fuels", "greenhouse"}, model.VerdictYes},
	},
}
