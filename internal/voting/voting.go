// Package voting implements the prioritized multi-verifier protocol: two
// judges first, a third only on disagreement, 2-of-3 majority, Uncertain
// when all three differ.
package voting

import (
	"fmt"
	"strings"
)

// ConfigError marks an analysis request that cannot run at all, e.g. fewer
// than two usable verifiers after target exclusion. It is surfaced to the
// caller immediately and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "voting configuration: " + e.Reason
}

// SelectVerifiers removes the target model from the priority list, keeping
// the relative order of the rest. Identity comparison is case-insensitive.
// A model must never verify its own output: self-verification is not
// independent evidence.
func SelectVerifiers(priority []string, target string) ([]string, error) {
	targetLower := strings.ToLower(strings.TrimSpace(target))

	selected := make([]string, 0, len(priority))
	for _, name := range priority {
		if strings.ToLower(strings.TrimSpace(name)) == targetLower {
			continue
		}
		selected = append(selected, name)
	}

	if len(selected) < 2 {
		return nil, &ConfigError{
			Reason: fmt.Sprintf("need at least 2 verifiers, have %d after excluding %q", len(selected), target),
		}
	}
	return selected, nil
}
