package extract

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
)

const extractPromptFormat = `Extract each factual claim in the following paragraph. Return them as a numbered list.
Only include statements that can be verified as true or false facts (dates, names, places, events, etc.).
Exclude opinions, questions, or subjective statements.

Text: %s

Format your response as:
1. [First factual claim]
2. [Second factual claim]
3. [Third factual claim]
etc.`

var numberedLine = regexp.MustCompile(`^\d+[.)\s]+(.+)`)

// LLMExtractor asks a provider to list the factual claims in a text. More
// robust than the rule extractor on unusual phrasing, at the cost of an API
// call per answer.
type LLMExtractor struct {
	provider llm.Provider
}

// NewLLMExtractor creates an extractor backed by the given provider
func NewLLMExtractor(provider llm.Provider) *LLMExtractor {
	return &LLMExtractor{provider: provider}
}

// Extract prompts the provider for a numbered claim list and parses it
func (e *LLMExtractor) Extract(ctx context.Context, text string) ([]model.Claim, error) {
	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      fmt.Sprintf(extractPromptFormat, text),
		MaxTokens:   400,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("claim extraction via %s: %w", e.provider.Name(), err)
	}

	var claims []model.Claim
	for i, line := range parseNumberedList(resp.Text) {
		if len(line) <= minClaimLength {
			continue
		}
		claims = append(claims, model.Claim{
			Text:      line,
			Heuristic: "llm:" + e.provider.Name(),
			Sentence:  i,
		})
	}
	return assignIDs(claims), nil
}

// parseNumberedList extracts the payload of lines like "1. claim",
// "2) claim" or "3 claim". Bracketed placeholders the model echoed back from
// the prompt template are dropped.
func parseNumberedList(text string) []string {
	var items []string
	for _, line := range strings.Split(text, "\n") {
		m := numberedLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		item := strings.TrimSpace(m[1])
		if item == "" || strings.HasPrefix(item, "[") || strings.HasPrefix(item, "(") {
			continue
		}
		items = append(items, item)
	}
	return items
}
