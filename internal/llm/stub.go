package llm

import (
	"context"
	"fmt"
	"strings"
)

// StubProvider simulates a target model for demo and test runs. Its canned
// answers contain planted factual errors (Newton born in Berlin, Einstein's
// 1922 Nobel "for quantum mechanics") so the voting engine has something to
// catch without any API keys.
type StubProvider struct {
	name string
}

// NewStubProvider creates a stub posing as the given provider identity
func NewStubProvider(name string) *StubProvider {
	if name == "" {
		name = "stub"
	}
	return &StubProvider{name: name}
}

var stubAnswers = []struct {
	keyword string
	answer  string
}{
	{
		"isaac newton",
		"Isaac Newton was born in 1643. He discovered the law of universal gravitation " +
			"in 1687 when an apple fell on his head. He was born in Berlin, Germany. Newton " +
			"invented calculus and wrote the Principia Mathematica. He served as president " +
			"of the Royal Society until his death in 1727.",
	},
	{
		"albert einstein",
		"Albert Einstein was born in 1879 in Munich, Germany. He developed the theory of " +
			"relativity in 1905. Einstein won the Nobel Prize in Physics in 1922 for his work " +
			"on quantum mechanics. He moved to Princeton University in 1933 and died in 1955.",
	},
	{
		"world war 2",
		"World War 2 lasted from 1939 to 1945. It was fought between the Axis powers and " +
			"the Allied forces. The war ended when Germany surrendered in May 1945, followed " +
			"by Japan's surrender in September 1945 after the atomic bombs were dropped on " +
			"Hiroshima and Nagasaki.",
	},
	{
		"python programming",
		"Python was created by Guido van Rossum in 1991. It is an interpreted, high-level " +
			"programming language. Python 3.0 was released in 2008 and is not backward " +
			"compatible with Python 2.x. The language is named after the British comedy " +
			"group Monty Python.",
	},
	{
		"climate change",
		"Climate change refers to long-term shifts in global temperatures and weather " +
			"patterns. The Earth's average temperature has increased by approximately 1.1°C " +
			"since the late 19th century. The primary cause is human activities, particularly " +
			"the burning of fossil fuels, which releases greenhouse gases into the atmosphere.",
	},
}

// Name returns the simulated provider identity
func (p *StubProvider) Name() string {
	return p.name
}

// IsAvailable always succeeds
func (p *StubProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Complete returns the canned answer matching the prompt, or a generic
// deflection when no topic matches.
func (p *StubProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prompt := strings.ToLower(req.Prompt)
	text := ""
	for _, entry := range stubAnswers {
		if strings.Contains(prompt, entry.keyword) {
			text = entry.answer
			break
		}
	}
	if text == "" {
		text = fmt.Sprintf("I don't have specific information about %q in my training data. "+
			"However, this topic is generally related to various fields of study and has been "+
			"discussed in academic literature.", req.Prompt)
	}

	return &CompletionResponse{
		Text:       text,
		Model:      p.name + "-simulated",
		TokensUsed: len(strings.Fields(text)),
	}, nil
}
