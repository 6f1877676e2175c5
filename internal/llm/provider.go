// Package llm holds the thin chat-completion clients behind the target model
// and the verifiers. Providers are interchangeable: the rest of the system
// only sees Name/Complete/IsAvailable.
package llm

import (
	"context"
	"time"
)

// Provider is one LLM backend
type Provider interface {
	// Name returns the provider identity ("openai", "anthropic", ...)
	Name() string

	// Complete runs a single-turn chat completion
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is the input for a single-turn completion
type CompletionRequest struct {
	// System is the optional system prompt
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the provider's configured model when non-empty
	Model string

	// MaxTokens limits the response length (provider default when 0)
	MaxTokens int

	// Temperature controls sampling (0 means the provider default)
	Temperature float32
}

// CompletionResponse is the provider's answer
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Options carries the settings shared by all real providers
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// HTTPProxy and HTTPSProxy route hand-rolled HTTP clients; empty
	// values fall back to the standard proxy environment variables.
	HTTPProxy  string
	HTTPSProxy string
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return 30 * time.Second
	}
	return o.Timeout
}
