package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/veridict/veridict/internal/model"
)

// NewProvider creates the client for one configured provider. In simulation
// mode every identity resolves to a stub so the whole pipeline runs offline.
func NewProvider(ctx context.Context, name string, cfg *model.Config) (Provider, error) {
	name = strings.ToLower(name)

	if cfg.Simulation {
		return NewStubProvider(name), nil
	}

	pc := cfg.Providers[name]
	opts := Options{
		APIKey:     pc.APIKey,
		BaseURL:    pc.BaseURL,
		Model:      pc.Model,
		Timeout:    cfg.Verify.Timeout,
		HTTPProxy:  cfg.Proxy.HTTPProxy,
		HTTPSProxy: cfg.Proxy.HTTPSProxy,
	}

	switch name {
	case "openai":
		return NewOpenAIProvider(opts)
	case "anthropic", "claude":
		return NewAnthropicProvider(opts)
	case "gemini":
		return NewGeminiProvider(ctx, opts)
	case "deepseek":
		return NewDeepSeekProvider(opts)
	case "mistral":
		return NewMistralProvider(opts)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, gemini, deepseek, mistral)", name)
	}
}
