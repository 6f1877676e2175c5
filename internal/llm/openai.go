package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider speaks the OpenAI Chat Completions API. With a custom
// BaseURL it also serves the OpenAI-compatible providers (DeepSeek, Mistral),
// which is why it carries an explicit name.
type OpenAIProvider struct {
	name         string
	client       *openai.Client
	opts         Options
	defaultModel string
}

// NewOpenAIProvider creates a client for api.openai.com
func NewOpenAIProvider(opts Options) (*OpenAIProvider, error) {
	return newOpenAICompat("openai", openai.GPT4oMini, opts)
}

// NewDeepSeekProvider creates a client for DeepSeek's OpenAI-compatible API
func NewDeepSeekProvider(opts Options) (*OpenAIProvider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.deepseek.com/v1"
	}
	return newOpenAICompat("deepseek", "deepseek-chat", opts)
}

// NewMistralProvider creates a client for Mistral's OpenAI-compatible API
func NewMistralProvider(opts Options) (*OpenAIProvider, error) {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.mistral.ai/v1"
	}
	return newOpenAICompat("mistral", "mistral-small-latest", opts)
}

func newOpenAICompat(name, defaultModel string, opts Options) (*OpenAIProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("%s API key is required", name)
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		clientConfig.BaseURL = opts.BaseURL
	}

	return &OpenAIProvider{
		name:         name,
		client:       openai.NewClientWithConfig(clientConfig),
		opts:         opts,
		defaultModel: defaultModel,
	}, nil
}

// Name returns the provider identity
func (p *OpenAIProvider) Name() string {
	return p.name
}

// IsAvailable checks the API with a lightweight models listing
func (p *OpenAIProvider) IsAvailable(ctx context.Context) bool {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s API check failed: %v\n", p.name, err)
		return false
	}
	return true
}

// Complete runs a single-turn chat completion
func (p *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = p.opts.Model
	}
	if model == "" {
		model = p.defaultModel
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.opts.timeout())
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%s API error: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", p.name)
	}

	return &CompletionResponse{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		Model:      model,
		TokensUsed: resp.Usage.TotalTokens,
	}, nil
}
