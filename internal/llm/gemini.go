package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider wraps the Google Generative AI SDK
type GeminiProvider struct {
	client *genai.Client
	opts   Options
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, opts Options) (*GeminiProvider, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiProvider{client: client, opts: opts}, nil
}

// Name returns the provider identity
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// IsAvailable checks the API with a minimal generation
func (p *GeminiProvider) IsAvailable(ctx context.Context) bool {
	m := p.client.GenerativeModel(p.model(""))
	m.SetMaxOutputTokens(10)
	if _, err := m.GenerateContent(ctx, genai.Text("Hi")); err != nil {
		fmt.Fprintf(os.Stderr, "gemini API check failed: %v\n", err)
		return false
	}
	return true
}

// Complete runs a single-turn generation
func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	modelName := p.model(req.Model)
	m := p.client.GenerativeModel(modelName)

	if req.System != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(req.MaxTokens))
	}
	if req.Temperature > 0 {
		m.SetTemperature(req.Temperature)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.opts.timeout())
	defer cancel()

	resp, err := m.GenerateContent(ctxWithTimeout, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &CompletionResponse{
		Text:       strings.TrimSpace(sb.String()),
		Model:      modelName,
		TokensUsed: tokens,
	}, nil
}

// Close releases the underlying gRPC connection
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) model(override string) string {
	if override != "" {
		return override
	}
	if p.opts.Model != "" {
		return p.opts.Model
	}
	return "gemini-1.5-flash"
}
