package model

import "time"

// FallbackPolicy controls how the voting engine reacts when one of the first
// two verifier calls fails.
type FallbackPolicy string

const (
	// FallbackEscalate refills the failed slot with the next untried verifier
	// in priority order.
	FallbackEscalate FallbackPolicy = "escalate"
	// FallbackDegrade lets the surviving response stand as its own agreement.
	FallbackDegrade FallbackPolicy = "degrade"
)

// ProviderConfig holds credentials and model selection for one LLM provider
type ProviderConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	BaseURL string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty" json:"model,omitempty"`
}

// TargetConfig selects the model whose answers are being fact-checked
type TargetConfig struct {
	Provider  string `yaml:"provider" json:"provider"`
	MaxTokens int    `yaml:"max_tokens" json:"max_tokens"`
}

// VerifyConfig tunes the voting engine and its verifier calls
type VerifyConfig struct {
	Timeout        time.Duration  `yaml:"timeout" json:"timeout"`
	Fallback       FallbackPolicy `yaml:"fallback" json:"fallback"`
	MaxConcurrent  int            `yaml:"max_concurrent" json:"max_concurrent"`
	RequestsPerSec float64        `yaml:"requests_per_sec" json:"requests_per_sec"`
	Burst          int            `yaml:"burst" json:"burst"`
}

// ExtractConfig selects the claim extraction mode
type ExtractConfig struct {
	Mode     string `yaml:"mode" json:"mode"` // "rules" or "llm"
	Provider string `yaml:"provider,omitempty" json:"provider,omitempty"`
}

// WikipediaConfig tunes the optional external corroboration step
type WikipediaConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// CacheConfig tunes the verdict cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
	Dir     string        `yaml:"dir" json:"dir"` // Disk tier location; empty disables the disk tier
}

// ServerConfig tunes the HTTP API
type ServerConfig struct {
	Port         int      `yaml:"port" json:"port"`
	AllowOrigins []string `yaml:"allow_origins" json:"allow_origins"`
	StaticDir    string   `yaml:"static_dir,omitempty" json:"static_dir,omitempty"`
}

// ProxyConfig carries optional proxy settings for outbound HTTP
type ProxyConfig struct {
	HTTPProxy  string `yaml:"http_proxy,omitempty" json:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty" json:"https_proxy,omitempty"`
	NoProxy    string `yaml:"no_proxy,omitempty" json:"no_proxy,omitempty"`
}

// Config is the complete Veridict configuration. It is built once from
// flags, environment and the config file, then passed explicitly into the
// components that need it; nothing reads process-wide state.
type Config struct {
	Simulation bool                      `yaml:"simulation" json:"simulation"`
	Priority   []string                  `yaml:"priority" json:"priority"`
	Target     TargetConfig              `yaml:"target" json:"target"`
	Providers  map[string]ProviderConfig `yaml:"providers" json:"providers"`
	Verify     VerifyConfig              `yaml:"verify" json:"verify"`
	Extract    ExtractConfig             `yaml:"extract" json:"extract"`
	Wikipedia  WikipediaConfig           `yaml:"wikipedia" json:"wikipedia"`
	Cache      CacheConfig               `yaml:"cache" json:"cache"`
	Server     ServerConfig              `yaml:"server" json:"server"`
	Proxy      ProxyConfig               `yaml:"proxy" json:"proxy"`
	DataDir    string                    `yaml:"data_dir" json:"data_dir"`
}

// DefaultConfig returns sensible defaults. Simulation mode is on by default
// so the demo runs without any API keys.
func DefaultConfig() *Config {
	return &Config{
		Simulation: true,
		Priority:   []string{"openai", "anthropic", "gemini", "deepseek"},
		Target: TargetConfig{
			Provider:  "mistral",
			MaxTokens: 500,
		},
		Providers: map[string]ProviderConfig{
			"openai":    {Model: "gpt-4o-mini"},
			"anthropic": {Model: "claude-3-5-haiku-20241022"},
			"gemini":    {Model: "gemini-1.5-flash"},
			"deepseek":  {Model: "deepseek-chat", BaseURL: "https://api.deepseek.com/v1"},
			"mistral":   {Model: "mistral-small-latest", BaseURL: "https://api.mistral.ai/v1"},
		},
		Verify: VerifyConfig{
			Timeout:        30 * time.Second,
			Fallback:       FallbackEscalate,
			MaxConcurrent:  4,
			RequestsPerSec: 2,
			Burst:          5,
		},
		Extract: ExtractConfig{
			Mode: "rules",
		},
		Wikipedia: WikipediaConfig{
			Enabled:   false,
			Timeout:   10 * time.Second,
			UserAgent: "Veridict/0.1 (+https://github.com/veridict/veridict)",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Server: ServerConfig{
			Port:         8080,
			AllowOrigins: []string{"http://localhost:5173"},
		},
		DataDir: "data",
	}
}
