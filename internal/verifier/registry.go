package verifier

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/veridict/veridict/internal/cache"
	"github.com/veridict/veridict/internal/llm"
	"github.com/veridict/veridict/internal/model"
	"github.com/veridict/veridict/internal/worker"
)

// Registry holds the verifier for every identity in the priority list,
// sharing one verdict cache and one rate limiter. Stub or live verifiers are
// chosen once at construction from configuration.
type Registry struct {
	verifiers map[string]Verifier
}

// NewRegistry builds a verifier per identity in cfg.Priority
func NewRegistry(ctx context.Context, cfg *model.Config) (*Registry, error) {
	var vc *cache.VerdictCache
	if cfg.Cache.Enabled {
		diskDir := ""
		if cfg.Cache.Dir != "" {
			diskDir = cfg.Cache.Dir
		} else if cfg.DataDir != "" {
			diskDir = filepath.Join(cfg.DataDir, "verdicts")
		}
		vc = cache.NewVerdictCache(cache.NewLayeredStore(cfg.Cache.TTL, diskDir, cfg.Cache.TTL), cfg.Cache.TTL)
	}

	limiter := worker.NewLimiter(cfg.Verify.RequestsPerSec, cfg.Verify.Burst)

	verifiers := make(map[string]Verifier, len(cfg.Priority))
	for _, name := range cfg.Priority {
		name = strings.ToLower(name)

		if cfg.Simulation {
			verifiers[name] = NewStubVerifier(name)
			continue
		}

		provider, err := llm.NewProvider(ctx, name, cfg)
		if err != nil {
			return nil, fmt.Errorf("build verifier %s: %w", name, err)
		}
		verifiers[name] = NewLLMVerifier(provider, vc, limiter)
	}

	return &Registry{verifiers: verifiers}, nil
}

// Get returns the verifier for an identity (case-insensitive)
func (r *Registry) Get(name string) (Verifier, bool) {
	v, ok := r.verifiers[strings.ToLower(name)]
	return v, ok
}

// Resolve maps an ordered identity list to verifiers, failing on unknowns
func (r *Registry) Resolve(names []string) ([]Verifier, error) {
	out := make([]Verifier, 0, len(names))
	for _, name := range names {
		v, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("no verifier configured for %q", name)
		}
		out = append(out, v)
	}
	return out, nil
}
