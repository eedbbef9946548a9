package configsource

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// Builder constructs and initializes a Source. The default builder
// tries the remote source when configured and falls back to the local
// file on any remote failure.
type Builder func(ctx context.Context) (contractx.Source, error)

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

func WithBuilder(build Builder) RegistryOption {
	return func(r *Registry) {
		if build != nil {
			r.build = build
		}
	}
}

// Registry hands out the process-wide configuration source. The source
// is built and initialized at most once across all concurrent callers;
// a failed attempt is surfaced to the caller that triggered it and
// retried on the next Get, never cached.
type Registry struct {
	build Builder

	mu   sync.Mutex
	slot atomic.Pointer[contractx.Source]
}

func NewRegistry(cfg Config, opts ...RegistryOption) *Registry {
	r := &Registry{
		build: defaultBuilder(cfg),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Get returns the initialized singleton source. Callers that observe a
// populated slot skip the lock entirely.
func (r *Registry) Get(ctx context.Context) (contractx.Source, error) {
	if src := r.slot.Load(); src != nil {
		return *src, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if src := r.slot.Load(); src != nil {
		return *src, nil
	}

	src, err := r.build(ctx)
	if err != nil {
		return nil, err
	}

	r.slot.Store(&src)
	return src, nil
}

func defaultBuilder(cfg Config) Builder {
	return func(ctx context.Context) (contractx.Source, error) {
		endpoint := strings.TrimSpace(cfg.RemoteEndpoint)
		apiKey := strings.TrimSpace(cfg.RemoteAPIKey)

		if endpoint != "" && apiKey != "" {
			remote := NewRemoteSource(endpoint, apiKey)
			err := remote.Initialize(ctx)
			if err == nil {
				log.Info().Str("endpoint", endpoint).Msg("using remote configuration source")
				return remote, nil
			}
			log.Warn().Err(err).Msg("remote configuration failed, falling back to local file")
		}

		local := NewLocalSource(cfg.LocalPath)
		if err := local.Initialize(ctx); err != nil {
			return nil, err
		}
		return local, nil
	}
}
