package configsource

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// RemoteSource will fetch deployments from a configuration service.
// The fetch is not implemented yet; Initialize always fails and the
// registry falls back to the local file.
type RemoteSource struct {
	resolvedModels

	endpoint string
	apiKey   string
}

func NewRemoteSource(endpoint, apiKey string) *RemoteSource {
	return &RemoteSource{
		endpoint: strings.TrimSpace(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
	}
}

func (s *RemoteSource) Initialize(ctx context.Context) error {
	return fmt.Errorf("%w: remote configuration source", contractx.ErrNotImplemented)
}
