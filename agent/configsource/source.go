// Package configsource resolves the model deployments the service runs
// against, either from a local JSON file or a remote configuration
// endpoint, and caches the result for the process lifetime.
package configsource

import (
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// Config selects and parameterizes the configuration source. Remote
// resolution is attempted only when both the endpoint and the API key
// are present.
type Config struct {
	LocalPath      string `envconfig:"LOCAL_CONFIG_PATH"`
	RemoteEndpoint string `envconfig:"CONFIG_ENDPOINT"`
	RemoteAPIKey   string `envconfig:"CONFIG_API_KEY"`
}

// resolvedModels holds the three deployments after a successful
// Initialize. Sources embed it; it is written once and read-only after.
type resolvedModels struct {
	standard    contractx.ModelConfiguration
	simple      contractx.ModelConfiguration
	embedding   contractx.ModelConfiguration
	initialized bool
}

func (m *resolvedModels) publish(standard, simple, embedding contractx.ModelConfiguration) {
	m.standard = standard
	m.simple = simple
	m.embedding = embedding
	m.initialized = true
}

func (m *resolvedModels) StandardChatModel() (contractx.ModelConfiguration, error) {
	if !m.initialized {
		return contractx.ModelConfiguration{}, contractx.ErrNotInitialized
	}
	return m.standard, nil
}

func (m *resolvedModels) SimpleChatModel() (contractx.ModelConfiguration, error) {
	if !m.initialized {
		return contractx.ModelConfiguration{}, contractx.ErrNotInitialized
	}
	return m.simple, nil
}

func (m *resolvedModels) TextEmbeddingModel() (contractx.ModelConfiguration, error) {
	if !m.initialized {
		return contractx.ModelConfiguration{}, contractx.ErrNotInitialized
	}
	return m.embedding, nil
}

// Models maps the configured deployments onto the tier set. The config
// file defines two chat deployments; the advanced tier reuses the
// standard deployment until a dedicated one is configured.
func (m *resolvedModels) Models() (contractx.ModelSet, error) {
	if !m.initialized {
		return contractx.ModelSet{}, contractx.ErrNotInitialized
	}
	return contractx.ModelSet{
		Advanced: m.standard,
		Standard: m.standard,
		Mini:     m.simple,
	}, nil
}
