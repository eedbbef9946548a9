package contract

import (
	"fmt"
	"strings"
)

// ModelKind distinguishes chat deployments from embedding deployments.
type ModelKind string

const (
	ModelKindChat      ModelKind = "chat"
	ModelKindEmbedding ModelKind = "embedding"
)

func ParseModelKind(raw string) (ModelKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModelKindChat):
		return ModelKindChat, nil
	case string(ModelKindEmbedding):
		return ModelKindEmbedding, nil
	default:
		return "", fmt.Errorf("%w: unknown model kind %q", ErrConfigShape, raw)
	}
}

// ModelTier is a quality/cost class of chat deployment.
type ModelTier string

const (
	ModelTierAdvanced ModelTier = "advanced"
	ModelTierMini     ModelTier = "mini"
	ModelTierStandard ModelTier = "standard"
)

func ParseModelTier(raw string) (ModelTier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(ModelTierAdvanced):
		return ModelTierAdvanced, nil
	case string(ModelTierMini):
		return ModelTierMini, nil
	case string(ModelTierStandard):
		return ModelTierStandard, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownModelTier, raw)
	}
}

// ModelConfiguration describes one named deployment at an endpoint.
// Values are immutable once constructed and always passed by value.
type ModelConfiguration struct {
	Name           string    `json:"name"`
	Kind           ModelKind `json:"type"`
	DeploymentName string    `json:"deployment_name"`
	Endpoint       string    `json:"endpoint"`
}

func (m ModelConfiguration) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: model name is required", ErrConfigShape)
	}
	if m.Kind != ModelKindChat && m.Kind != ModelKindEmbedding {
		return fmt.Errorf("%w: unknown model kind %q for model %s", ErrConfigShape, m.Kind, m.Name)
	}
	if strings.TrimSpace(m.DeploymentName) == "" {
		return fmt.Errorf("%w: deployment name is required for model %s", ErrConfigShape, m.Name)
	}
	if strings.TrimSpace(m.Endpoint) == "" {
		return fmt.Errorf("%w: endpoint is required for model %s", ErrConfigShape, m.Name)
	}
	return nil
}

// ValidateChat rejects configurations that may not back a chat client.
// An embedding deployment is a contract violation here, never a silent
// fallback.
func (m ModelConfiguration) ValidateChat() error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Kind != ModelKindChat {
		return fmt.Errorf("%w: model %s has kind %q, chat required", ErrClientConstruction, m.Name, m.Kind)
	}
	return nil
}

// ModelSet is the per-tier chat deployment selection for the service.
type ModelSet struct {
	Advanced ModelConfiguration
	Mini     ModelConfiguration
	Standard ModelConfiguration
}

// Lookup is total over the three defined tiers. Anything else is a
// programming error and fails fast rather than defaulting.
func (s ModelSet) Lookup(tier ModelTier) (ModelConfiguration, error) {
	switch tier {
	case ModelTierAdvanced:
		return s.Advanced, nil
	case ModelTierMini:
		return s.Mini, nil
	case ModelTierStandard:
		return s.Standard, nil
	default:
		return ModelConfiguration{}, fmt.Errorf("%w: %q", ErrUnknownModelTier, tier)
	}
}
