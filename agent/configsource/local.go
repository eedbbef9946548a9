package configsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// DefaultLocalPath is used when LOCAL_CONFIG_PATH is unset.
const DefaultLocalPath = "config/default_config.json"

// LocalSource reads model deployments from a JSON file. Initialization
// is atomic: either all three deployments are published or the source
// stays uninitialized and the error surfaces to the caller.
type LocalSource struct {
	resolvedModels

	path string
}

func NewLocalSource(path string) *LocalSource {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = DefaultLocalPath
	}
	return &LocalSource{path: trimmed}
}

type fileModel struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	DeploymentName string `json:"deployment_name"`
	Endpoint       string `json:"endpoint"`
}

type fileConfig struct {
	ModelDeployments *struct {
		StandardChatModel  *fileModel `json:"standard_chat_model"`
		SimpleChatModel    *fileModel `json:"simple_chat_model"`
		TextEmbeddingModel *fileModel `json:"text_embedding_model"`
	} `json:"model_deployments"`
}

func (s *LocalSource) Initialize(ctx context.Context) error {
	log.Info().Str("path", s.path).Msg("loading configuration from local file")

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", contractx.ErrConfigNotFound, s.path)
		}
		return fmt.Errorf("read configuration file %s: %w", s.path, err)
	}

	var parsed fileConfig
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", contractx.ErrConfigParse, err)
	}

	if parsed.ModelDeployments == nil {
		return fmt.Errorf("%w: missing key model_deployments", contractx.ErrConfigShape)
	}

	standard, err := resolveDeployment(parsed.ModelDeployments.StandardChatModel, "standard_chat_model", contractx.ModelKindChat)
	if err != nil {
		return err
	}
	simple, err := resolveDeployment(parsed.ModelDeployments.SimpleChatModel, "simple_chat_model", contractx.ModelKindChat)
	if err != nil {
		return err
	}
	embedding, err := resolveDeployment(parsed.ModelDeployments.TextEmbeddingModel, "text_embedding_model", contractx.ModelKindEmbedding)
	if err != nil {
		return err
	}

	s.publish(standard, simple, embedding)
	log.Info().Msg("configuration loaded")
	return nil
}

func resolveDeployment(m *fileModel, key string, want contractx.ModelKind) (contractx.ModelConfiguration, error) {
	if m == nil {
		return contractx.ModelConfiguration{}, fmt.Errorf("%w: missing key %s", contractx.ErrConfigShape, key)
	}

	kind, err := contractx.ParseModelKind(m.Type)
	if err != nil {
		return contractx.ModelConfiguration{}, err
	}
	if kind != want {
		return contractx.ModelConfiguration{}, fmt.Errorf("%w: %s must have type %q, got %q", contractx.ErrConfigShape, key, want, kind)
	}

	conf := contractx.ModelConfiguration{
		Name:           strings.TrimSpace(m.Name),
		Kind:           kind,
		DeploymentName: strings.TrimSpace(m.DeploymentName),
		Endpoint:       strings.TrimSpace(m.Endpoint),
	}
	if err := conf.Validate(); err != nil {
		return contractx.ModelConfiguration{}, err
	}
	return conf, nil
}
