package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// Config tunes how chat clients are constructed. The deployment itself
// (endpoint, deployment name) comes from the resolved ModelConfiguration.
type Config struct {
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.2"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"60s"`
	APIVersion         string        `envconfig:"API_VERSION" split_words:"true" default:"2024-10-21"`
}

// ChatModel builds an eino chat model bound to the given chat
// deployment. The configuration must be of chat kind.
func ChatModel(ctx context.Context, cfg Config, mc contractx.ModelConfiguration, token string) (model.ToolCallingChatModel, error) {
	if err := mc.ValidateChat(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: bearer token is empty", contractx.ErrClientConstruction)
	}

	maxTokens := cfg.MaxCompletionToken
	temperature := cfg.Temperature
	conf := &openaimodel.ChatModelConfig{
		BaseURL:     strings.TrimRight(mc.Endpoint, "/"),
		APIKey:      strings.TrimSpace(token),
		ByAzure:     true,
		APIVersion:  cfg.APIVersion,
		Model:       mc.DeploymentName,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
		Timeout:     cfg.Timeout,
	}

	m, err := openaimodel.NewChatModel(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat model for deployment %s: %v", contractx.ErrClientConstruction, mc.DeploymentName, err)
	}
	return m, nil
}

// NewClient builds a raw SDK client for the given chat deployment, for
// callers that issue chat completions directly rather than through a
// compiled graph.
func NewClient(mc contractx.ModelConfiguration, token string) (*openaisdk.Client, error) {
	if err := mc.ValidateChat(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: bearer token is empty", contractx.ErrClientConstruction)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(token)),
		option.WithBaseURL(strings.TrimRight(mc.Endpoint, "/")),
	}

	client := openaisdk.NewClient(opts...)
	return &client, nil
}
