// Package agents assembles the service's agents from the resolved
// configuration. Each agent is built lazily on first request and cached
// for the process lifetime; a failed build is retried on the next
// request.
package agents

import (
	"context"
	"errors"
	"sync"

	"github.com/waritk/graph-documenter/agent/agents/chatagent"
	"github.com/waritk/graph-documenter/agent/agents/documenter"
	configsourcex "github.com/waritk/graph-documenter/agent/configsource"
	contractx "github.com/waritk/graph-documenter/agent/contract"
	instructionx "github.com/waritk/graph-documenter/agent/instruction"
	llmx "github.com/waritk/graph-documenter/agent/llm"
	promptx "github.com/waritk/graph-documenter/agent/prompt"
	safetyx "github.com/waritk/graph-documenter/agent/safety"
	credentialx "github.com/waritk/graph-documenter/pkg/credential"
	graphx "github.com/waritk/graph-documenter/pkg/graph"
)

const assistantAgentName = "AssistantAgent"

type Builder struct {
	llmCfg   llmx.Config
	graphCfg graphx.Config
	registry *configsourcex.Registry
	tokens   credentialx.TokenProvider

	mu         sync.Mutex
	documenter contractx.Agent
	assistant  contractx.Agent
}

func NewBuilder(
	llmCfg llmx.Config,
	graphCfg graphx.Config,
	registry *configsourcex.Registry,
	tokens credentialx.TokenProvider,
) (*Builder, error) {
	if registry == nil {
		return nil, errors.New("configuration registry is required")
	}
	if tokens == nil {
		return nil, errors.New("token provider is required")
	}
	return &Builder{
		llmCfg:   llmCfg,
		graphCfg: graphCfg,
		registry: registry,
		tokens:   tokens,
	}, nil
}

// Documenter returns the Graph documenter agent. The documenter runs
// with the safety gate off, as the input is operator-supplied API JSON.
func (b *Builder) Documenter(ctx context.Context) (contractx.Agent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.documenter != nil {
		return b.documenter, nil
	}

	src, err := b.registry.Get(ctx)
	if err != nil {
		return nil, err
	}

	graphClient, err := graphx.NewClient(ctx, b.graphCfg, b.tokens)
	if err != nil {
		return nil, err
	}

	doc, err := documenter.NewFromSource(ctx, b.llmCfg, src, b.tokens, graphClient)
	if err != nil {
		return nil, err
	}

	b.documenter = doc
	return doc, nil
}

// Assistant returns the generic chat agent behind /run-agent, bound to
// the standard-tier deployment with the safety gate enabled.
func (b *Builder) Assistant(ctx context.Context) (contractx.Agent, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.assistant != nil {
		return b.assistant, nil
	}

	src, err := b.registry.Get(ctx)
	if err != nil {
		return nil, err
	}
	models, err := src.Models()
	if err != nil {
		return nil, err
	}
	modelConf, err := models.Lookup(contractx.ModelTierStandard)
	if err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	agent, err := chatagent.New(
		assistantAgentName,
		instructionx.New(prompts.AssistantSystem),
		modelConf,
		b.tokens,
		chatagent.WithSafetyChecker(safetyx.PassAll{}),
	)
	if err != nil {
		return nil, err
	}

	b.assistant = agent
	return agent, nil
}
