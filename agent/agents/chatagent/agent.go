// Package chatagent is a generic agent bound to one chat deployment:
// it renders an instruction, opens the chat client lazily, and issues
// single request/response exchanges.
package chatagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	openaisdk "github.com/openai/openai-go"
	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
	instructionx "github.com/waritk/graph-documenter/agent/instruction"
	llmx "github.com/waritk/graph-documenter/agent/llm"
	safetyx "github.com/waritk/graph-documenter/agent/safety"
	credentialx "github.com/waritk/graph-documenter/pkg/credential"
)

// Option customizes an Agent.
type Option func(*Agent)

// WithSafetyChecker enables the content gate. The check runs on the
// user input before the model call; a rejected input surfaces as
// ErrContentRejected and the model is never invoked. Checker failures
// other than ErrNotImplemented are classified as rejections.
func WithSafetyChecker(checker safetyx.Checker) Option {
	return func(a *Agent) {
		a.checker = checker
	}
}

type Agent struct {
	name        string
	instruction instructionx.Instruction
	modelConf   contractx.ModelConfiguration
	tokens      credentialx.TokenProvider
	checker     safetyx.Checker

	mu     sync.Mutex
	client *openaisdk.Client
}

func New(
	name string,
	ins instructionx.Instruction,
	modelConf contractx.ModelConfiguration,
	tokens credentialx.TokenProvider,
	opts ...Option,
) (*Agent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: agent name is required", contractx.ErrValidation)
	}
	if err := modelConf.ValidateChat(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token provider is required", contractx.ErrValidation)
	}

	a := &Agent{
		name:        name,
		instruction: ins,
		modelConf:   modelConf,
		tokens:      tokens,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Run performs one exchange with the chat deployment. Upstream
// failures are wrapped in ErrUpstream and propagated without retry.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", fmt.Errorf("%w: user input is required", contractx.ErrValidation)
	}

	if a.checker != nil {
		if err := a.checker.Check(ctx, userInput); err != nil {
			if errors.Is(err, contractx.ErrContentRejected) || errors.Is(err, contractx.ErrNotImplemented) {
				return "", err
			}
			return "", fmt.Errorf("%w: %v", contractx.ErrContentRejected, err)
		}
	}

	client, err := a.clientHandle(ctx)
	if err != nil {
		return "", err
	}

	completion, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
		Model: openaisdk.ChatModel(a.modelConf.DeploymentName),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(a.instruction.Render()),
			openaisdk.UserMessage(userInput),
		},
	})
	if err != nil {
		var apierr *openaisdk.Error
		if errors.As(err, &apierr) {
			return "", fmt.Errorf("%w: status=%d message=%s", contractx.ErrUpstream, apierr.StatusCode, apierr.Message)
		}
		return "", fmt.Errorf("%w: %v", contractx.ErrUpstream, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", contractx.ErrUpstream)
	}

	return completion.Choices[0].Message.Content, nil
}

// clientHandle builds the chat client on first use. A successful handle
// is reused for the lifetime of the agent; a failed construction is not
// cached, so the next Run retries.
func (a *Agent) clientHandle(ctx context.Context) (*openaisdk.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.client != nil {
		return a.client, nil
	}

	audience := strings.TrimRight(a.modelConf.Endpoint, "/") + "/.default"
	token, err := a.tokens.Token(ctx, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire token for %s: %v", contractx.ErrClientConstruction, a.name, err)
	}

	client, err := llmx.NewClient(a.modelConf, token)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("agent", a.name).Str("deployment", a.modelConf.DeploymentName).Msg("chat client constructed")
	a.client = client
	return client, nil
}
