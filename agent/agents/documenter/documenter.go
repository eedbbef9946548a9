// Package documenter generates markdown documentation for Microsoft
// Graph API responses, resolving GUIDs through the Graph fetch tool.
package documenter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
	instructionx "github.com/waritk/graph-documenter/agent/instruction"
	llmx "github.com/waritk/graph-documenter/agent/llm"
	promptx "github.com/waritk/graph-documenter/agent/prompt"
	toolx "github.com/waritk/graph-documenter/agent/tool"
	credentialx "github.com/waritk/graph-documenter/pkg/credential"
	graphx "github.com/waritk/graph-documenter/pkg/graph"

	einomodel "github.com/cloudwego/eino/components/model"
)

type toolResult struct {
	Tool   string `json:"tool"`
	Output string `json:"output"`
}

type finalizePayload struct {
	UserInput   string       `json:"user_input"`
	ToolResults []toolResult `json:"tool_results"`
}

// Documenter runs a single tool round: the model may request Graph
// lookups, their output is fed back, and a finalize pass produces the
// documentation text.
type Documenter struct {
	systemPrompt string
	toolRunner   compose.Runnable[map[string]any, *schema.Message]
	answerRunner compose.Runnable[map[string]any, *schema.Message]
	executor     toolx.Executor
	allowedTools map[string]struct{}
}

func New(
	ctx context.Context,
	chatModel einomodel.ToolCallingChatModel,
	systemPrompt string,
	infos []*schema.ToolInfo,
	executor toolx.Executor,
) (*Documenter, error) {
	if executor == nil {
		return nil, fmt.Errorf("%w: tool executor is required", contractx.ErrValidation)
	}

	toolModel, err := chatModel.WithTools(infos)
	if err != nil {
		return nil, fmt.Errorf("%w: bind documenter tools: %v", contractx.ErrClientConstruction, err)
	}

	toolRunner, err := compileDocumenterGraph(ctx, toolModel, "documenter.tool_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrClientConstruction, err)
	}
	answerRunner, err := compileDocumenterGraph(ctx, chatModel, "documenter.answer_graph")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contractx.ErrClientConstruction, err)
	}

	allowed := make(map[string]struct{}, len(infos))
	for _, info := range infos {
		if info != nil && strings.TrimSpace(info.Name) != "" {
			allowed[info.Name] = struct{}{}
		}
	}

	return &Documenter{
		systemPrompt: systemPrompt,
		toolRunner:   toolRunner,
		answerRunner: answerRunner,
		executor:     executor,
		allowedTools: allowed,
	}, nil
}

// NewFromSource wires a Documenter against the resolved standard chat
// deployment, the embedded few-shot prompts, and the Graph tool.
func NewFromSource(
	ctx context.Context,
	llmCfg llmx.Config,
	src contractx.Source,
	tokens credentialx.TokenProvider,
	graphClient *graphx.Client,
) (*Documenter, error) {
	modelConf, err := src.StandardChatModel()
	if err != nil {
		return nil, err
	}

	audience := strings.TrimRight(modelConf.Endpoint, "/") + "/.default"
	token, err := tokens.Token(ctx, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: acquire token for documenter: %v", contractx.ErrClientConstruction, err)
	}

	chatModel, err := llmx.ChatModel(ctx, llmCfg, modelConf, token)
	if err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	ins := instructionx.NewFewShot(prompts.DocumenterSystem, []instructionx.Example{
		{Input: prompts.DocumenterExampleInput, Output: prompts.DocumenterExampleOutput},
	})

	return New(ctx, chatModel, ins.Render(), toolx.GraphInfos(), toolx.NewGraphExecutor(graphClient))
}

func (d *Documenter) Run(ctx context.Context, userInput string) (string, error) {
	if strings.TrimSpace(userInput) == "" {
		return "", fmt.Errorf("%w: user input is required", contractx.ErrValidation)
	}

	msg, err := d.toolRunner.Invoke(ctx, map[string]any{
		"system": d.systemPrompt,
		"input":  userInput,
	})
	if err != nil {
		return "", fmt.Errorf("%w: documenter invoke: %v", contractx.ErrUpstream, err)
	}
	if msg == nil {
		return "", fmt.Errorf("%w: empty documenter response", contractx.ErrUpstream)
	}

	if len(msg.ToolCalls) == 0 {
		content := strings.TrimSpace(msg.Content)
		if content == "" {
			return "", fmt.Errorf("%w: documenter returned neither text nor tool calls", contractx.ErrUpstream)
		}
		return content, nil
	}

	results, err := d.executeToolCalls(ctx, msg.ToolCalls)
	if err != nil {
		return "", err
	}

	return d.finalize(ctx, userInput, results)
}

func (d *Documenter) executeToolCalls(ctx context.Context, calls []schema.ToolCall) ([]toolResult, error) {
	results := make([]toolResult, 0, len(calls))
	for _, call := range calls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contractx.ErrUpstream)
		}
		if _, ok := d.allowedTools[name]; !ok {
			return nil, fmt.Errorf("%w: tool=%s is not in the documenter catalog", contractx.ErrUpstream, name)
		}

		args := map[string]any{}
		if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid arguments for tool=%s: %v", contractx.ErrUpstream, name, err)
			}
		}

		output, err := d.executor(ctx, name, args)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("tool", name).Msg("tool call executed")
		results = append(results, toolResult{Tool: name, Output: output})
	}
	return results, nil
}

func (d *Documenter) finalize(ctx context.Context, userInput string, results []toolResult) (string, error) {
	payload, err := json.Marshal(finalizePayload{
		UserInput:   userInput,
		ToolResults: results,
	})
	if err != nil {
		return "", fmt.Errorf("%w: marshal finalize payload: %v", contractx.ErrValidation, err)
	}

	msg, err := d.answerRunner.Invoke(ctx, map[string]any{
		"system": d.systemPrompt,
		"input":  string(payload),
	})
	if err != nil {
		return "", fmt.Errorf("%w: documenter finalize invoke: %v", contractx.ErrUpstream, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("%w: documenter finalize returned no text", contractx.ErrUpstream)
	}

	return strings.TrimSpace(msg.Content), nil
}
