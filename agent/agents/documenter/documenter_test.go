package documenter

import (
	"context"
	"errors"
	"strings"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

type fakeToolCallingModel struct {
	responses []*schema.Message
	err       error
	idx       int
	inputs    [][]*schema.Message
}

func (f *fakeToolCallingModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeToolCallingModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeToolCallingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	return f, nil
}

func recordingExecutor(outputs map[string]string, calls *[]string) func(ctx context.Context, tool string, args map[string]any) (string, error) {
	return func(ctx context.Context, tool string, args map[string]any) (string, error) {
		*calls = append(*calls, tool)
		if out, ok := outputs[tool]; ok {
			return out, nil
		}
		return "tool=" + tool + " is not available", nil
	}
}

func graphToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: "get_resource",
			Desc: "Retrieve a resource from the Microsoft Graph API.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"path": {Type: schema.String, Desc: "Resource path", Required: true},
			}),
		},
	}
}

func TestRunDirectAnswer(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "# Documentation\nDone."},
		},
	}

	var calls []string
	doc, err := New(context.Background(), fake, "system prompt", graphToolInfos(),
		recordingExecutor(nil, &calls))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := doc.Run(context.Background(), `{"id":"973d7179"}`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "# Documentation\nDone." {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(calls) != 0 {
		t.Fatalf("no tool should run, got %v", calls)
	}
}

func TestRunToolRoundFeedsResultsIntoFinalize(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:   "call_1",
						Type: "function",
						Function: schema.FunctionCall{
							Name:      "get_resource",
							Arguments: `{"path":"groups/a68ee561"}`,
						},
					},
				},
			},
			{Role: schema.Assistant, Content: "# Documentation with friendly names"},
		},
	}

	var calls []string
	doc, err := New(context.Background(), fake, "system prompt", graphToolInfos(),
		recordingExecutor(map[string]string{
			"get_resource": `{"displayName":"Finance Team"}`,
		}, &calls))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	out, err := doc.Run(context.Background(), `{"excludeGroups":["a68ee561"]}`)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if out != "# Documentation with friendly names" {
		t.Fatalf("unexpected output: %q", out)
	}
	if len(calls) != 1 || calls[0] != "get_resource" {
		t.Fatalf("unexpected tool calls: %v", calls)
	}

	// The finalize pass must see the tool output.
	if len(fake.inputs) != 2 {
		t.Fatalf("expected two model invocations, got %d", len(fake.inputs))
	}
	finalizeInput := fake.inputs[1]
	var sawToolOutput bool
	for _, msg := range finalizeInput {
		if strings.Contains(msg.Content, "Finance Team") {
			sawToolOutput = true
		}
	}
	if !sawToolOutput {
		t.Fatal("finalize input must contain the tool output")
	}
}

func TestRunRejectsUnknownToolCall(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{
				Role: schema.Assistant,
				ToolCalls: []schema.ToolCall{
					{
						ID:   "call_1",
						Type: "function",
						Function: schema.FunctionCall{
							Name:      "shell.exec",
							Arguments: `{"cmd":"rm -rf /"}`,
						},
					},
				},
			},
		},
	}

	var calls []string
	doc, err := New(context.Background(), fake, "system prompt", graphToolInfos(),
		recordingExecutor(nil, &calls))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := doc.Run(context.Background(), "input"); !errors.Is(err, contractx.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("unknown tool must not execute, got %v", calls)
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{}
	var calls []string
	doc, err := New(context.Background(), fake, "system prompt", graphToolInfos(),
		recordingExecutor(nil, &calls))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := doc.Run(context.Background(), " "); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRunModelFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{err: errors.New("boom")}
	var calls []string
	doc, err := New(context.Background(), fake, "system prompt", graphToolInfos(),
		recordingExecutor(nil, &calls))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := doc.Run(context.Background(), "input"); !errors.Is(err, contractx.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}
