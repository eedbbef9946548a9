package tool

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	contractx "github.com/waritk/graph-documenter/agent/contract"
	credentialx "github.com/waritk/graph-documenter/pkg/credential"
	graphx "github.com/waritk/graph-documenter/pkg/graph"
)

func newGraphExecutor(t *testing.T, handler http.Handler) Executor {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := credentialx.NewStatic("test-token")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}
	client, err := graphx.NewClient(context.Background(), graphx.Config{Endpoint: srv.URL}, provider)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return NewGraphExecutor(client)
}

func TestGraphInfos(t *testing.T) {
	t.Parallel()

	infos := GraphInfos()
	if len(infos) != 1 {
		t.Fatalf("expected 1 tool info, got %d", len(infos))
	}
	if infos[0].Name != ToolGetResource {
		t.Fatalf("unexpected tool name: %s", infos[0].Name)
	}
}

func TestGraphInfosNamesAcceptedByChatCompletions(t *testing.T) {
	t.Parallel()

	// The chat-completions API rejects function names outside this
	// pattern with a 400 before the model runs.
	valid := regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	for _, info := range GraphInfos() {
		if !valid.MatchString(info.Name) {
			t.Fatalf("tool name %q would be rejected by the chat-completions API", info.Name)
		}
	}
}

func TestGraphExecutorSuccess(t *testing.T) {
	t.Parallel()

	executor := newGraphExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"displayName":"Finance Team"}`))
	}))

	out, err := executor(context.Background(), ToolGetResource, map[string]any{"path": "groups/g-1"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out != `{"displayName":"Finance Team"}` {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestGraphExecutorNotFoundBecomesToolOutput(t *testing.T) {
	t.Parallel()

	executor := newGraphExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"Request_ResourceNotFound"}}`))
	}))

	out, err := executor(context.Background(), ToolGetResource, map[string]any{"path": "users/missing"})
	if err != nil {
		t.Fatalf("a failed upstream call must not raise, got %v", err)
	}
	if !strings.Contains(out, "404") {
		t.Fatalf("tool output must contain the status code, got: %s", out)
	}
	if !strings.Contains(out, "Request_ResourceNotFound") {
		t.Fatalf("tool output must contain the upstream body, got: %s", out)
	}
}

func TestGraphExecutorMissingPath(t *testing.T) {
	t.Parallel()

	executor := newGraphExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent without a path")
	}))

	if _, err := executor(context.Background(), ToolGetResource, map[string]any{}); !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestGraphExecutorUnknownTool(t *testing.T) {
	t.Parallel()

	executor := newGraphExecutor(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent for an unknown tool")
	}))

	out, err := executor(context.Background(), "math.evaluate", map[string]any{"expression": "1+1"})
	if err != nil {
		t.Fatalf("executor error = %v", err)
	}
	if out == "" {
		t.Fatal("expected a descriptive unavailable message")
	}
}
