package safety

import (
	"context"
	"errors"
	"testing"

	contractx "github.com/waritk/graph-documenter/agent/contract"
)

func TestPassAllAdmitsEverything(t *testing.T) {
	t.Parallel()

	if err := (PassAll{}).Check(context.Background(), "any input at all"); err != nil {
		t.Fatalf("PassAll must admit everything, got %v", err)
	}
}

func TestRemoteCheckNotImplemented(t *testing.T) {
	t.Parallel()

	checker := NewRemote("https://safety.example.com")
	if err := checker.Check(context.Background(), "input"); !errors.Is(err, contractx.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
