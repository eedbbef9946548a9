package credential

import (
	"context"
	"errors"
	"testing"
)

func TestStaticTokenTrimmed(t *testing.T) {
	t.Parallel()

	provider, err := NewStatic("  secret-token  ")
	if err != nil {
		t.Fatalf("NewStatic() error = %v", err)
	}

	token, err := provider.Token(context.Background(), "https://graph.microsoft.com/.default")
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "secret-token" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestStaticEmptyToken(t *testing.T) {
	t.Parallel()

	if _, err := NewStatic("   "); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestFromEnvMissingVariable(t *testing.T) {
	provider, err := NewFromEnv("GRAPH_DOC_TEST_TOKEN_UNSET")
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}

	if _, err := provider.Token(context.Background(), "aud"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
}

func TestFromEnvReadsCurrentValue(t *testing.T) {
	t.Setenv("GRAPH_DOC_TEST_TOKEN", "tok-1")

	provider, err := NewFromEnv("GRAPH_DOC_TEST_TOKEN")
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}

	token, err := provider.Token(context.Background(), "aud")
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("unexpected token: %q", token)
	}

	t.Setenv("GRAPH_DOC_TEST_TOKEN", "tok-2")
	token, err = provider.Token(context.Background(), "aud")
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if token != "tok-2" {
		t.Fatalf("expected rotated token, got %q", token)
	}
}
