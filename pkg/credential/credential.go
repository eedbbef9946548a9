package credential

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

var ErrNoToken = errors.New("no token available")

// TokenProvider hands out bearer tokens for a target audience.
type TokenProvider interface {
	Token(ctx context.Context, audience string) (string, error)
}

// Static always returns the same token regardless of audience.
type Static struct {
	token string
}

func NewStatic(token string) (*Static, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: static token is empty", ErrNoToken)
	}
	return &Static{token: trimmed}, nil
}

func (s *Static) Token(ctx context.Context, audience string) (string, error) {
	return s.token, nil
}

// FromEnv reads the token from an environment variable on every call,
// so a rotated token is picked up without a restart.
type FromEnv struct {
	varName string
}

func NewFromEnv(varName string) (*FromEnv, error) {
	trimmed := strings.TrimSpace(varName)
	if trimmed == "" {
		return nil, errors.New("token variable name is required")
	}
	return &FromEnv{varName: trimmed}, nil
}

func (f *FromEnv) Token(ctx context.Context, audience string) (string, error) {
	token := strings.TrimSpace(os.Getenv(f.varName))
	if token == "" {
		return "", fmt.Errorf("%w: environment variable %s is not set", ErrNoToken, f.varName)
	}
	return token, nil
}
