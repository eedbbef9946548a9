// Package safety gates content before it reaches a chat model. A
// failing check surfaces as ErrContentRejected from the agent, never as
// the model's text.
package safety

import (
	"context"
	"fmt"
	"strings"

	contractx "github.com/waritk/graph-documenter/agent/contract"
)

// Checker reports nil for content that may proceed.
type Checker interface {
	Check(ctx context.Context, text string) error
}

// PassAll admits everything. Used when the safety gate is disabled.
type PassAll struct{}

func (PassAll) Check(ctx context.Context, text string) error {
	return nil
}

// Remote will call a hosted content-safety service. The call is not
// implemented yet, so an agent configured with it rejects every run
// rather than silently skipping the gate.
type Remote struct {
	endpoint string
}

func NewRemote(endpoint string) *Remote {
	return &Remote{endpoint: strings.TrimSpace(endpoint)}
}

func (r *Remote) Check(ctx context.Context, text string) error {
	return fmt.Errorf("%w: remote content safety check", contractx.ErrNotImplemented)
}
