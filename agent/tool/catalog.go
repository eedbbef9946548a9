// Package tool holds the capability catalog exposed to chat agents.
package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
	graphx "github.com/waritk/graph-documenter/pkg/graph"
)

// ToolGetResource names the Graph fetch tool. Chat-completions
// function names must match ^[a-zA-Z0-9_-]{1,64}$, so no dots.
const ToolGetResource = "get_resource"

// Executor runs one tool call and returns the output text shown to the
// model. Upstream failures become descriptive output, not errors, so
// the model can react to them.
type Executor func(ctx context.Context, tool string, args map[string]any) (string, error)

// GraphInfos describes the Graph API capabilities.
func GraphInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolGetResource,
			Desc: "Retrieve a resource from the Microsoft Graph API. Use this to look up Microsoft 365 and Entra resources, for example the friendly name behind a GUID.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"path": {
					Type:     schema.String,
					Desc:     "The resource path to retrieve, such as 'users/{user-id}' or 'groups/{group-id}'.",
					Required: true,
				},
			}),
		},
	}
}

// NewGraphExecutor binds the catalog to a Graph client.
func NewGraphExecutor(client *graphx.Client) Executor {
	return func(ctx context.Context, tool string, args map[string]any) (string, error) {
		if tool != ToolGetResource {
			return fmt.Sprintf("tool=%s is not available", tool), nil
		}
		return getResource(ctx, client, args)
	}
}

func getResource(ctx context.Context, client *graphx.Client, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: get_resource requires a path argument", contractx.ErrValidation)
	}

	res, err := client.GetResource(ctx, path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("graph request failed")
		return fmt.Sprintf("get_resource failed before reaching the Graph API: %v", err), nil
	}

	if !res.OK() {
		log.Error().Int("status", res.StatusCode).Str("path", path).Msg("graph api returned an error status")
		return fmt.Sprintf("get_resource's graph api request failed with status code %d and message: %s", res.StatusCode, res.Body), nil
	}

	return res.Body, nil
}
