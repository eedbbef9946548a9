// Package graph is a thin client for the Microsoft Graph REST API.
package graph

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	credentialx "github.com/waritk/graph-documenter/pkg/credential"
)

const (
	defaultEndpoint      = "https://graph.microsoft.com"
	defaultVersion       = "v1.0"
	maxResponseSizeBytes = 4 << 20
)

var ErrEmptyPath = errors.New("resource path is empty")

type Config struct {
	Endpoint string        `split_words:"true" default:"https://graph.microsoft.com"`
	Version  string        `split_words:"true" default:"v1.0"`
	Timeout  time.Duration `split_words:"true" default:"30s"`
}

// Option customizes a Client.
type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// Resource is one Graph API response. A non-2xx status is data, not an
// error: the caller decides how to surface it.
type Resource struct {
	StatusCode int
	Body       string
}

func (r Resource) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Client fetches resources from the Graph API with a bearer token. The
// token is acquired once at construction, matching the lifetime of the
// agent that owns the client.
type Client struct {
	endpoint   string
	version    string
	token      string
	httpClient *http.Client
}

func NewClient(ctx context.Context, cfg Config, provider credentialx.TokenProvider, opts ...Option) (*Client, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid graph endpoint: %w", err)
	}

	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = defaultVersion
	}

	if provider == nil {
		return nil, errors.New("token provider is required")
	}
	token, err := provider.Token(ctx, endpoint+"/.default")
	if err != nil {
		return nil, fmt.Errorf("acquire graph token: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client := &Client{
		endpoint: endpoint,
		version:  version,
		token:    token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// GetResource fetches a resource path such as "users/{id}" or
// "groups/{id}". Transport failures return an error; any HTTP status
// comes back in the Resource.
func (c *Client) GetResource(ctx context.Context, path string) (Resource, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return Resource{}, ErrEmptyPath
	}

	reqURL := fmt.Sprintf("%s/%s/%s", c.endpoint, c.version, trimmed)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Resource{}, fmt.Errorf("build graph request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Resource{}, fmt.Errorf("execute graph request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return Resource{}, fmt.Errorf("read graph response: %w", err)
	}

	return Resource{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}, nil
}
