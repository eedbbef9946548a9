// Package server exposes the HTTP surface of the service.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	contractx "github.com/waritk/graph-documenter/agent/contract"
)

type Config struct {
	Addr            string        `split_words:"true" default:":8080"`
	ReadTimeout     time.Duration `split_words:"true" default:"30s"`
	WriteTimeout    time.Duration `split_words:"true" default:"120s"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

// AgentProvider hands out the agents behind the POST endpoints.
// Construction is deferred to the provider so that a request with
// invalid input never touches a remote client.
type AgentProvider interface {
	Documenter(ctx context.Context) (contractx.Agent, error)
	Assistant(ctx context.Context) (contractx.Agent, error)
}

type Server struct {
	cfg    Config
	agents AgentProvider
	http   *http.Server
}

func New(cfg Config, agents AgentProvider) (*Server, error) {
	if agents == nil {
		return nil, errors.New("agent provider is required")
	}

	s := &Server{
		cfg:    cfg,
		agents: agents,
	}
	s.http = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Handler builds the route table. Exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /generate-documentation", s.handleGenerateDocumentation)
	mux.HandleFunc("POST /run-agent", s.handleRunAgent)
	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Addr).Msg("http server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"service": "api",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "api",
	})
}

func (s *Server) handleGenerateDocumentation(w http.ResponseWriter, r *http.Request) {
	input := userInput(r)
	if input == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_input is required."})
		return
	}

	agent, err := s.agents.Documenter(r.Context())
	if err != nil {
		writeAgentError(w, "build documenter agent", err)
		return
	}

	out, err := agent.Run(r.Context(), input)
	if err != nil {
		writeAgentError(w, "run documenter agent", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": out})
}

func (s *Server) handleRunAgent(w http.ResponseWriter, r *http.Request) {
	input := userInput(r)
	if input == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_input is required."})
		return
	}

	agent, err := s.agents.Assistant(r.Context())
	if err != nil {
		writeAgentError(w, "build assistant agent", err)
		return
	}

	out, err := agent.Run(r.Context(), input)
	if err != nil {
		writeAgentError(w, "run assistant agent", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": out})
}

type requestBody struct {
	UserInput string `json:"user_input"`
}

// userInput accepts the input as a JSON body field or, failing that, a
// query parameter.
func userInput(r *http.Request) string {
	if r.Body != nil {
		var body requestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			if trimmed := strings.TrimSpace(body.UserInput); trimmed != "" {
				return trimmed
			}
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("user_input"))
}

func writeAgentError(w http.ResponseWriter, op string, err error) {
	log.Error().Err(err).Str("op", op).Msg("request failed")

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, contractx.ErrValidation), errors.Is(err, contractx.ErrContentRejected):
		status = http.StatusBadRequest
	case errors.Is(err, contractx.ErrUpstream):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("write response failed")
	}
}
