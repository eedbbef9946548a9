package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	agentsx "github.com/waritk/graph-documenter/agent/agents"
	configsourcex "github.com/waritk/graph-documenter/agent/configsource"
	llmx "github.com/waritk/graph-documenter/agent/llm"
	configx "github.com/waritk/graph-documenter/pkg/config"
	credentialx "github.com/waritk/graph-documenter/pkg/credential"
	graphx "github.com/waritk/graph-documenter/pkg/graph"
	_ "github.com/waritk/graph-documenter/pkg/logger/autoload"
	serverx "github.com/waritk/graph-documenter/server"
)

const tokenEnvVar = "API_ACCESS_TOKEN"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sourceCfg := configx.MustNew[configsourcex.Config]("")
	llmCfg := configx.MustNew[llmx.Config]("LLM")
	graphCfg := configx.MustNew[graphx.Config]("GRAPH")
	serverCfg := configx.MustNew[serverx.Config]("SERVER")

	tokens, err := credentialx.NewFromEnv(tokenEnvVar)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token provider")
	}
	registry := configsourcex.NewRegistry(*sourceCfg)

	builder, err := agentsx.NewBuilder(*llmCfg, *graphCfg, registry, tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize agent builder")
	}

	srv, err := serverx.New(*serverCfg, builder)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize http server")
	}

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("http server exited")
	}
	log.Info().Msg("shutdown complete")
}
