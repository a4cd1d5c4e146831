// Package main runs the workouts MCP server over stdio, for local assistants.
// The same tools are mounted on the main service at /mcp when mcp_enabled is
// set in the config.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/activeweek/internal"
	"github.com/2beens/activeweek/internal/config"
	"github.com/2beens/activeweek/internal/logging"
	workoutsmcp "github.com/2beens/activeweek/internal/workouts/mcp"
	"github.com/2beens/activeweek/internal/workouts/service"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	// stdout carries the protocol
	log.SetOutput(os.Stderr)
	log.SetLevel(logging.GetLevel(cfg.LogLevel))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	backend, err := internal.OpenKVBackend(ctx, cfg, internal.BackendSecrets{
		RedisPassword:    os.Getenv("ACTIVEWEEK_REDIS_PASS"),
		PostgresPassword: os.Getenv("ACTIVEWEEK_POSTGRES_PASS"),
	}, false)
	if err != nil {
		log.Fatalf("open backend: %s", err)
	}
	defer backend.Close()

	workoutsService, err := service.New(ctx, service.Params{
		Persister:     backend.Persister(cfg),
		DebounceDelay: cfg.PersistDebounce(),
	})
	if err != nil {
		log.Fatalf("workouts service: %s", err)
	}

	server := workoutsmcp.NewServer(workoutsService, "stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
