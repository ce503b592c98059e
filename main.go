package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/va6996/mcpworkshop/apis/v1"
	"github.com/va6996/mcpworkshop/bootstrap"
	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/log"
)

// initRetry is the pause between attempts to reach the MCP server
const initRetry = 5 * time.Second

func main() {
	// Initialize logging
	log.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf(context.Background(), "Failed to load config: %v", err)
	}
	log.SetLevelFromString(cfg.Log.Level)

	app, err := bootstrap.Setup(ctx, cfg)
	if err != nil {
		log.Fatalf(context.Background(), "Setup failed: %v", err)
	}

	// The API answers 503 on /chat until the agent reaches its MCP server.
	go initializeAgent(ctx, app)

	api := v1.NewServer(app.Agent, app.Agent.Profile.Title)
	if err := bootstrap.ListenAndServe(ctx, ":"+cfg.API.Port, api.Handler()); err != nil {
		log.Fatalf(context.Background(), "Server failed: %v", err)
	}
}

func initializeAgent(ctx context.Context, app *bootstrap.App) {
	for {
		err := app.Agent.Initialize(ctx)
		if err == nil {
			log.Infof(ctx, "Agent %s ready with %d tools", app.Agent.Profile.Name, app.Agent.ToolCount())
			return
		}
		log.Warnf(ctx, "Agent initialization failed, retrying in %s: %v", initRetry, err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(initRetry):
		}
	}
}
