// Command workshop runs the MCP workshop tool servers, agents and checks
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/va6996/mcpworkshop/config"
	"github.com/va6996/mcpworkshop/log"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()
	log.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// cli carries what every subcommand shares
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "workshop",
		Short:         "MCP workshop: tool servers, agents and system checks",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log.SetLevelFromString(cfg.Log.Level)
			c.cfg = cfg
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(c),
		newInitDBCmd(c),
		newClientCmd(c),
		newAgentCmd(c),
		newChatCmd(c),
		newCheckCmd(c),
	)
	return root
}
