package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/va6996/mcpworkshop/bootstrap"
	"github.com/va6996/mcpworkshop/log"
)

func newServeCmd(c *cli) *cobra.Command {
	var transport, addr string
	cmd := &cobra.Command{
		Use:       "serve <server>",
		Short:     "Run one of the MCP tool servers",
		Long:      "Run one of the MCP tool servers: " + strings.Join(bootstrap.ServerNames(), ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: bootstrap.ServerNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := bootstrap.LookupServer(args[0])
			if err != nil {
				return err
			}
			if transport == "" {
				transport = spec.Transport
			}
			if addr == "" {
				addr = spec.Addr
			}
			if transport == bootstrap.TransportHTTP && addr == "" {
				return fmt.Errorf("server %s has no default address, use --addr", spec.Name)
			}

			ctx := cmd.Context()
			srv, cleanup, err := spec.Build(ctx, c.cfg, addr)
			if err != nil {
				return err
			}
			defer func() {
				if err := cleanup(); err != nil {
					log.Warnf(ctx, "Cleanup of %s failed: %v", spec.Name, err)
				}
			}()

			log.Infof(ctx, "Starting %s", spec.Title)
			return bootstrap.Serve(ctx, srv, transport, addr)
		},
	}
	cmd.Flags().StringVar(&transport, "transport", "", "stdio or http (defaults to the server's own transport)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address for http, e.g. :8001")
	return cmd
}
