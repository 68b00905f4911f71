package cli

import (
	"github.com/spf13/cobra"

	"github.com/liblens/liblens/internal/server"
	"github.com/liblens/liblens/pkg/assistant"
)

// serveCommand creates the "serve" command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long:  `Serve the library explorer REST API. The server shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			env := c.env(cfg)
			index, err := c.pypiClient(ctx, cfg)
			if err != nil {
				return err
			}

			srv := server.New(server.Options{
				Env:          env,
				Introspector: c.introspector(cfg),
				PyPI:         index,
				Assistant:    assistant.New(index),
				Logger:       logger,
				CORSOrigins:  cfg.CORSOrigins,
			})

			logger.Info("scanning distribution roots", "roots", len(cfg.ResolveRoots()))
			return srv.Run(ctx, cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
