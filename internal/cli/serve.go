package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quantforge/qweave/pkg/server"
	"github.com/quantforge/qweave/pkg/synth"
)

// serveCommand creates the serve command exposing synthesis over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the synthesis HTTP API",
		Long: `Run the synthesis HTTP API.

The serve command starts an HTTP server with a POST /v1/optimize endpoint
accepting a circuit and synthesis options as JSON, plus a GET /healthz
probe. The cache backend is taken from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	store, err := c.newCache(noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := synth.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(addr, runner, c.Logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	c.Logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
