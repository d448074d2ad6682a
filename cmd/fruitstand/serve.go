package main

import (
	"context"
	"errors"
	"net"

	"github.com/spf13/cobra"

	"fruitstand/internal/http/handlers"
	"fruitstand/internal/http/server"
	applog "fruitstand/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, store, cleanup, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	deps := handlers.NewDeps(store, cfg)
	app := server.New(cfg, deps)

	errc := make(chan error, 1)
	go func() {
		addr := net.JoinHostPort("", cfg.Port)
		applog.Event("server.listen", nil, map[string]any{"addr": addr})
		errc <- app.Listen(addr)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	applog.Event("server.shutdown", nil, nil)
	if err := app.ShutdownWithTimeout(cfg.DBTimeout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
