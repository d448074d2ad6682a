package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fruitstand/internal/config"
	applog "fruitstand/internal/log"
	"fruitstand/internal/repos"
)

// Global flag values.
var (
	flagEnvDir string
)

var rootCmd = &cobra.Command{
	Use:           "fruitstand",
	Short:         "fruitstand serves a small fruit catalogue over HTTP",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnvDir, "env-dir", ".", "directory holding an optional .env file")
	pf.String("database-url", "", "mongodb://... or sqlite:<dsn> (env DATABASE_URL)")
	pf.String("database-name", "", "database used when the url names none (env DATABASE_NAME)")
	pf.Duration("db-timeout", 0, "per-operation store timeout (env DB_TIMEOUT)")
	pf.String("log-file", "", "also append logs to this file (env LOG_FILE)")

	serveCmd.Flags().String("port", "", "listen port (env PORT)")
	serveCmd.Flags().String("error-mode", "", "lenient or strict (env ERROR_MODE)")
	serveCmd.Flags().String("static-dir", "", "serve static files from this directory instead of the embedded ones (env STATIC_DIR)")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// setup loads config, tees the log file and opens the store. The returned
// cleanup closes both.
func setup(ctx context.Context, cmd *cobra.Command) (config.Config, repos.FruitStore, func(), error) {
	v, err := config.New(flagEnvDir, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logFile, err := applog.TeeFile(v.GetString(config.KeyLogFile))
	if err != nil {
		applog.Event("log.file.open.fail", err, map[string]any{"path": v.GetString(config.KeyLogFile)})
		logFile = io.NopCloser(nil)
	}
	cfg, err := config.Load(v)
	if err != nil {
		logFile.Close()
		return config.Config{}, nil, nil, err
	}

	store, err := repos.Open(ctx, cfg.DatabaseURL, repos.Options{Database: cfg.DatabaseName, Timeout: cfg.DBTimeout})
	if err != nil {
		applog.Event("db.open.fail", err, nil)
		logFile.Close()
		return config.Config{}, nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DBTimeout)
		defer cancel()
		store.Close(ctx)
		logFile.Close()
	}
	return cfg, store, cleanup, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
