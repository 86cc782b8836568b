package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/wordcheck/internal/bootstrap"
	"github.com/at-ishikawa/wordcheck/internal/config"
	"github.com/at-ishikawa/wordcheck/internal/dictionary"
	"github.com/at-ishikawa/wordcheck/internal/dictionary/wiktionary"
	"github.com/at-ishikawa/wordcheck/internal/server"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the word check HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	app := bootstrap.New(cfg.Server.ShutdownTimeout())

	client := wiktionary.NewClient(cfg.Wiktionary.ClientConfig())
	app.AddShutdownHook(func(ctx context.Context) error {
		return client.Close()
	})

	service := dictionary.NewService(client, cfg.Pipeline.ServiceConfig())
	app.AddShutdownHook(func(ctx context.Context) error {
		service.Close()
		return nil
	})

	handler := server.NewWordHandler(service)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.CORSMiddleware(h2c.NewHandler(handler.Router(), &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		service.Start(ctx)
		slog.Default().Info("Starting server",
			"addr", srv.Addr,
			"requestInterval", cfg.Pipeline.ServiceConfig().RequestInterval,
			"maxRetries", cfg.Pipeline.MaxRetries)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}
