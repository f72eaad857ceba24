package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mazadly/boardgen/cache"
	"github.com/mazadly/boardgen/config"
	"github.com/mazadly/boardgen/render"
	"github.com/mazadly/boardgen/server"
)

var serveCmd = &cobra.Command{
	Use:          "serve",
	Short:        "Serve the announcement form and the board generation API",
	RunE:         runServe,
	SilenceUsage: true,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	renderer, err := render.New(render.Options{
		TemplatePath: cfg.TemplatePath,
		FontsDir:     cfg.FontsDir,
		Strategy:     cfg.Strategy,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store cache.Store = cache.NewMemory(cfg.CacheTTL)
	if cfg.RedisURL != "" {
		redisStore, err := cache.NewRedis(ctx, cfg.RedisURL, cfg.CacheTTL, "boardgen")
		if err != nil {
			return fmt.Errorf("failed to connect result cache: %w", err)
		}
		store = redisStore
		slog.Info("Using Redis result cache")
	}

	srv := server.New(renderer, store, server.Options{
		Addr:           cfg.Addr,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	return srv.Run(ctx)
}
