package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salaries/internal/charts"
	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Analyze the salaries file once and serve the report over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service := newService(cfg)
	rep, err := service.Run(ctx, cfg.Input.Path)
	if err != nil {
		return err
	}

	slog.Info("views registered", "count", core.ViewCount(), "groups", len(core.ViewGroups()))
	if rep.HypothesisErr != nil {
		slog.Warn("serving report without hypothesis", "error", rep.HypothesisErr)
	}

	server := web.NewServer(service, web.Options{
		Config:    cfg.Server,
		Renderer:  charts.NewRenderer(cfg.Output.ChartWidth, cfg.Output.ChartHeight),
		Delimiter: cfg.Input.DelimiterRune(),
	})

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start(cfg.Server.Addr()) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		return err
	}
	slog.Info("server stopped")
	return <-errCh
}
