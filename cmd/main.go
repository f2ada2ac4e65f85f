package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"churnscore/internal/application"
	"churnscore/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	slog.SetDefault(application.NewLogger(slog.LevelInfo))

	err := application.Run(ctx)

	cancel()

	if err != nil {
		slog.Error("application failed", logx.Error(err))
		os.Exit(1)
	}
}
