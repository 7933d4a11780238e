package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/duelscore/duelscore/config"
	"github.com/duelscore/duelscore/server"
	"github.com/duelscore/duelscore/server/feed"
	"github.com/duelscore/duelscore/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	var matches server.MatchStore
	if cfg.DBPath != "" {
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			logger.Warn("failed to open match store, continuing without persistence", "path", cfg.DBPath, "error", err)
		} else {
			defer st.Close()
			matches = st
			logger.Info("match store ready", "path", cfg.DBPath)
		}
	}

	hub := feed.NewHub(logger)
	srv := server.New(cfg, matches, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
