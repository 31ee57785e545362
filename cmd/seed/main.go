package main

import (
	"context"
	"log/slog"
	"os"

	"clubportal/internal/cache"
	"clubportal/internal/config"
	"clubportal/internal/csvstore"
	"clubportal/internal/logger"
	"clubportal/internal/repository"
	"clubportal/internal/seed"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(os.Stdout, cfg.Log)

	ctx := csvstore.WithActor(context.Background(), "seed")

	store := csvstore.New(cfg.DataDir, csvstore.WithLogger(log))
	if err := store.EnsureTables(ctx); err != nil {
		log.Error("prepare data directory", slog.String("dir", cfg.DataDir), slog.Any("err", err))
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()

	res, err := seed.Run(ctx, repository.NewClubRepository(store), repository.NewUserRepository(store, cacheClient))
	if err != nil {
		log.Error("seed failed", slog.Any("err", err))
		os.Exit(1)
	}
	log.Info("seed completed",
		slog.Int("clubs", res.Clubs),
		slog.Int("users", res.Users),
		slog.Int("skipped", res.Skipped))
}
