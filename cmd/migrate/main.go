package main

import (
	"context"

	"animateme/internal/config"
	"animateme/internal/db"
	"animateme/internal/logging"
	"animateme/internal/migrate"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	down := pflag.Bool("down", false, "roll back every migration instead of applying them")
	pflag.Parse()

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if *down {
		if err := migrate.Reset(ctx, pool); err != nil {
			logger.Fatal("reset migrations", zap.Error(err))
		}
		logger.Info("migrations rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool, logger); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}
	logger.Info("migrations applied")
}
