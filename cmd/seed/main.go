package main

import (
	"context"
	"os"

	"animateme/internal/config"
	"animateme/internal/db"
	"animateme/internal/logging"
	"animateme/internal/seed"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	fixturePath := pflag.StringP("fixture", "f", "", "YAML fixture to load instead of the built-in one")
	pflag.Parse()

	cfg := config.FromEnv()
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		logger.Fatal("load fixture", zap.Error(err))
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, fixture, logger); err != nil {
		logger.Fatal("seed apply", zap.Error(err))
	}
	logger.Info("seed applied")
}

func loadFixture(path string) (seed.Fixture, error) {
	if path == "" {
		return seed.Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return seed.Fixture{}, err
	}
	return seed.Parse(data)
}
