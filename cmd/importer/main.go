package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"animateme/internal/config"
	"animateme/internal/db"
	"animateme/internal/importer"
	"animateme/internal/logging"
	"animateme/internal/repository/estore"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	filePath := pflag.StringP("file", "f", "", "path to the product CSV")
	pflag.Parse()

	if *filePath == "" {
		pflag.Usage()
		os.Exit(2)
	}

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

	f, err := os.Open(*filePath)
	if err != nil {
		logger.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	imp := importer.NewCSVImporter(f,
		estore.NewProductPostgres(pool, logger),
		estore.NewCategoryPostgres(pool, logger),
		logger,
	)

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal("import failed", zap.Error(err))
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
