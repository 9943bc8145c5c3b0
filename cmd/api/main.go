package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"animateme/internal/catalog"
	"animateme/internal/config"
	"animateme/internal/db"
	"animateme/internal/httpserver"
	"animateme/internal/logging"
	"animateme/internal/migrate"
	estorerepo "animateme/internal/repository/estore"
	inboxrepo "animateme/internal/repository/inbox"
	quoterepo "animateme/internal/repository/quote"
	"animateme/internal/repository/sitesettings"
	tokenrepo "animateme/internal/repository/token"
	userrepo "animateme/internal/repository/user"
	"animateme/internal/service/auth"
	"animateme/internal/service/checkout"
	inboxsvc "animateme/internal/service/inbox"
	"animateme/internal/service/manager"
	quotesvc "animateme/internal/service/quote"
	"animateme/internal/service/usermgmt"
	"animateme/internal/storage"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	migrateFirst := pflag.Bool("migrate", false, "apply database migrations before serving")
	pflag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "listen address")
	pflag.Parse()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	if *migrateFirst {
		if err := migrate.Apply(ctx, dbpool, logger); err != nil {
			logger.Fatal("apply migrations", zap.Error(err))
		}
	}

	files, err := storage.New(cfg.StorageRoot, cfg.FileURLHost, cfg.MaxUploadBytes, logger)
	if err != nil {
		logger.Fatal("init storage", zap.Error(err))
	}

	repos := newRepos(dbpool, logger)
	store := newSettingsStore(repos, cfg, logger)
	mgrDeps := manager.Deps{Uploader: files, Refresher: store, Validator: manager.NewValidator(), Logger: logger}

	users := userrepo.NewPostgres(dbpool, logger)
	authService := auth.New(users, tokenrepo.NewPostgres(dbpool), auth.Options{
		SessionTTL:       cfg.SessionTTL,
		RecoveryTTL:      cfg.RecoveryTTL,
		AllowAdminSignup: cfg.AllowAdminSignup,
		Logger:           logger,
	})
	quoteRequests := quoterepo.NewRequestPostgres(dbpool, logger)
	products := estorerepo.NewProductPostgres(dbpool, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Settings: store,
		Auth:     authService,
		Quote:    quotesvc.New(store, quoteRequests, logger),
		Inbox: inboxsvc.New(
			inboxrepo.NewContactPostgres(dbpool, logger),
			inboxrepo.NewSubscriberPostgres(dbpool, logger),
			quoteRequests,
			logger,
		),
		Checkout:         checkout.New(products, sitesettings.NewPaymentPostgres(dbpool, logger), estorerepo.NewOrderPostgres(dbpool, logger), logger),
		Products:         products,
		EstoreCategories: repos.estoreCategories,
		Catalog:          catalog.New(cfg.CatalogURL, cfg.CatalogTimeout, cfg.CatalogLimit, logger),
		Users:            usermgmt.New(users, logger),
		Files:            files,
		Resources:        adminResources(repos, products, mgrDeps),
		CORSOrigins:      cfg.CORSOrigins,
		MaxUploadBytes:   cfg.MaxUploadBytes,
	})
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.RefreshTimeout)
	if err := store.Refresh(loadCtx); err != nil {
		logger.Warn("initial settings load failed", zap.Error(err))
	}
	cancelLoad()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("server stopped")
	}
}
