package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/lumenarts/forge/internal/ai"
	"github.com/lumenarts/forge/internal/analytics"
	"github.com/lumenarts/forge/internal/assets"
	"github.com/lumenarts/forge/internal/config"
	"github.com/lumenarts/forge/internal/logging"
	"github.com/lumenarts/forge/internal/server"
	"github.com/lumenarts/forge/pkg/store"
	"github.com/lumenarts/forge/pkg/store/mongostore"
)

func main() {
	configPath := flag.String("config", "", "path to forge.yaml (defaults from FORGE_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Mode)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("open store", zap.Error(err))
	}

	options := []server.Option{}

	if cfg.Analytics.DSN != "" {
		recorder, err := analytics.Open(cfg.Analytics.DSN)
		if err != nil {
			logger.Fatal("open analytics", zap.Error(err))
		}
		options = append(options, server.WithAnalytics(recorder))
	}

	if cfg.Assets.Enabled {
		svc, err := assets.New(ctx, cfg.Assets, logger)
		if err != nil {
			logger.Fatal("init asset storage", zap.Error(err))
		}
		options = append(options, server.WithAssets(svc))
	}

	if cfg.AI.Enabled {
		assistant, err := ai.New(ctx, cfg.AI, logger)
		if err != nil {
			logger.Fatal("init ai", zap.Error(err))
		}
		options = append(options, server.WithAssistant(assistant))
	}

	srv, err := server.New(st, logger, options...)
	if err != nil {
		logger.Fatal("init server", zap.Error(err))
	}

	router := srv.Router(cfg.Server.Mode)
	logger.Info("listening", zap.String("addr", cfg.Server.Addr))
	if err := router.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "mongo":
		mongo, err := mongostore.Connect(ctx, mongostore.Config{
			URI:        cfg.Store.Mongo.URI,
			Database:   cfg.Store.Mongo.Database,
			Collection: cfg.Store.Mongo.Collection,
			Timeout:    cfg.Store.Mongo.Timeout.Std(),
		}, logger)
		if err != nil {
			return nil, err
		}
		// transient outages retry before surfacing to handlers
		return store.NewRetrying(mongo), nil
	default:
		return store.NewMemory(), nil
	}
}
