package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/makerhub/workshop-admin/internal/api"
	"github.com/makerhub/workshop-admin/internal/core/service"
	"github.com/makerhub/workshop-admin/internal/infrastructure/bootstrap"
	"github.com/makerhub/workshop-admin/internal/infrastructure/config"
	mongodb "github.com/makerhub/workshop-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/makerhub/workshop-admin/internal/infrastructure/db/redis"
	"github.com/makerhub/workshop-admin/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	// Refuse to start without a signing key rather than serving 500s.
	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	users := mongodb.NewUserRepository(db)
	roles := mongodb.NewRoleRepository(db)
	logs := mongodb.NewLogRepository(db)
	if err := bootstrap.Run(ctx, bootstrap.Deps{
		Users: users,
		Roles: roles,
		Audit: service.NewAuditService(logs),
		Log:   log,
	}, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	catalogSvc := service.NewCatalogService(mongodb.NewCatalogRepository(db))
	if n, err := catalogSvc.Seed(ctx, cfg.CatalogPath); err != nil {
		log.Warn().Err(err).Str("path", cfg.CatalogPath).Msg("catalog seed skipped")
	} else if n > 0 {
		log.Info().Int("items", n).Msg("consumables catalog seeded")
	}

	e := api.NewRouter(cfg, log, db, rdb)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
