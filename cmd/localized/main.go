// Command localized serves culture-resolved content over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localize"
	"github.com/dmitrymomot/localize/internal/server"
	"github.com/dmitrymomot/localize/middlewares"
	"github.com/dmitrymomot/localize/pkg/config"
	"github.com/dmitrymomot/localize/pkg/health"
	"github.com/dmitrymomot/localize/pkg/logger"
	redisx "github.com/dmitrymomot/localize/pkg/redis"
)

type appConfig struct {
	Localize localize.Config
	Server   server.Config
	Log      logger.Config
	Redis    redisx.Config
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("localized stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(cfg.Log,
		logger.StringExtractor("request_id", middlewares.GetRequestID),
		logger.CultureExtractor(),
	)

	runOpts := []server.RunOption{
		server.WithRunLogger(log),
		server.ShutdownHook(logger.FlushSentry()),
	}
	lzOpts := []localize.Option{localize.WithLogger(log)}
	srvOpts := []server.Option{server.WithLogger(log)}

	if cfg.Localize.CacheBackend == localize.CacheRedis {
		client, err := redisx.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		lzOpts = append(lzOpts, localize.WithRedis(client, cfg.Redis.KeyPrefix))
		srvOpts = append(srvOpts, server.WithCheck("redis", health.CheckFunc(redisx.Healthcheck(client))))
		runOpts = append(runOpts, server.ShutdownHook(closeRedis(client)))
	}

	l, err := localize.New(cfg.Localize, lzOpts...)
	if err != nil {
		return err
	}

	log.Info("localizer configured",
		slog.String("default_culture", l.Option().Default().DisplayName()),
		slog.String("content_backend", cfg.Localize.ContentBackend),
		slog.String("cache_backend", cfg.Localize.CacheBackend),
	)

	return server.Run(ctx, cfg.Server, server.New(cfg.Server, l, srvOpts...).Handler(), runOpts...)
}

func closeRedis(client redis.UniversalClient) func(context.Context) error {
	return func(context.Context) error {
		return client.Close()
	}
}
