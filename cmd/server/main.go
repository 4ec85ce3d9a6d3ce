package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	idmemory "github.com/huddlehq/huddle/internal/adapter/driven/identity/memory"
	idredis "github.com/huddlehq/huddle/internal/adapter/driven/identity/redis"
	repomemory "github.com/huddlehq/huddle/internal/adapter/driven/persistence/memory"
	reporedis "github.com/huddlehq/huddle/internal/adapter/driven/persistence/redis"
	handler "github.com/huddlehq/huddle/internal/adapter/driving/http"
	"github.com/huddlehq/huddle/internal/config"
	"github.com/huddlehq/huddle/internal/core/port"
	"github.com/huddlehq/huddle/internal/core/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		l = l.Level(level)
	}
	zlog.Logger = l

	var (
		repo     port.MessageRepository
		identity port.IdentityStore
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			cancel()
			l.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to reach redis")
		}
		cancel()
		repo = reporedis.NewMessageRepository(client)
		identity = idredis.NewIdentityStore(client)
		l.Info().Str("addr", cfg.RedisAddr).Msg("using redis record stores")
	} else {
		repo = repomemory.NewMessageRepository()
		identity = idmemory.NewIdentityStore()
		l.Info().Msg("using in-memory record stores")
	}

	registry := service.NewRegistry()
	presence := service.NewPresence(registry)
	relay := service.NewRelay(registry, repo)
	rooms := service.NewRooms(registry, presence, identity)

	h := handler.NewHandler(rooms, relay, registry, repo, identity)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	registry.Close()
	l.Info().Msg("server exited")
}
