// Command sessionkit-demo wires the full stack against a live backend:
// rehydrate, optional login, then logout, printing every state transition.
//
// Configuration comes from the environment:
//
//	SESSIONKIT_BASE_URL    API root (required)
//	SESSIONKIT_CACHE_PATH  bbolt cache file (default sessionkit.db)
//	SESSIONKIT_REDIS_ADDR  use a Redis cache instead of bbolt
//	SESSIONKIT_EMAIL       credentials for the login step; skipped when
//	SESSIONKIT_PASSWORD    either is empty
package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/mekdim/sessionkit"
	"github.com/mekdim/sessionkit/cache"
	"github.com/mekdim/sessionkit/remote"
	"github.com/mekdim/sessionkit/validate"
)

type config struct {
	BaseURL   string        `env:"SESSIONKIT_BASE_URL, required"`
	CachePath string        `env:"SESSIONKIT_CACHE_PATH, default=sessionkit.db"`
	RedisAddr string        `env:"SESSIONKIT_REDIS_ADDR"`
	Email     string        `env:"SESSIONKIT_EMAIL"`
	Password  string        `env:"SESSIONKIT_PASSWORD"`
	Timeout   time.Duration `env:"SESSIONKIT_TIMEOUT, default=10s"`
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ctx := context.Background()
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	store, closeStore, err := buildStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("cache store")
	}
	defer closeStore()

	svc, err := remote.NewClient(remote.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("remote client")
	}

	machine, err := sessionkit.New().
		WithAuthService(svc).
		WithCache(store).
		WithLogger(logger).
		WithAuditSink(sessionkit.NewJSONWriterSink(os.Stdout)).
		Build()
	if err != nil {
		logger.Fatal().Err(err).Msg("build machine")
	}
	defer machine.Close()

	sub := machine.Subscribe(func(s sessionkit.Snapshot) {
		ev := logger.Info().
			Bool("authenticated", s.Authenticated).
			Bool("loading", s.Loading)
		if s.User != nil {
			ev = ev.Str("user", s.User.Email)
		}
		if s.Err != "" {
			ev = ev.Str("error", s.Err)
		}
		ev.Msg("session transition")
	})
	defer machine.Unsubscribe(sub)

	machine.Start(ctx)

	if cfg.Email != "" && cfg.Password != "" {
		creds, violations := validate.Login(validate.Form{
			"email":    cfg.Email,
			"password": cfg.Password,
		})
		if !violations.Empty() {
			logger.Fatal().Err(violations).Msg("credentials rejected locally")
		}

		if _, err := machine.Login(ctx, sessionkit.Credentials{
			Email:    creds.Email,
			Password: creds.Password,
		}); err != nil {
			for field, msgs := range sessionkit.FieldMessages(err) {
				logger.Warn().Str("field", field).Strs("messages", msgs).Msg("field error")
			}
			logger.Fatal().Err(err).Msg("login failed")
		}

		machine.Logout(ctx)
	}

	for name, count := range machine.MetricsSnapshot() {
		if count > 0 {
			logger.Info().Str("metric", name).Uint64("count", count).Msg("counter")
		}
	}
}

func buildStore(cfg config) (cache.Store, func(), error) {
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisStore(client, ""), func() { _ = client.Close() }, nil
	}
	store, err := cache.OpenBoltStore(cfg.CachePath)
	if err != nil {
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}
