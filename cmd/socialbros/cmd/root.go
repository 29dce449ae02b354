// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package cmd holds the cobra command tree of the socialbros CLI.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/taibuivan/socialbros/internal/platform/config"
	"github.com/taibuivan/socialbros/internal/platform/constants"
	pgstore "github.com/taibuivan/socialbros/internal/platform/postgres"
	redisstore "github.com/taibuivan/socialbros/internal/platform/redis"
	"github.com/taibuivan/socialbros/internal/platform/sec"
	"github.com/taibuivan/socialbros/internal/users/account"
	"github.com/taibuivan/socialbros/internal/users/session"
)

var rootCmd = &cobra.Command{
	Use:   "socialbros",
	Short: "Operator tooling for the SocialBros API",
	Long: `Administrative commands that share the API server's environment configuration.
Run schema migrations, sweep or revoke sessions, and create accounts.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
// An interrupt cancels the command's context.
func Execute() {
	context, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(context)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

// # Environment

// environment carries the connections a command needs. Close releases them.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
	pool   *pgxpool.Pool
	redis  *goredis.Client
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})).
		With(slog.String("app", constants.AppName+"-cli"))
}

// openEnvironment loads configuration and connects to postgres, and to redis
// when sessions live there.
func openEnvironment(context context.Context) (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := newLogger()

	pool, err := pgstore.NewPool(context, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, fmt.Errorf("cli_postgres_failed: %w", err)
	}

	env := &environment{cfg: cfg, logger: logger, pool: pool}

	if cfg.SessionStore == config.SessionStoreRedis {
		client, err := redisstore.NewClient(context, cfg.RedisURL, logger)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("cli_redis_failed: %w", err)
		}
		env.redis = client
	}

	return env, nil
}

func (env *environment) Close() {
	if env.redis != nil {
		_ = env.redis.Close()
	}
	env.pool.Close()
}

func (env *environment) accounts() (*account.Service, error) {
	passwords, err := sec.NewPasswordVerifier(env.cfg.PasswordMode)
	if err != nil {
		return nil, err
	}
	return account.NewService(account.NewPostgresRepository(env.pool), passwords, env.logger), nil
}

func (env *environment) sessions() (*session.Manager, error) {
	var repository session.Repository = session.NewPostgresRepository(env.pool)

	if env.redis != nil {
		users, err := env.accounts()
		if err != nil {
			return nil, err
		}
		repository = session.NewRedisRepository(env.redis, users)
	}

	return session.NewManager(repository, session.Config{TTL: env.cfg.SessionTTL()}, env.logger), nil
}
