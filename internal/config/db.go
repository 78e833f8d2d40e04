package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"contacts_api/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const applicationName = "contacts-api"

// Retry policy for the initial connection
var (
	maxRetries    = 5
	retryInterval = 5 * time.Second
)

// DBConfig holds database connection parameters
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// LoadDBConfig loads database configuration from environment variables
func LoadDBConfig() (DBConfig, error) {
	cfg := DBConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Name == "" {
		return DBConfig{}, errors.New("database environment variables not set (DB_HOST, DB_PORT, DB_USER, DB_NAME)")
	}
	return cfg, nil
}

// DSN renders the keyword/value connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// ConnectDB establishes a connection pool to PostgreSQL, retrying until the
// database answers a ping.
func ConnectDB(ctx context.Context, cfg DBConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	for i := 0; i < maxRetries; i++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			err = pool.Ping(ctx)
			if err == nil {
				logger.Info("connected to PostgreSQL", slog.String("host", cfg.Host), slog.String("database", cfg.Name))
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("failed to connect to database",
			slog.Int("attempt", i+1),
			slog.Int("maxAttempts", maxRetries),
			slog.String("error", err.Error()),
			slog.Duration("retryIn", retryInterval),
		)
		if i == maxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// Migrate applies the embedded goose migrations through the pool
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	logger.Info("migrations applied")
	return nil
}
