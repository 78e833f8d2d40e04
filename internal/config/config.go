package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"contacts_api/internal/utils"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort = "8080"
	defaultAccessTTL  = 30 * time.Minute
)

// Config is the process configuration. It is read once at startup and not
// modified afterwards.
type Config struct {
	DB         DBConfig
	ServerPort string
	GinMode    string
	LogLevel   slog.Level

	JWTSecret []byte
	AccessTTL time.Duration
}

// Load reads .env (if present) and then the environment.
func Load(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	dbCfg, err := LoadDBConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load DB config: %w", err)
	}

	cfg := &Config{
		DB:         dbCfg,
		ServerPort: getEnv("SERVER_PORT", defaultServerPort),
		GinMode:    os.Getenv("GIN_MODE"),
		LogLevel:   parseLevel(logger, os.Getenv("LOG_LEVEL")),
		AccessTTL:  defaultAccessTTL,
	}

	if v := os.Getenv("JWT_ACCESS_TTL_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			logger.Warn("invalid JWT_ACCESS_TTL_MINUTES, using default",
				slog.String("value", v), slog.Duration("default", defaultAccessTTL))
		} else {
			cfg.AccessTTL = time.Duration(minutes) * time.Minute
		}
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		secret, err = utils.GenerateSecret()
		if err != nil {
			return nil, err
		}
		logger.Warn("JWT_SECRET_KEY not set, using a random secret; tokens will not survive a restart")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(logger *slog.Logger, s string) slog.Level {
	if s == "" {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		logger.Warn("invalid LOG_LEVEL, using info", slog.String("value", s))
		return slog.LevelInfo
	}
	return level
}
