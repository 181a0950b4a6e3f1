package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Discord   DiscordConfig
	ITAD      ITADConfig
	Catalog   CatalogConfig
	Redis     RedisConfig
	Cleanup   CleanupConfig
	KeepAlive KeepAliveConfig
	Logging   LoggingConfig
	Bot       BotConfig
}

type DiscordConfig struct {
	Token string
}

type ITADConfig struct {
	APIKey  string
	Country string
}

type CatalogConfig struct {
	SourceURL       string
	RefreshInterval time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CleanupConfig struct {
	Enabled  bool
	Interval time.Duration
}

type KeepAliveConfig struct {
	Addr string
}

type LoggingConfig struct {
	Level string
	File  string
}

type BotConfig struct {
	Prefix string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Discord: DiscordConfig{
			Token: getEnv("DISCORD_BOT_TOKEN", ""),
		},
		ITAD: ITADConfig{
			APIKey:  getEnv("ITAD_API_KEY", ""),
			Country: getEnv("COUNTRY", "US"),
		},
		Catalog: CatalogConfig{
			SourceURL:       getEnv("GAMEPASS_CSV_URL", ""),
			RefreshInterval: time.Duration(getEnvInt("CATALOG_REFRESH_HOURS", 24)) * time.Hour,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Cleanup: CleanupConfig{
			Enabled:  getEnvBool("CLEANUP_ENABLED", true),
			Interval: time.Duration(getEnvInt("CLEANUP_INTERVAL_SECONDS", 60)) * time.Second,
		},
		KeepAlive: KeepAliveConfig{
			Addr: getEnv("KEEPALIVE_ADDR", ":10000"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Bot: BotConfig{
			Prefix: getEnv("BOT_PREFIX", "!"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if c.ITAD.APIKey == "" {
		return fmt.Errorf("ITAD_API_KEY is required")
	}
	if c.Catalog.SourceURL == "" {
		return fmt.Errorf("GAMEPASS_CSV_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
