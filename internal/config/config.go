package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = 8000
	defaultHost     = "127.0.0.1"
	defaultDBName   = "moneymap.db"
	defaultCacheTTL = 15 * time.Minute
)

// Config holds all runtime settings. Values come from MONEYMAP_* environment
// variables, optionally loaded from a .env file, with flags able to override
// host, port and data directory.
type Config struct {
	Host          string
	Port          int
	DataDir       string
	DBPath        string
	LogDir        string
	LogLevel      string
	LogFormat     string
	PriceCacheTTL time.Duration
}

// Load reads configuration from the environment. A missing .env file is not
// an error; production deployments set variables directly.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	dataDir := getEnv("MONEYMAP_DATA_DIR", "")
	if dataDir == "" {
		dataDir = defaultDataDir()
	}

	cfg := &Config{
		Host:          getEnv("MONEYMAP_HOST", defaultHost),
		Port:          getEnvAsInt("MONEYMAP_PORT", defaultPort),
		DataDir:       dataDir,
		DBPath:        getEnv("MONEYMAP_DB_PATH", ""),
		LogLevel:      getEnv("MONEYMAP_LOG_LEVEL", "info"),
		LogFormat:     getEnv("MONEYMAP_LOG_FORMAT", "text"),
		PriceCacheTTL: getEnvAsDuration("MONEYMAP_PRICE_CACHE_TTL", defaultCacheTTL),
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, defaultDBName)
	}
	cfg.LogDir = filepath.Join(cfg.DataDir, "logs")
	return cfg, nil
}

// SetDataDir overrides the data directory and re-derives the paths under it.
// Explicit MONEYMAP_DB_PATH still wins for the database.
func (c *Config) SetDataDir(dir string) {
	if dir == "" {
		return
	}
	c.DataDir = dir
	if os.Getenv("MONEYMAP_DB_PATH") == "" {
		c.DBPath = filepath.Join(dir, defaultDBName)
	}
	c.LogDir = filepath.Join(dir, "logs")
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func defaultDataDir() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "moneymap")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".moneymap")
	}
	return "."
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer or returns a
// fallback.
func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	log.Printf("invalid integer value for %s (%q), using default %d", key, valueStr, fallback)
	return fallback
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or
// returns a fallback.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	log.Printf("invalid duration value for %s (%q), using default %s", key, valueStr, fallback)
	return fallback
}
