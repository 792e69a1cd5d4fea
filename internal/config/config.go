// Package config resolves settings from the environment, after loading an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

type Config struct {
	Rows      int
	Cols      int
	TimeLimit int // seconds
	Store     string
	Rankings  string
	LogFile   string
	LogLevel  string
	Seed      int64 // 0 means time-based

	RankdAddr      string
	RankdJWTSecret string
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config using getenv for lookups.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}

	dir := DefaultDir()
	cfg := Config{
		Store:          strings.ToLower(get("TENBOX_STORE", StoreJSON)),
		LogLevel:       get("LOG_LEVEL", "info"),
		LogFile:        get("TENBOX_LOG_FILE", filepath.Join(dir, "tenbox.log")),
		RankdAddr:      get("RANKD_ADDR", ":5180"),
		RankdJWTSecret: getenv("RANKD_JWT_SECRET"),
	}

	var err error
	if cfg.Rows, err = strconv.Atoi(get("TENBOX_ROWS", "10")); err != nil {
		return cfg, fmt.Errorf("TENBOX_ROWS: %w", err)
	}
	if cfg.Cols, err = strconv.Atoi(get("TENBOX_COLS", "17")); err != nil {
		return cfg, fmt.Errorf("TENBOX_COLS: %w", err)
	}
	if cfg.TimeLimit, err = ParseDuration(get("TENBOX_TIME_LIMIT", "120")); err != nil {
		return cfg, fmt.Errorf("TENBOX_TIME_LIMIT: %w", err)
	}
	if cfg.Seed, err = strconv.ParseInt(get("TENBOX_SEED", "0"), 10, 64); err != nil {
		return cfg, fmt.Errorf("TENBOX_SEED: %w", err)
	}

	def := "rankings.json"
	if cfg.Store == StoreSQLite {
		def = "rankings.db"
	}
	cfg.Rankings = get("TENBOX_RANKINGS", filepath.Join(dir, def))

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("board must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.TimeLimit < 1 {
		return fmt.Errorf("time limit must be at least 1 second, got %d", c.TimeLimit)
	}
	if c.Store != StoreJSON && c.Store != StoreSQLite {
		return fmt.Errorf("unknown store %q (use %s or %s)", c.Store, StoreJSON, StoreSQLite)
	}
	return nil
}

// DefaultDir is where rankings and logs live unless overridden.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "tenbox")
}

// ParseDuration accepts plain seconds ("90") or minutes and seconds ("1:30").
func ParseDuration(s string) (int, error) {
	if val, err := strconv.Atoi(s); err == nil {
		return val, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) == 2 {
		min, err1 := strconv.Atoi(parts[0])
		sec, err2 := strconv.Atoi(parts[1])
		if err1 == nil && err2 == nil {
			return min*60 + sec, nil
		}
	}
	return 0, fmt.Errorf("invalid time format: %s (use 'MM:SS' or seconds)", s)
}
