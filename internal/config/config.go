package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything shelf needs to start.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	PageSize       int
	SettleDelay    time.Duration
	LogFile        string
	LogLevel       string
	MetricsAddr    string
	Mirror         MirrorConfig
}

// MirrorConfig selects where the local copy of the catalog lives.
type MirrorConfig struct {
	Backend   string
	Path      string
	RedisAddr string
	Key       string
}

// Mirror backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

const (
	defaultConfigPath     = "~/.config/shelf/config.toml"
	defaultAPIBaseURL     = "https://api.escuelajs.co/api/v1"
	defaultRequestTimeout = 10 * time.Second
	defaultPageSize       = 10
	defaultSettleDelay    = 1500 * time.Millisecond
	defaultLogFile        = "~/.local/share/shelf/shelf.log"
	defaultLogLevel       = "info"
	defaultMirrorPath     = "~/.local/share/shelf/platzi_products_data.json"
	defaultRedisAddr      = "127.0.0.1:6379"
	defaultMirrorKey      = "platzi_products_data"
)

// raw mirrors the TOML file; SHELF_* environment variables override it.
type raw struct {
	APIBaseURL     string    `toml:"api_base_url" env:"API_BASE_URL"`
	RequestTimeout string    `toml:"request_timeout" env:"REQUEST_TIMEOUT"`
	PageSize       int       `toml:"page_size" env:"PAGE_SIZE"`
	SettleDelay    string    `toml:"settle_delay" env:"SETTLE_DELAY"`
	LogFile        string    `toml:"log_file" env:"LOG_FILE"`
	LogLevel       string    `toml:"log_level" env:"LOG_LEVEL"`
	MetricsAddr    string    `toml:"metrics_addr" env:"METRICS_ADDR"`
	Mirror         rawMirror `toml:"mirror" envPrefix:"MIRROR_"`
}

type rawMirror struct {
	Backend   string `toml:"backend" env:"BACKEND"`
	Path      string `toml:"path" env:"PATH"`
	RedisAddr string `toml:"redis_addr" env:"REDIS_ADDR"`
	Key       string `toml:"key" env:"KEY"`
}

// Load reads the config file at path (the default location when empty),
// applies SHELF_* environment overrides and fills defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var r raw
	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		if err := toml.Unmarshal(bytes, &r); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.ParseWithOptions(&r, env.Options{Prefix: "SHELF_"}); err != nil {
		return Config{}, fmt.Errorf("parse config env: %w", err)
	}

	return r.resolve()
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func (r raw) resolve() (Config, error) {
	cfg := Config{
		APIBaseURL: orDefault(r.APIBaseURL, defaultAPIBaseURL),
		PageSize:   r.PageSize,
		LogLevel:   orDefault(r.LogLevel, defaultLogLevel),
		// An empty metrics address disables the endpoint.
		MetricsAddr: strings.TrimSpace(r.MetricsAddr),
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}

	var err error
	if cfg.RequestTimeout, err = parseDuration("request_timeout", r.RequestTimeout, defaultRequestTimeout); err != nil {
		return Config{}, err
	}
	if cfg.SettleDelay, err = parseDuration("settle_delay", r.SettleDelay, defaultSettleDelay); err != nil {
		return Config{}, err
	}

	cfg.LogFile = mustExpand(orDefault(r.LogFile, defaultLogFile))

	cfg.Mirror = MirrorConfig{
		Backend:   strings.ToLower(orDefault(r.Mirror.Backend, BackendFile)),
		Path:      mustExpand(orDefault(r.Mirror.Path, defaultMirrorPath)),
		RedisAddr: orDefault(r.Mirror.RedisAddr, defaultRedisAddr),
		Key:       orDefault(r.Mirror.Key, defaultMirrorKey),
	}
	switch cfg.Mirror.Backend {
	case BackendFile, BackendRedis:
	default:
		return Config{}, fmt.Errorf("parse config: unknown mirror backend %q", cfg.Mirror.Backend)
	}
	return cfg, nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(field, value string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("parse config: %s must not be negative", field)
	}
	return d, nil
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
