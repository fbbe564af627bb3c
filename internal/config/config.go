package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override (BOOKLOG_STORAGE_BACKEND...).
const EnvPrefix = "BOOKLOG"

// DefaultPath returns the default config file path, honouring BOOKLOG_CONFIG.
func DefaultPath() string {
	if p := os.Getenv(EnvPrefix + "_CONFIG"); p != "" {
		return ExpandHome(p)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "booklog", "config.yml")
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	dataDir := filepath.Join(homeDir(), ".local", "share", "booklog")
	return &Config{
		Storage: StorageConfig{
			Backend:    "file",
			Dir:        dataDir,
			SQLitePath: filepath.Join(dataDir, "booklog.db"),
			Key:        "library_data",
		},
		Catalog: CatalogConfig{
			BaseURL:   "https://openlibrary.org",
			CoversURL: "https://covers.openlibrary.org",
			UserAgent: "booklog",
			RPS:       5,
			Timeout:   15 * time.Second,
			CacheTTL:  10 * time.Minute,
		},
		Enrich: EnrichConfig{Concurrency: 4},
		Cache: CacheConfig{
			Dir:       filepath.Join(homeDir(), ".cache", "booklog"),
			CoverSize: "M",
		},
		Log: LogConfig{Level: "warn", Format: "console"},
	}
}

// Load reads the config from path (DefaultPath when empty), layered over the
// defaults and under BOOKLOG_* env vars. A missing file is not an error; the
// init command creates it.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(ExpandHome(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Storage.Dir = ExpandHome(cfg.Storage.Dir)
	cfg.Storage.SQLitePath = ExpandHome(cfg.Storage.SQLitePath)
	cfg.Cache.Dir = ExpandHome(cfg.Cache.Dir)

	return &cfg, cfg.Validate()
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want file or sqlite)", c.Storage.Backend)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key must not be empty")
	}
	if c.Enrich.Concurrency < 1 {
		return fmt.Errorf("enrich.concurrency must be at least 1, got %d", c.Enrich.Concurrency)
	}
	switch strings.ToUpper(c.Cache.CoverSize) {
	case "S", "M", "L":
	default:
		return fmt.Errorf("cache.cover_size: %q is not one of S, M, L", c.Cache.CoverSize)
	}
	return nil
}

// Save writes the config to path (DefaultPath when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// ExpandHome expands a leading ~/ in a path.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.sqlite_path", d.Storage.SQLitePath)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("catalog.base_url", d.Catalog.BaseURL)
	v.SetDefault("catalog.covers_url", d.Catalog.CoversURL)
	v.SetDefault("catalog.user_agent", d.Catalog.UserAgent)
	v.SetDefault("catalog.rps", d.Catalog.RPS)
	v.SetDefault("catalog.timeout", d.Catalog.Timeout)
	v.SetDefault("catalog.cache_ttl", d.Catalog.CacheTTL)
	v.SetDefault("enrich.concurrency", d.Enrich.Concurrency)
	v.SetDefault("cache.dir", d.Cache.Dir)
	v.SetDefault("cache.cover_size", d.Cache.CoverSize)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

func homeDir() string {
	home, _ := os.UserHomeDir()
	return home
}
