package config

import "time"

// Config is the top-level booklog configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`
	Enrich  EnrichConfig  `mapstructure:"enrich" yaml:"enrich"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// StorageConfig selects where the library snapshot lives.
type StorageConfig struct {
	Backend    string `mapstructure:"backend" yaml:"backend"` // "file" or "sqlite"
	Dir        string `mapstructure:"dir" yaml:"dir"`
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`
	Key        string `mapstructure:"key" yaml:"key"`
}

// CatalogConfig holds Open Library connection settings.
type CatalogConfig struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	CoversURL string        `mapstructure:"covers_url" yaml:"covers_url"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	RPS       float64       `mapstructure:"rps" yaml:"rps"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"`
}

// EnrichConfig tunes cover backfill.
type EnrichConfig struct {
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// CacheConfig holds the cover image cache settings.
type CacheConfig struct {
	Dir       string `mapstructure:"dir" yaml:"dir"`
	CoverSize string `mapstructure:"cover_size" yaml:"cover_size"` // S, M or L
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
}
