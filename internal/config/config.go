package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Configuration struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	TagsAPIURL      string        `env:"TAGS_API_URL" envDefault:"http://localhost:3000"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`
	DebounceDelay   time.Duration `env:"DEBOUNCE_DELAY" envDefault:"1s"`
	RenderWait      time.Duration `env:"RENDER_WAIT" envDefault:"300ms"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"256"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"30"`

	APIAddress string `env:"API_ADDRESS" envDefault:":3000"`
	MySQLDSN   string `env:"MYSQL_DSN" envDefault:"user:password@/tagcatalog"`

	Log LogConfig
}

type LogConfig struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"text"`
	File       string `env:"LOG_FILE"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"7"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"7"`
	Compress   bool   `env:"LOG_COMPRESS" envDefault:"true"`
}

// Load reads the given .env files, if they exist, and then the environment.
// Variables already set in the environment win over the files.
func Load(files ...string) (*Configuration, error) {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", file, err)
		}
	}

	var cfg Configuration
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.CacheMaxEntries < 1 {
		return nil, fmt.Errorf("CACHE_MAX_ENTRIES must be positive, got %d", cfg.CacheMaxEntries)
	}
	return &cfg, nil
}
