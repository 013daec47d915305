package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// BaseURL is the public origin of this app, used for OAuth redirect URLs.
	BaseURL string `env:"BASE_URL"`

	API   APIConfig
	OAuth OAuthConfig
	Redis RedisConfig
}

// APIConfig points the client at the SkillSwap API.
type APIConfig struct {
	URL       string        `env:"API_URL,        default=http://localhost:4000"`
	Timeout   time.Duration `env:"API_TIMEOUT,    default=15s"`
	RateLimit float64       `env:"API_RATE_LIMIT, default=0"`
	RateBurst int           `env:"API_RATE_BURST, default=10"`
}

type OAuthConfig struct {
	StateSecret string `env:"STATE_SECRET"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
}

// RedisConfig is optional; an empty Addr keeps OAuth state in memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// PublicURL returns BaseURL, or the local listen address when unset.
func (c *Config) PublicURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return "http://localhost:" + c.Port
}

// Load reads .env (when present) and then the process environment.
// Variables already set in the environment win over .env.
func Load() *Config {
	cfg, err := load(context.Background(), envconfig.OsLookuper(), ".env")
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

func load(ctx context.Context, lookuper envconfig.Lookuper, dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %v: %w", dotenv, err)
	}

	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if cfg.API.RateLimit < 0 {
		return nil, fmt.Errorf("API_RATE_LIMIT must not be negative")
	}
	return &cfg, nil
}
