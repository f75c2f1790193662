package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`

	// Upstream platforms. Tokens are optional; without them calls are anonymous
	// and subject to lower rate limits.
	GitHubURL       string        `yaml:"github_url"`
	GitHubToken     string        `yaml:"github_token"`
	LeetCodeURL     string        `yaml:"leetcode_url"`
	LeetCodeToken   string        `yaml:"leetcode_token"`
	UpstreamTimeout time.Duration `yaml:"upstream_timeout"`

	// Cache of live stats records: "memory", "redis" or "none".
	CacheKind   string        `yaml:"cache_kind"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisDB     int           `yaml:"redis_db"`
	RedisPrefix string        `yaml:"redis_prefix"`

	// Profile store. Without a database URL the in-memory Profiles below are used.
	DatabaseURL string                       `yaml:"database_url"`
	Profiles    map[string]map[string]string `yaml:"profiles"` // user id -> platform -> username

	// HS256 secret for bearer tokens on the authenticated stats route.
	JWTSecret string `yaml:"jwt_secret"`
}

// Load loads configuration from, in increasing precedence: defaults, the YAML file
// named by CONFIG_PATH (optional), and environment variables. A .env file in the
// working directory is loaded into the environment first when present.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:            8080,
		Env:             "dev",
		LogLevel:        "info",
		GitHubURL:       "https://api.github.com",
		LeetCodeURL:     "https://leetcode.com/graphql",
		UpstreamTimeout: 5 * time.Second,
		CacheKind:       "memory",
		CacheTTL:        10 * time.Minute,
		RedisAddr:       "localhost:6379",
		RedisPrefix:     "brand-dashboard",
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	// Invalid ports keep the current value.
	if portStr := os.Getenv("PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			c.Port = p
		}
	}

	c.Env = getEnvOrDefault("APP_ENV", c.Env)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.GitHubURL = getEnvOrDefault("GITHUB_URL", c.GitHubURL)
	c.GitHubToken = getEnvOrDefault("GITHUB_TOKEN", c.GitHubToken)
	c.LeetCodeURL = getEnvOrDefault("LEETCODE_URL", c.LeetCodeURL)
	c.LeetCodeToken = getEnvOrDefault("LEETCODE_TOKEN", c.LeetCodeToken)
	c.CacheKind = getEnvOrDefault("CACHE_KIND", c.CacheKind)
	c.RedisAddr = getEnvOrDefault("REDIS_ADDR", c.RedisAddr)
	c.RedisPrefix = getEnvOrDefault("REDIS_PREFIX", c.RedisPrefix)
	c.DatabaseURL = getEnvOrDefault("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getEnvOrDefault("AUTH_JWT_SECRET", c.JWTSecret)

	var err error
	if c.UpstreamTimeout, err = getEnvDuration("UPSTREAM_TIMEOUT", c.UpstreamTimeout); err != nil {
		return err
	}
	if c.CacheTTL, err = getEnvDuration("CACHE_TTL", c.CacheTTL); err != nil {
		return err
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("REDIS_DB: %w", err)
		}
		c.RedisDB = db
	}

	return nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive, got %s", c.UpstreamTimeout)
	}

	switch strings.ToLower(c.CacheKind) {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("unknown cache kind %q (want memory, redis or none)", c.CacheKind)
	}

	if c.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.CacheTTL)
	}

	return nil
}

// HasGitHubToken returns true if GitHub credentials are configured.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// HasLeetCodeToken returns true if LeetCode credentials are configured.
func (c *Config) HasLeetCodeToken() bool {
	return c.LeetCodeToken != ""
}

// HasDatabase returns true if profiles come from PostgreSQL.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasAuth returns true if the authenticated route can verify tokens.
func (c *Config) HasAuth() bool {
	return c.JWTSecret != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
