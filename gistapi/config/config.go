package config

import (
	"os"
	"strconv"
	"time"

	"gistapi/gistapi/utils/logging"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Host          string
	Port          string
	GithubBaseURL string
	HTTPTimeout   time.Duration
	HTTPRetries   int
	HTTPBackoff   time.Duration
}

// fileConfig is the optional YAML overlay; durations are parsed strings so
// the file can say "500ms" or "10s".
type fileConfig struct {
	Host          string `yaml:"host"`
	Port          string `yaml:"port"`
	GithubBaseURL string `yaml:"github_base_url"`
	HTTPTimeout   string `yaml:"http_timeout"`
	HTTPRetries   *int   `yaml:"http_retries"`
	HTTPBackoff   string `yaml:"http_backoff"`
}

// LoadConfig builds the config from defaults, then the YAML file named by
// GISTAPI_CONFIG (if any), then environment variables. Env wins.
func LoadConfig() Config {
	// No .env file is fine; the system environment still applies.
	_ = godotenv.Load()

	cfg := Config{
		Host:          "0.0.0.0",
		Port:          "9876",
		GithubBaseURL: "https://api.github.com",
		HTTPTimeout:   10 * time.Second,
		HTTPRetries:   3,
		HTTPBackoff:   300 * time.Millisecond,
	}

	if path := os.Getenv("GISTAPI_CONFIG"); path != "" {
		applyFile(&cfg, path)
	}

	cfg.Host = getEnv("GISTAPI_HOST", cfg.Host)
	cfg.Port = getEnv("GISTAPI_PORT", cfg.Port)
	cfg.GithubBaseURL = getEnv("GITHUB_API_URL", cfg.GithubBaseURL)
	if d, err := time.ParseDuration(os.Getenv("HTTP_TIMEOUT")); err == nil {
		cfg.HTTPTimeout = d
	}
	if n, err := strconv.Atoi(os.Getenv("HTTP_RETRIES")); err == nil {
		cfg.HTTPRetries = n
	}
	if d, err := time.ParseDuration(os.Getenv("HTTP_BACKOFF")); err == nil {
		cfg.HTTPBackoff = d
	}
	return cfg
}

func applyFile(cfg *Config, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logging.AppLogger.Warn("config file unreadable", zap.String("path", path), zap.Error(err))
		return
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		logging.AppLogger.Warn("config file invalid", zap.String("path", path), zap.Error(err))
		return
	}
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port != "" {
		cfg.Port = fc.Port
	}
	if fc.GithubBaseURL != "" {
		cfg.GithubBaseURL = fc.GithubBaseURL
	}
	if d, err := time.ParseDuration(fc.HTTPTimeout); err == nil {
		cfg.HTTPTimeout = d
	}
	if fc.HTTPRetries != nil {
		cfg.HTTPRetries = *fc.HTTPRetries
	}
	if d, err := time.ParseDuration(fc.HTTPBackoff); err == nil {
		cfg.HTTPBackoff = d
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
