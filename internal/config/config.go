// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel     string   `mapstructure:"LOG_LEVEL"`
	DatabaseURL  string   `mapstructure:"DATABASE_URL"`
	GithubToken  string   `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL string   `mapstructure:"GITHUB_API_URL"`
	PerPage      int      `mapstructure:"GITHUB_PER_PAGE"`
	RepoNamesRaw string   `mapstructure:"REPO_NAMES"`
	HTTPAddr     string   `mapstructure:"HTTP_ADDR"`
	RepoNames    []string `mapstructure:"-"`
}

// LoadConfig reads the harvester configuration from a .env file and/or environment variables.
func LoadConfig() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}

	if cfg.GithubToken == "" {
		return nil, errors.New("GITHUB_TOKEN is a required configuration field")
	}
	if strings.TrimSpace(cfg.RepoNamesRaw) == "" {
		return nil, errors.New("REPO_NAMES must contain at least one repository")
	}
	cfg.RepoNames = SplitRepoNames(cfg.RepoNamesRaw)

	return cfg, nil
}

// LoadServerConfig reads the configuration needed by the read API.
func LoadServerConfig() (*Config, error) {
	return load()
}

// SplitRepoNames splits a comma-separated repository list. Entries are only
// trimmed of surrounding whitespace; malformed ones are kept so that they fail
// when their turn comes.
func SplitRepoNames(raw string) []string {
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, strings.TrimSpace(p))
	}
	return names
}

func load() (*Config, error) {
	// A missing .env file is fine, the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GITHUB_PER_PAGE", 100)
	v.SetDefault("HTTP_ADDR", ":8080")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"GITHUB_TOKEN", "GITHUB_API_URL", "REPO_NAMES"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	// DB_URL is accepted for deployments configured for the older service.
	if err := v.BindEnv("DATABASE_URL", "DATABASE_URL", "DB_URL"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is a required configuration field")
	}
	if cfg.PerPage < 1 || cfg.PerPage > 100 {
		return nil, fmt.Errorf("GITHUB_PER_PAGE must be between 1 and 100, got %d", cfg.PerPage)
	}

	return &cfg, nil
}
