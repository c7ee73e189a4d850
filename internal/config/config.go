// Package config loads the optional auditor configuration file. CLI flags
// always win over file values; the file exists so teams can commit their
// monorepo's paths and exclusions next to the docs.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docaudit/internal/errors"
)

// Config represents the auditor configuration.
type Config struct {
	MkDocsYAML string   `yaml:"mkdocs_yaml"`
	HelpURLs   string   `yaml:"help_urls"`
	Exclude    []string `yaml:"exclude,omitempty"`
	HistoryDB  string   `yaml:"history_db,omitempty"`
}

// Load loads configuration from the specified file. Environment variables
// in the YAML content are expanded, with a .env file honored first.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		// Don't fail if .env doesn't exist, just note it.
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}
