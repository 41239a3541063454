// Package config loads the gridiron.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config filename looked up in the working directory.
const DefaultFile = "gridiron.yaml"

type ProjectConfig struct {
	Project   string      `yaml:"project"`
	Version   int         `yaml:"version"`
	Resources string      `yaml:"resources"`
	Forensics string      `yaml:"forensics"`
	Seed      int64       `yaml:"seed"`
	DevMode   bool        `yaml:"dev_mode"`
	Policy    string      `yaml:"policy"`
	Store     StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"`
	DSN     string `yaml:"dsn"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Resources) == "" {
		return fmt.Errorf("resources directory is required")
	}
	if strings.TrimSpace(cfg.Forensics) == "" {
		return fmt.Errorf("forensics directory is required")
	}

	switch cfg.Store.Backend {
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return fmt.Errorf("store dsn is required for backend %s", cfg.Store.Backend)
		}
	case "", "none":
		// persistence disabled
	default:
		return fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}

	if cfg.Policy == "" {
		cfg.Policy = "balanced_default"
	}
	return nil
}
