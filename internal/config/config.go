package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Assistant AssistantConfig `yaml:"assistant"`
	Drafts    DraftsConfig    `yaml:"drafts"`
	Log       LogConfig       `yaml:"log"`
}

// StoreConfig locates the remote document store.
type StoreConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`
}

// AssistantConfig locates the completion API.
type AssistantConfig struct {
	URL   string `yaml:"url"`
	Key   string `yaml:"key"`
	Model string `yaml:"model"`
}

// DraftsConfig locates the local draft-slot store.
type DraftsConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment
// variables. Env values override the file; the file overrides defaults.
func Load() (Config, error) {
	cfg := Config{
		Assistant: AssistantConfig{
			Model: "gemini-2.5-flash",
		},
		Drafts: DraftsConfig{
			Path: defaultDraftsPath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("TASKAPP_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if url := os.Getenv("TASKAPP_STORE_URL"); url != "" {
		cfg.Store.URL = url
	}
	if key := os.Getenv("TASKAPP_STORE_KEY"); key != "" {
		cfg.Store.Key = key
	}
	if url := os.Getenv("TASKAPP_ASSISTANT_URL"); url != "" {
		cfg.Assistant.URL = url
	}
	if key := os.Getenv("TASKAPP_ASSISTANT_KEY"); key != "" {
		cfg.Assistant.Key = key
	}
	if model := os.Getenv("TASKAPP_ASSISTANT_MODEL"); model != "" {
		cfg.Assistant.Model = model
	}
	if path := os.Getenv("TASKAPP_DRAFTS_PATH"); path != "" {
		cfg.Drafts.Path = path
	}
	if level := os.Getenv("TASKAPP_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Store.URL == "" {
		return Config{}, fmt.Errorf("store url is required (set TASKAPP_STORE_URL)")
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultDraftsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".taskapp/drafts"
	}
	return filepath.Join(home, ".taskapp", "drafts")
}
