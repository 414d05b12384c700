package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file name.
const FileName = "bankfeed.yaml"

// Config represents the top-level bankfeed.yaml configuration.
type Config struct {
	Feed   FeedConfig   `yaml:"feed"`
	Import ImportConfig `yaml:"import"`
	Git    GitConfig    `yaml:"git"`
}

// FeedConfig identifies the feed and its rule set.
type FeedConfig struct {
	Name      string `yaml:"name"`
	RulesFile string `yaml:"rules_file"`
}

// ImportConfig controls how uploaded statements are processed.
type ImportConfig struct {
	MaxFileSizeMB int  `yaml:"max_file_size_mb"`
	StrictDates   bool `yaml:"strict_dates"` // reject unparseable dates instead of defaulting to today
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a bankfeed.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Import.MaxFileSizeMB <= 0 {
		cfg.Import.MaxFileSizeMB = 5
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(feedName string) *Config {
	return &Config{
		Feed: FeedConfig{
			Name:      feedName,
			RulesFile: "rules/categorization-rules.yaml",
		},
		Import: ImportConfig{
			MaxFileSizeMB: 5,
			StrictDates:   false,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Bankfeed",
			AuthorEmail: "import@bankfeed.dev",
		},
	}
}
