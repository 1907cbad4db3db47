// Package config provides configuration management for the normalizer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"jobnorm/internal/models"
)

// Configuration validation errors.
var (
	ErrMissingDatasetID      = errors.New("dataset.id is required")
	ErrInvalidDatasetID      = errors.New("dataset.id must look like owner/slug")
	ErrMissingEndpoint       = errors.New("dataset.endpoint is required")
	ErrInvalidTimeout        = errors.New("dataset.timeout_sec must be at least 1")
	ErrMissingInputPath      = errors.New("input.path is required")
	ErrMissingOutputPath     = errors.New("output.base_path is required")
	ErrNoOutputFormats       = errors.New("at least one output format is required")
	ErrInvalidOutputFormat   = errors.New("output.formats entries must be 'csv' or 'sqlite'")
	ErrMissingSQLitePath     = errors.New("output.sqlite_path is required when the sqlite format is enabled")
	ErrMissingIndustryKey    = errors.New("rules.industry_key is required")
	ErrNoWorkTypes           = errors.New("rules.work_types must not be empty")
	ErrDefaultWorkTypeUnlist = errors.New("rules.default_work_type must be one of rules.work_types")
	ErrMissingUserRole       = errors.New("rules.user_role is required")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Output formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Config represents the complete normalizer configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
}

// DatasetConfig identifies the remote dataset used when the input file is absent.
type DatasetConfig struct {
	ID              string `yaml:"id"`
	Endpoint        string `yaml:"endpoint"`
	CredentialsPath string `yaml:"credentials_path"`
	TimeoutSec      int    `yaml:"timeout_sec"`
}

// InputConfig points at the raw CSV.
type InputConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig defines where and how tables are written.
type OutputConfig struct {
	BasePath   string   `yaml:"base_path"`
	Formats    []string `yaml:"formats"`
	SQLitePath string   `yaml:"sqlite_path"`
	NullValue  string   `yaml:"null_value"`
	Manifest   bool     `yaml:"manifest"`
}

// RulesConfig holds the normalization constants.
type RulesConfig struct {
	IndustryKey         string   `yaml:"industry_key"`
	WorkTypes           []string `yaml:"work_types"`
	DefaultWorkType     string   `yaml:"default_work_type"`
	PasswordPlaceholder string   `yaml:"password_placeholder"`
	UserRole            string   `yaml:"user_role"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			ID:              "ravindrasinghrana/job-description-dataset",
			Endpoint:        "https://www.kaggle.com/api/v1",
			CredentialsPath: "~/.kaggle/kaggle.json",
			TimeoutSec:      600,
		},
		Input: InputConfig{
			Path: "job_descriptions.csv",
		},
		Output: OutputConfig{
			BasePath:   ".",
			Formats:    []string{FormatCSV},
			SQLitePath: "jobs.db",
			NullValue:  `\N`,
			Manifest:   true,
		},
		Rules: RulesConfig{
			IndustryKey:         "Industry",
			WorkTypes:           []string{"Full-time", "Part-time", "Contract", "Intern"},
			DefaultWorkType:     "Full-time",
			PasswordPlaceholder: "####",
			UserRole:            models.RoleEmployer,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from YAML file. Keys absent from the file keep their defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dataset.ID == "" {
		return ErrMissingDatasetID
	}

	if owner, slug, ok := strings.Cut(c.Dataset.ID, "/"); !ok || owner == "" || slug == "" {
		return fmt.Errorf("%w: %q", ErrInvalidDatasetID, c.Dataset.ID)
	}

	if c.Dataset.Endpoint == "" {
		return ErrMissingEndpoint
	}

	if c.Dataset.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	if c.Input.Path == "" {
		return ErrMissingInputPath
	}

	if c.Output.BasePath == "" {
		return ErrMissingOutputPath
	}

	if len(c.Output.Formats) == 0 {
		return ErrNoOutputFormats
	}

	for i, format := range c.Output.Formats {
		switch format {
		case FormatCSV:
		case FormatSQLite:
			if c.Output.SQLitePath == "" {
				return ErrMissingSQLitePath
			}
		default:
			return fmt.Errorf("%w: formats[%d]=%q", ErrInvalidOutputFormat, i, format)
		}
	}

	if c.Rules.IndustryKey == "" {
		return ErrMissingIndustryKey
	}

	if len(c.Rules.WorkTypes) == 0 {
		return ErrNoWorkTypes
	}

	listed := false

	for _, wt := range c.Rules.WorkTypes {
		if wt == c.Rules.DefaultWorkType {
			listed = true
			break
		}
	}

	if !listed {
		return ErrDefaultWorkTypeUnlist
	}

	if c.Rules.UserRole == "" {
		return ErrMissingUserRole
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

// HasFormat reports whether the given output format is enabled.
func (o *OutputConfig) HasFormat(format string) bool {
	for _, f := range o.Formats {
		if f == format {
			return true
		}
	}

	return false
}

// GetTimeout returns the dataset download timeout.
func (d *DatasetConfig) GetTimeout() time.Duration {
	return time.Duration(d.TimeoutSec) * time.Second
}

// GetCredentialsPath expands a leading "~" to the user's home directory.
func (d *DatasetConfig) GetCredentialsPath() string {
	return expandHome(d.CredentialsPath)
}

// GetSQLitePath resolves the SQLite file relative to the output directory.
func (c *Config) GetSQLitePath() string {
	if filepath.IsAbs(c.Output.SQLitePath) {
		return c.Output.SQLitePath
	}

	return filepath.Join(c.Output.BasePath, c.Output.SQLitePath)
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Dataset: %s, Input: %s, Output: %s %v}",
		c.Dataset.ID,
		c.Input.Path,
		c.Output.BasePath,
		c.Output.Formats,
	)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
