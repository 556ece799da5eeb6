package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file written at the project root.
const FileName = "ledgerlight.yaml"

// Config represents the top-level ledgerlight.yaml configuration.
type Config struct {
	Data       DataConfig       `yaml:"data"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
}

// DataConfig locates the persisted state under the project root.
type DataConfig struct {
	Dir          string `yaml:"dir"`
	DatabaseFile string `yaml:"database_file"`
	ProfilesFile string `yaml:"profiles_file"`
}

// ThresholdsConfig tunes the categorisation engine's decision points.
type ThresholdsConfig struct {
	// ProfileMatch is the minimum similarity for reusing a saved column
	// profile.
	ProfileMatch float64 `yaml:"profile_match"`
	// AutoAccept is the 0-100 mapping score at which a category is applied
	// without asking.
	AutoAccept float64 `yaml:"auto_accept"`
	// RecurrenceMin is how many prior near-identical transactions make the
	// next one recurring.
	RecurrenceMin int `yaml:"recurrence_min"`
}

// Load reads a ledgerlight.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
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

// Default returns a Config with the engine's stock tuning.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:          "data",
			DatabaseFile: "finance.db",
			ProfilesFile: "import_profiles.json",
		},
		Thresholds: ThresholdsConfig{
			ProfileMatch:  0.85,
			AutoAccept:    90,
			RecurrenceMin: 2,
		},
	}
}

// DatabasePath returns the database location under root.
func (c *Config) DatabasePath(root string) string {
	return filepath.Join(root, c.Data.Dir, c.Data.DatabaseFile)
}

// ProfilesPath returns the profile-store location under root.
func (c *Config) ProfilesPath(root string) string {
	return filepath.Join(root, c.Data.Dir, c.Data.ProfilesFile)
}
