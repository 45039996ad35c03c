package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultRefreshInterval is how often an open board reconciles with the server
const DefaultRefreshInterval = 10 * time.Second

// Config represents the application configuration
type Config struct {
	ServerURL    string `yaml:"server_url"`
	PracticeID   string `yaml:"practice_id"`
	JobPostingID string `yaml:"job_posting_id"` // Empty shows all candidates
	Token        string `yaml:"token"`

	RefreshInterval time.Duration `yaml:"refresh_interval"`
	MoveTimeout     time.Duration `yaml:"move_timeout"` // Zero disables the bound

	KeyMappings KeyMappings `yaml:"key_mappings"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyEnv overrides file values with HIREPIPE_* environment variables
func applyEnv(config *Config) {
	if v := os.Getenv("HIREPIPE_SERVER_URL"); v != "" {
		config.ServerURL = v
	}
	if v := os.Getenv("HIREPIPE_PRACTICE_ID"); v != "" {
		config.PracticeID = v
	}
	if v := os.Getenv("HIREPIPE_JOB_POSTING_ID"); v != "" {
		config.JobPostingID = v
	}
	if v := os.Getenv("HIREPIPE_TOKEN"); v != "" {
		config.Token = v
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		applyEnv(config)
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, falling back to defaults if it is missing
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := Default()
		applyEnv(config)
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyEnv(&config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(configPath)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// The file may hold a token
	return os.WriteFile(path, data, 0o600)
}

// Path returns the path Load reads from
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "hirepipe", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "hirepipe", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.RefreshInterval == 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	c.KeyMappings.applyDefaults()
}
