// Package config handles configuration for tms-tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds connection and output settings. Resolution order is
// flags over config file over environment: ApplyEnv only fills values
// that are still unset.
type Config struct {
	// Connection settings
	BaseURL  string `yaml:"baseUrl"`  // TMS API base URL
	Email    string `yaml:"email"`    // Sign-in email
	Password string `yaml:"password"` // Sign-in password

	// Output settings
	Output  string `yaml:"output"`  // Export output directory
	LogFile string `yaml:"logFile"` // Log file path (default stderr)
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
func LoadFromDir(dir string) (*Config, error) {
	// Try config.yaml first
	configPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// Try config.yml
	configPath = filepath.Join(dir, "config.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// ApplyEnv fills unset values from the TMS_* environment variables,
// reading a .env file in the working directory first when one exists.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load() // missing .env is fine

	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("TMS_BASE_URL")
	}
	if c.Email == "" {
		c.Email = os.Getenv("TMS_EMAIL")
	}
	if c.Password == "" {
		c.Password = os.Getenv("TMS_PASSWORD")
	}
}

// Validate checks that the connection settings are complete.
func (c *Config) Validate() error {
	var missing []string
	if c.BaseURL == "" {
		missing = append(missing, "TMS_BASE_URL")
	}
	if c.Email == "" {
		missing = append(missing, "TMS_EMAIL")
	}
	if c.Password == "" {
		missing = append(missing, "TMS_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing connection settings: %s", strings.Join(missing, ", "))
	}
	return nil
}
