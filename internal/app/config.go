package app

import (
	"fmt"
	"strings"

	coreconfig "github.com/m3rciful/paperbot/core/config"
	coredatabase "github.com/m3rciful/paperbot/core/database"
)

// DefaultBaseURL hosts the paper files when no BASE_URL is configured.
const DefaultBaseURL = "https://doubtsolved.netlify.app/papers"

// PapersConfig locates paper files and the optional catalog seed.
type PapersConfig struct {
	// BaseURL is joined with each paper path to build download links.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`
	// SeedFile is a YAML class → subject → year → path mapping. Empty loads
	// the built-in catalog.
	SeedFile string `yaml:"seed_file" envconfig:"PAPERS_SEED_FILE"`
}

// Config is the full bot configuration: the shared core sections plus the
// paper catalog and the optional database.
type Config struct {
	coreconfig.Config `yaml:",inline"`

	Papers   PapersConfig        `yaml:"papers"`
	Database coredatabase.Config `yaml:"database"`
}

// CoreConfig exposes the embedded core configuration.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Config
}

// LoadConfig reads the YAML file at path, overlays the environment and fills
// defaults. A missing file is tolerated.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if err := coreconfig.Decode(path, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates the configuration and applies defaults.
func (c *Config) Normalize() error {
	if err := coreconfig.Normalize(&c.Config); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.Papers.BaseURL = strings.TrimRight(strings.TrimSpace(c.Papers.BaseURL), "/")
	if c.Papers.BaseURL == "" {
		c.Papers.BaseURL = DefaultBaseURL
	}
	c.Papers.SeedFile = strings.TrimSpace(c.Papers.SeedFile)
	c.Database.Normalize()
	return nil
}
