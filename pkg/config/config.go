package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NetBoxConfig holds connection settings for the NetBox API.
type NetBoxConfig struct {
	URL       string `yaml:"url"`
	Token     string `yaml:"token"`
	Site      string `yaml:"site"`
	VerifySSL *bool  `yaml:"verify_ssl,omitempty"`
}

// Config is the application configuration, loaded from YAML with
// environment-variable overrides.
type Config struct {
	NetBox        NetBoxConfig        `yaml:"netbox"`
	NamingPattern string              `yaml:"naming_pattern,omitempty"`
	ColumnAliases map[string][]string `yaml:"column_aliases,omitempty"`
}

// Load reads configuration from the given YAML file. A missing file is not
// an error: environment variables alone can fully configure the tool.
// NETBOX_URL, NETBOX_TOKEN and NETBOX_SITE override file values.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		content, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if url := os.Getenv("NETBOX_URL"); url != "" {
		cfg.NetBox.URL = url
	}
	if token := os.Getenv("NETBOX_TOKEN"); token != "" {
		cfg.NetBox.Token = token
	}
	if site := os.Getenv("NETBOX_SITE"); site != "" {
		cfg.NetBox.Site = site
	}

	return cfg, nil
}

// VerifySSL reports whether TLS certificates should be verified.
// Defaults to true when unset.
func (c *Config) VerifySSL() bool {
	if c.NetBox.VerifySSL == nil {
		return true
	}
	return *c.NetBox.VerifySSL
}

// IsConfigured reports whether the NetBox connection settings are complete.
func (c *Config) IsConfigured() bool {
	return c.NetBox.URL != "" && c.NetBox.Token != ""
}
