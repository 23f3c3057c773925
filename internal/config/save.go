package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Save writes the config to the user's config directory.
func (c *Config) Save() error {
	return c.SaveTo(filepath.Join(ConfigDir(), "config.yaml"))
}

// SaveEffective writes the config to the -config path, or to the user's
// config directory when none was given, and returns the path written.
func (c *Config) SaveEffective() (string, error) {
	if path := ConfigPath(); path != "" {
		return path, c.SaveTo(path)
	}
	return filepath.Join(ConfigDir(), "config.yaml"), c.Save()
}

// SaveTo writes the config to a specific path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
