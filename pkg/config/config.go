// Package config loads the optional YAML seed file: directory members and
// the built-in templates to instantiate at startup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/medforge/ruleflow/pkg/protocol"
)

// SeedConfig is the parsed seed file.
type SeedConfig struct {
	Users     []UserConfig     `yaml:"users"`
	Templates []TemplateConfig `yaml:"templates"`
}

// UserConfig is one directory member.
type UserConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

// TemplateConfig selects a built-in template to instantiate on startup.
type TemplateConfig struct {
	Index     int    `yaml:"index"`
	CreatedBy string `yaml:"created_by"`
	Activate  bool   `yaml:"activate"`
}

// LoadSeedConfig reads and parses the seed file.
func LoadSeedConfig(path string) (SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SeedConfig{}, fmt.Errorf("failed to read seed config %s: %w", path, err)
	}

	var config SeedConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return SeedConfig{}, fmt.Errorf("failed to parse seed config: %w", err)
	}

	for _, user := range config.Users {
		if user.ID == "" {
			return SeedConfig{}, fmt.Errorf("seed config user missing id")
		}
	}

	return config, nil
}

// DirectoryUsers converts the seed members for the static directory.
func (c SeedConfig) DirectoryUsers() []protocol.User {
	users := make([]protocol.User, 0, len(c.Users))
	for _, user := range c.Users {
		users = append(users, protocol.User{
			ID:   user.ID,
			Name: user.Name,
			Role: user.Role,
		})
	}

	return users
}
