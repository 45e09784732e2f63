// Package config loads process settings from the environment and the optional seed file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/steward/internal/template"
	"github.com/aretw0/steward/pkg/domain"
)

// Config holds the process settings.
type Config struct {
	DiscordToken     string `env:"DISCORD_TOKEN,required"`
	AdminRoleID      string `env:"ADMIN_ROLE_ID"`
	WelcomeChannelID string `env:"WELCOME_CHANNEL_ID"`
	Port             int    `env:"PORT" envDefault:"3000"`

	LogLevel string `env:"STEWARD_LOG_LEVEL" envDefault:"info"`
	// TextPrefix enables chat-message triggers such as "!config". Empty disables them.
	TextPrefix string `env:"STEWARD_TEXT_PREFIX" envDefault:"!"`
	// SeedFile is a YAML or JSON domain.Config read once at startup.
	SeedFile string `env:"STEWARD_SEED_FILE"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses the given variables instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address of the HTTP endpoint.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

// Seed builds the initial assistant configuration.
// The seed file comes first; ADMIN_ROLE_ID and WELCOME_CHANNEL_ID only fill what it leaves unset.
func (c Config) Seed() (domain.Config, error) {
	seed := domain.NewConfig()
	if c.SeedFile != "" {
		loaded, err := LoadSeed(c.SeedFile)
		if err != nil {
			return domain.Config{}, err
		}
		seed = loaded
	}

	if seed.AdminRoleID == "" {
		seed.AdminRoleID = c.AdminRoleID
	}
	if c.WelcomeChannelID != "" {
		if _, ok := seed.WelcomeChannels[c.WelcomeChannelID]; !ok {
			seed.WelcomeChannels[c.WelcomeChannelID] = template.DefaultWelcome
		}
	}
	return seed, nil
}

// LoadSeed reads a domain.Config from a YAML or JSON file.
func LoadSeed(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	var cfg domain.Config
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("failed to parse seed file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return domain.Config{}, fmt.Errorf("failed to parse seed file: %w", err)
		}
	}

	// Clone initializes any map the file left out.
	return cfg.Clone(), nil
}
