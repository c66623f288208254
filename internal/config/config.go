// Package config provides configuration loading and validation for the
// server and the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Draft snapshot backends.
const (
	DraftBackendMemory = "memory"
	DraftBackendFile   = "file"
	DraftBackendRedis  = "redis"
)

// Config is the full application configuration. It is loaded from an
// optional YAML (or JSON) file and then overridden by environment variables.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Draft    DraftConfig    `yaml:"draft"`
	Render   RenderConfig   `yaml:"render"`
	LogLevel string         `yaml:"log_level" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" validate:"min=1,max=65535"`
	// PublicBaseURL prefixes share links, e.g. https://cv.example.com
	PublicBaseURL string `yaml:"public_base_url" validate:"omitempty,url"`
}

// DatabaseConfig configures PostgreSQL.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// DraftConfig configures where the local draft snapshot is kept.
type DraftConfig struct {
	Backend  string        `yaml:"backend" validate:"oneof=memory file redis"`
	Dir      string        `yaml:"dir" validate:"required_if=Backend file"`
	RedisURL string        `yaml:"redis_url" validate:"required_if=Backend redis"`
	TTL      time.Duration `yaml:"ttl" validate:"min=0"`
}

// RenderConfig configures PDF rendering.
type RenderConfig struct {
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout" validate:"min=0"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	dir := ".resume-builder"
	if home, err := os.UserHomeDir(); err == nil {
		dir = filepath.Join(home, ".resume-builder")
	}

	return Config{
		Server:   ServerConfig{Port: 8080},
		JWT:      JWTConfig{ExpirationHours: 24},
		Draft:    DraftConfig{Backend: DraftBackendFile, Dir: dir},
		Render:   RenderConfig{Timeout: 60 * time.Second},
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a YAML or JSON file over the defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Load reads the optional file, applies environment overrides and validates
// the result.
func Load(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables. lookup is usually
// os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = n
		return nil
	}
	duration := func(name string, dst *time.Duration) error {
		v, ok := lookup(name)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = d
		return nil
	}

	str("DATABASE_URL", &c.Database.URL)
	str("JWT_SECRET", &c.JWT.Secret)
	str("PUBLIC_BASE_URL", &c.Server.PublicBaseURL)
	str("DRAFT_BACKEND", &c.Draft.Backend)
	str("DRAFT_DIR", &c.Draft.Dir)
	str("REDIS_URL", &c.Draft.RedisURL)
	str("CHROME_PATH", &c.Render.ChromePath)
	str("LOG_LEVEL", &c.LogLevel)

	return errors.Join(
		integer("PORT", &c.Server.Port),
		integer("JWT_EXPIRATION_HOURS", &c.JWT.ExpirationHours),
		duration("DRAFT_TTL", &c.Draft.TTL),
		duration("RENDER_TIMEOUT", &c.Render.Timeout),
	)
}

var validate = validator.New()

// Validate checks field values. Settings only the server needs are checked
// by RequireServer.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// RequireServer checks the settings the HTTP API cannot start without.
func (c *Config) RequireServer() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config error: %s required but not set", strings.Join(missing, ", "))
	}
	return nil
}

func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config error: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed '%s=%s' (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed '%s' (got %v)", field, fe.Tag(), fe.Value()))
		}
	}
	return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
}
