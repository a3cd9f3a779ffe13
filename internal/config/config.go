package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

const DefaultAddr = ":3000"

type Config struct {
	Issuer IssuerConfig `yaml:"issuer"`
	Server ServerConfig `yaml:"server"`
	Audit  AuditConfig  `yaml:"audit"`

	// Debug controls whether error responses include diagnostic detail
	// (the `stack` field). Explicit flag, never derived from the
	// environment inside business logic.
	Debug bool `yaml:"debug"`

	// AdminKey is the HMAC key for admin session tokens.
	// Leaving it empty disables the admin routes entirely.
	AdminKey string `yaml:"admin_key"`
}

// IssuerConfig identifies the Connected App this service signs tokens as.
type IssuerConfig struct {
	// ClientID is the Connected App client ID registered with Tableau.
	ClientID string `yaml:"client_id"`

	// Key configures where the signing key comes from.
	Key KeyConfig `yaml:"key"`
}

// KeyConfig holds configuration for a signing key provider.
type KeyConfig struct {
	Type   string         `yaml:"type"`    // e.g., "file", "env", "inline"
	Config map[string]any `yaml:",inline"` // Capture remaining fields
}

type ServerConfig struct {
	// Addr is the listen address. Defaults to ":3000".
	Addr string `yaml:"addr"`

	// CORSOrigins lists allowed origins for browser callers.
	// An empty list allows any origin ("*").
	CORSOrigins []string `yaml:"cors_origins"`
}

// AuditConfig holds configuration for auditing.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	Type    string `yaml:"type"` // e.g., "file", "memory"
}

// Load reads and parses the configuration file at the given path.
// It returns a Config struct or an error if loading/parsing/validation fails.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Issuer.ClientID == "" {
		return fmt.Errorf("issuer is missing 'client_id'")
	}
	if c.Issuer.Key.Type == "" {
		return fmt.Errorf("issuer is missing 'key.type'")
	}

	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}

	if c.Audit.Enabled {
		switch c.Audit.Type {
		case "file":
			if c.Audit.Path == "" {
				return fmt.Errorf("audit type 'file' requires 'path'")
			}
		case "memory", "":
		default:
			return fmt.Errorf("unknown audit type '%s'", c.Audit.Type)
		}
	}

	return nil
}
