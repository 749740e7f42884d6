package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/keyring"
	"github.com/julianstephens/humidor/internal/storage/postgres"
)

// PostgresKeyringDSN tells humidor to read the connection string from the OS keyring.
const PostgresKeyringDSN = "postgres"

// Config holds the resolved settings. Precedence is flags, then environment,
// then config.yaml, then defaults.
type Config struct {
	ConfigDir string `yaml:"-"`

	DSN      string       `yaml:"dsn" env:"HUMIDOR_DSN"`
	Debug    bool         `yaml:"debug" env:"HUMIDOR_DEBUG"`
	LogLevel string       `yaml:"log_level,omitempty" env:"HUMIDOR_LOG_LEVEL"`
	Backups  BackupConfig `yaml:"backups"`
}

type BackupConfig struct {
	Max  int  `yaml:"max" env:"HUMIDOR_MAX_BACKUPS"`
	Auto bool `yaml:"auto" env:"HUMIDOR_AUTO_BACKUP"`
}

// Default returns the configuration used when nothing is set.
func Default(configDir string) *Config {
	return &Config{
		ConfigDir: configDir,
		DSN:       filepath.Join(configDir, constants.DefaultDBFile),
		Backups: BackupConfig{
			Max:  constants.MaxBackups,
			Auto: true,
		},
	}
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ResolveDir picks the config directory: the flag value, then HUMIDOR_CONFIG_DIR, then the default.
func ResolveDir(flagDir string) string {
	dir := flagDir
	if dir == "" {
		dir = os.Getenv("HUMIDOR_CONFIG_DIR")
	}
	if dir == "" {
		dir = constants.DefaultConfigDir
	}
	return ExpandPath(dir)
}

// Path returns the location of config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.ConfigDir, constants.ConfigFileName)
}

// Load reads <configDir>/config.yaml if present and applies environment overrides.
func Load(configDir string) (*Config, error) {
	cfg := Default(configDir)

	data, err := os.ReadFile(cfg.Path())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.DSN = ExpandPath(strings.TrimSpace(cfg.DSN))
	if cfg.Backups.Max < 1 {
		cfg.Backups.Max = constants.MaxBackups
	}
	return cfg, nil
}

// ApplyFlags overrides file and environment values with non-zero command-line values.
func (c *Config) ApplyFlags(dsn string, debug bool) {
	if dsn != "" {
		c.DSN = ExpandPath(strings.TrimSpace(dsn))
	}
	if debug {
		c.Debug = true
	}
}

// Save writes the configuration to config.yaml.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// StorageDSN returns the DSN to open. The literal "postgres" is replaced by the
// keyring entry; Postgres strings given directly must not carry a password.
// An empty DSN uses the keyring entry when one exists and the default
// database file otherwise.
func (c *Config) StorageDSN() (string, error) {
	if c.DSN == "" {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return connStr, nil
		case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
			return filepath.Join(c.ConfigDir, constants.DefaultDBFile), nil
		default:
			return "", err
		}
	}

	if c.DSN == PostgresKeyringDSN {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return "", fmt.Errorf("no PostgreSQL connection string in keyring, run 'humidor keyring set' first")
			}
			return "", err
		}
		return connStr, nil
	}

	if postgres.IsURL(c.DSN) || strings.HasPrefix(c.DSN, "host=") {
		if ok, err := postgres.ValidateConnString(c.DSN); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("%w: store it with 'humidor keyring set' and use --dsn postgres, or use .pgpass", err)
			}
			return "", err
		}
	}
	return c.DSN, nil
}
