// SPDX-License-Identifier: Apache-2.0

package config

// Config is the top-level configuration container for the token-vault CLI.
// It is populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
//   - json      — field name inside the optional JSON configuration file.
type Config struct {
	// App holds host-application settings: identity, passphrase and the
	// device salt override.
	App App `envPrefix:"APP_" json:"app"`

	// Storage selects and configures the key-value store backend.
	Storage Storage `envPrefix:"STORAGE_" json:"storage"`

	// JSONFilePath is the optional path to a JSON configuration file. When
	// non-empty, the file is parsed and merged on top of the values already
	// loaded from environment variables and flags.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// App holds host-application-level settings.
type App struct {
	// ID is the host application identifier. The vault namespace is derived
	// from it by appending the fixed ".sdk" suffix.
	ID string `env:"ID" json:"id"`

	// Passphrase is the secret the encryption key is derived from. Must be
	// kept confidential; prefer the APP_PASSPHRASE environment variable
	// over the -p flag in shared environments.
	Passphrase string `env:"PASSPHRASE" json:"passphrase"`

	// SaltFile overrides the machine-id file the device salt is read from.
	// Empty means the conventional machine-id locations are tried.
	SaltFile string `env:"SALT_FILE" json:"salt_file"`

	// Copy places the loaded access token on the system clipboard after a
	// successful load.
	Copy bool `env:"COPY" json:"copy"`
}

// Storage selects the key-value store backend.
type Storage struct {
	// Driver is one of memory, sqlite, postgres, keyring. Defaults to
	// memory when unset.
	Driver string `env:"DRIVER" json:"driver"`

	// DSN is the Postgres connection string (postgres driver only).
	DSN string `env:"DSN" json:"dsn"`

	// SQLitePath is the SQLite database file path (sqlite driver only).
	SQLitePath string `env:"SQLITE_PATH" json:"sqlite_path"`
}

// Supported storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverKeyring  = "keyring"
)

// applyDefaults fills in values that have a sensible fallback.
func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverMemory
	}
}

// validate checks the merged configuration for completeness.
func (c *Config) validate() error {
	if c.App.ID == "" {
		return ErrNoAppID
	}

	switch c.Storage.Driver {
	case DriverMemory, DriverKeyring:
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return ErrNoSQLitePath
		}
	case DriverPostgres:
		if c.Storage.DSN == "" {
			return ErrNoDSN
		}
	default:
		return ErrUnknownDriver
	}

	return nil
}

// GetConfig builds the effective configuration from environment variables,
// command-line flags and the optional JSON file, in that precedence order.
func GetConfig() (*Config, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
