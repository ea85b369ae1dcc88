package config

import (
	"flag"
	"os"
)

// ParseFlags parses all configuration flags from the process arguments.
// Positional arguments (the subcommand) are left for the caller to consume
// via flag.Args.
//
// Flags:
//
//	-app-id host application identifier
//	-p passphrase the encryption key is derived from
//	-salt-file device salt file path (machine-id override)
//	-driver storage driver: memory|sqlite|postgres|keyring
//	-d database DSN (postgres driver)
//	-f sqlite database path (sqlite driver)
//	-copy copy the access token to the clipboard on load
//	-c/-config json file path with configs
func ParseFlags() *Config {
	return parseFlags(flag.CommandLine, nil)
}

// parseFlags binds the configuration flags on fs and parses args. When args
// is nil the process arguments are used. Split out of [ParseFlags] so tests
// can run against a private FlagSet.
func parseFlags(fs *flag.FlagSet, args []string) *Config {
	var (
		appID          string
		passphrase     string
		saltFile       string
		driver         string
		databaseDSN    string
		sqlitePath     string
		copyToken      bool
		jsonConfigPath string
	)

	fs.StringVar(&appID, "app-id", "", "Host application identifier")
	fs.StringVar(&passphrase, "p", "", "Encryption passphrase")
	fs.StringVar(&saltFile, "salt-file", "", "Device salt file path")
	fs.StringVar(&driver, "driver", "", "Storage driver: memory|sqlite|postgres|keyring")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&sqlitePath, "f", "", "SQLite database path")
	fs.BoolVar(&copyToken, "copy", false, "Copy the access token to the clipboard on load")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path")

	if args == nil {
		args = os.Args[1:]
	}
	_ = fs.Parse(args) //nolint:errcheck // flag.CommandLine exits on error

	return &Config{
		App: App{
			ID:         appID,
			Passphrase: passphrase,
			SaltFile:   saltFile,
			Copy:       copyToken,
		},
		Storage: Storage{
			Driver:     driver,
			DSN:        databaseDSN,
			SQLitePath: sqlitePath,
		},
		JSONFilePath: jsonConfigPath,
	}
}
