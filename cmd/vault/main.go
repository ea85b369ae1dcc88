package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"

	"github.com/oauthkit/token-vault/internal/config"
	"github.com/oauthkit/token-vault/internal/crypto"
	"github.com/oauthkit/token-vault/internal/device"
	"github.com/oauthkit/token-vault/internal/logger"
	"github.com/oauthkit/token-vault/internal/store"
	"github.com/oauthkit/token-vault/internal/vault"
	"github.com/oauthkit/token-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("token-vault").WithOperationID(uuid.NewString())

	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	kv, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating store")
	}
	defer closeStore()

	v := vault.New(
		kv,
		crypto.NewCodec(),
		newSaltSource(cfg),
		vault.NewAppResolver(cfg.App.ID),
		log,
	)

	switch cmd := flag.Arg(0); cmd {
	case "save":
		err = runSave(ctx, v, cfg)
	case "load":
		err = runLoad(ctx, v, cfg, log)
	case "clear":
		err = v.Clear(ctx)
	default:
		log.Fatal().Str("command", cmd).Msg("expected one of: save, load, clear")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("vault operation failed")
	}
}

// newStore constructs the key-value store selected by the configuration and
// returns it together with its cleanup function.
func newStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (store.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return store.NewMemoryStore(), func() {}, nil
	case config.DriverKeyring:
		return store.NewKeyringStore(log), func() {}, nil
	case config.DriverSQLite:
		s, err := store.NewSQLiteStore(ctx, cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case config.DriverPostgres:
		s, err := store.NewPostgresStore(ctx, cfg.Storage.DSN, log)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newSaltSource(cfg *config.Config) device.SaltSource {
	if cfg.App.SaltFile != "" {
		return device.NewMachineIDSaltSource(cfg.App.SaltFile)
	}
	return device.NewMachineIDSaltSource()
}

// runSave reads an access token record as JSON from stdin and persists it.
func runSave(ctx context.Context, v *vault.Vault, cfg *config.Config) error {
	var token models.AccessToken
	if err := json.NewDecoder(os.Stdin).Decode(&token); err != nil {
		return fmt.Errorf("decode token record from stdin: %w", err)
	}

	return v.Save(ctx, cfg.App.Passphrase, token)
}

// runLoad prints the stored record as JSON to stdout, optionally copying
// the access token to the system clipboard.
func runLoad(ctx context.Context, v *vault.Vault, cfg *config.Config, log *logger.Logger) error {
	token, err := v.Load(ctx, cfg.App.Passphrase)
	if err != nil {
		return err
	}
	if token == nil {
		log.Info().Msg("no token record stored")
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(token); err != nil {
		return fmt.Errorf("encode token record: %w", err)
	}

	if cfg.App.Copy {
		if err := clipboard.WriteAll(token.AccessToken); err != nil {
			return fmt.Errorf("copy access token to clipboard: %w", err)
		}
		log.Info().Msg("access token copied to clipboard")
	}

	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
