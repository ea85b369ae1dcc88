package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/oauthkit/token-vault/internal/logger"
)

// keyringStore is a [KeyValueStore] over the OS credential store (Keychain
// on macOS, Secret Service on Linux, Credential Manager on Windows). The
// vault namespace maps to the keyring service name and the storage key to
// the keyring user name.
//
// The OS keyring has no batch API, so this store intentionally does not
// implement [BatchWriter]; the vault falls back to sequential writes with
// its compensating clear.
type keyringStore struct {
	logger *logger.Logger
}

// NewKeyringStore constructs a store backed by the OS credential store.
func NewKeyringStore(log *logger.Logger) KeyValueStore {
	return &keyringStore{logger: log}
}

func (s *keyringStore) Put(_ context.Context, namespace, key, value string) error {
	if err := keyring.Set(namespace, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %s", ErrKeyring, key, err)
	}
	return nil
}

func (s *keyringStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	value, err := keyring.Get(namespace, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %s", ErrKeyring, key, err)
	}
	return value, true, nil
}

func (s *keyringStore) Remove(_ context.Context, namespace, key string) error {
	err := keyring.Delete(namespace, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: delete %s: %s", ErrKeyring, key, err)
	}
	return nil
}

func (s *keyringStore) Contains(_ context.Context, namespace, key string) (bool, error) {
	_, err := keyring.Get(namespace, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: get %s: %s", ErrKeyring, key, err)
	}
	return true, nil
}
