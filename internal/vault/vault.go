// SPDX-License-Identifier: Apache-2.0

// Package vault persists an encrypted access-token record to a namespaced
// key-value store and recovers it later given the same passphrase and
// device salt.
//
// The contract is all-or-nothing: the store either holds a complete,
// decryptable four-field record or nothing. Any failure mid-save or
// mid-load triggers a compensating clear of the namespace before the error
// is returned, so a caller never observes a partially written or partially
// decryptable record. The compensating clear is best-effort — with a store
// that implements [store.BatchWriter] the four writes additionally commit
// as one transaction.
//
// The vault is a synchronous facade: no retries, no internal goroutines, no
// timeouts beyond context propagation to the store. Concurrent calls
// against the same namespace must be serialized by the caller.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/oauthkit/token-vault/internal/crypto"
	"github.com/oauthkit/token-vault/internal/device"
	"github.com/oauthkit/token-vault/internal/logger"
	"github.com/oauthkit/token-vault/internal/store"
	"github.com/oauthkit/token-vault/models"
)

// Fixed storage keys within the namespace, one per token record field.
const (
	keyAccessToken  = "access_token"
	keyExpiresAt    = "expires_at"
	keyRefreshToken = "refresh_token"
	keyUserID       = "user_id"
)

// storageKeys fixes the write and read order of the record fields.
var storageKeys = [...]string{keyAccessToken, keyExpiresAt, keyRefreshToken, keyUserID}

// Vault owns the all-or-nothing persistence contract for one token record.
// All collaborators are injected so stores and salt sources can be swapped
// in tests.
type Vault struct {
	store    store.KeyValueStore
	codec    crypto.Codec
	salts    device.SaltSource
	resolver Resolver
	logger   *logger.Logger
}

// New constructs a Vault around its collaborators.
func New(kv store.KeyValueStore, codec crypto.Codec, salts device.SaltSource, resolver Resolver, log *logger.Logger) *Vault {
	return &Vault{
		store:    kv,
		codec:    codec,
		salts:    salts,
		resolver: resolver,
		logger:   log,
	}
}

// Save encrypts each field of token with the key derived from passphrase
// and the device salt, then writes all four ciphertexts under the resolved
// namespace. On any failure the namespace is cleared before the error is
// returned; a previously stored record does not survive a failed save.
func (v *Vault) Save(ctx context.Context, passphrase string, token models.AccessToken) error {
	namespace := v.resolver.Namespace()

	salt, err := v.salts.DeviceSalt()
	if err != nil {
		return fmt.Errorf("resolve device salt: %w", err)
	}

	fields := map[string]string{
		keyAccessToken:  token.AccessToken,
		keyExpiresAt:    strconv.FormatInt(token.ExpiresAt, 10),
		keyRefreshToken: token.RefreshToken,
		keyUserID:       token.UserID,
	}

	encrypted := make(map[string]string, len(fields))
	for _, key := range storageKeys {
		ct, err := v.codec.Encrypt(passphrase, salt, fields[key])
		if err != nil {
			v.clearAfterFailure(ctx, namespace)
			return fmt.Errorf("encrypt %s: %w", key, err)
		}
		encrypted[key] = string(ct)
	}

	if batch, ok := v.store.(store.BatchWriter); ok {
		if err := batch.PutAll(ctx, namespace, encrypted); err != nil {
			v.clearAfterFailure(ctx, namespace)
			return fmt.Errorf("write token record: %w", err)
		}
	} else {
		for _, key := range storageKeys {
			if err := v.store.Put(ctx, namespace, key, encrypted[key]); err != nil {
				v.clearAfterFailure(ctx, namespace)
				return fmt.Errorf("write %s: %w", key, err)
			}
		}
	}

	v.logger.Debug().Str("namespace", namespace).Msg("token record saved")
	return nil
}

// Load reads and decrypts the stored token record. A namespace holding no
// record yields (nil, nil), not an error. Any decryption or parse failure
// clears the namespace and returns the wrapped error: a record that cannot
// be recovered in full is not recovered at all.
func (v *Vault) Load(ctx context.Context, passphrase string) (*models.AccessToken, error) {
	namespace := v.resolver.Namespace()

	present, err := v.store.Contains(ctx, namespace, keyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("check token record: %w", err)
	}
	if !present {
		return nil, nil
	}

	salt, err := v.salts.DeviceSalt()
	if err != nil {
		return nil, fmt.Errorf("resolve device salt: %w", err)
	}

	plain := make(map[string]string, len(storageKeys))
	for _, key := range storageKeys {
		ct, ok, err := v.store.Get(ctx, namespace, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if !ok {
			// A subset of the four keys is a corrupt record, never a
			// partial result.
			v.clearAfterFailure(ctx, namespace)
			return nil, fmt.Errorf("%w: incomplete record, %s missing", ErrFormat, key)
		}

		pt, err := v.codec.Decrypt(passphrase, salt, models.Ciphertext(ct))
		if err != nil {
			v.clearAfterFailure(ctx, namespace)
			return nil, fmt.Errorf("decrypt %s: %w", key, err)
		}
		plain[key] = pt
	}

	expiresAt, err := strconv.ParseInt(plain[keyExpiresAt], 10, 64)
	if err != nil {
		v.clearAfterFailure(ctx, namespace)
		return nil, fmt.Errorf("%w: expires_at %q is not an integer", ErrFormat, plain[keyExpiresAt])
	}

	v.logger.Debug().Str("namespace", namespace).Msg("token record loaded")

	return &models.AccessToken{
		AccessToken:  plain[keyAccessToken],
		ExpiresAt:    expiresAt,
		RefreshToken: plain[keyRefreshToken],
		UserID:       plain[keyUserID],
	}, nil
}

// Clear removes the record's four keys from the resolved namespace. It is
// idempotent: clearing an empty namespace succeeds.
func (v *Vault) Clear(ctx context.Context) error {
	namespace := v.resolver.Namespace()

	var errs []error
	for _, key := range storageKeys {
		if err := v.store.Remove(ctx, namespace, key); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}

	return errors.Join(errs...)
}

// clearAfterFailure is the compensating action for a failed save or load.
// Its own failure is only logged: the original error must reach the caller.
func (v *Vault) clearAfterFailure(ctx context.Context, namespace string) {
	for _, key := range storageKeys {
		if err := v.store.Remove(ctx, namespace, key); err != nil {
			v.logger.Warn().Err(err).
				Str("namespace", namespace).
				Str("key", key).
				Msg("compensating clear failed")
		}
	}
}
