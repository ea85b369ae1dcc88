package vault

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oauthkit/token-vault/internal/crypto"
	"github.com/oauthkit/token-vault/internal/device"
	"github.com/oauthkit/token-vault/internal/logger"
	"github.com/oauthkit/token-vault/internal/mock"
	"github.com/oauthkit/token-vault/internal/store"
	"github.com/oauthkit/token-vault/models"
)

var testToken = models.AccessToken{
	AccessToken:  "abc123",
	ExpiresAt:    1700000000,
	RefreshToken: "ref456",
	UserID:       "u-42",
}

// newTestVault builds a vault over an in-memory store with the real codec,
// a fixed "device-xyz" salt and the "com.example.app" host identifier.
func newTestVault(t *testing.T) (*Vault, store.KeyValueStore) {
	t.Helper()

	kv := store.NewMemoryStore()
	v := New(
		kv,
		crypto.NewCodec(),
		device.NewFixedSaltSource([]byte("device-xyz")),
		NewAppResolver("com.example.app"),
		logger.Nop(),
	)
	return v, kv
}

func assertNamespaceEmpty(t *testing.T, kv store.KeyValueStore, namespace string) {
	t.Helper()

	for _, key := range storageKeys {
		present, err := kv.Contains(context.Background(), namespace, key)
		require.NoError(t, err)
		assert.Falsef(t, present, "key %s must be absent", key)
	}
}

func TestVault_EndToEndScenario(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Save(ctx, "k1", testToken))

	// The record round-trips under the right passphrase.
	got, err := v.Load(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testToken, *got)

	// A wrong passphrase fails closed and wipes the namespace.
	_, err = v.Load(ctx, "k2")
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrCrypto)
	assertNamespaceEmpty(t, kv, "com.example.app.sdk")

	// Save again, clear, and the record is gone.
	require.NoError(t, v.Save(ctx, "k1", testToken))
	require.NoError(t, v.Clear(ctx))

	got, err = v.Load(ctx, "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVault_NamespaceHasSDKSuffix(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Save(ctx, "k1", testToken))

	present, err := kv.Contains(ctx, "com.example.app.sdk", "access_token")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestVault_Load_AbsentRecord(t *testing.T) {
	v, _ := newTestVault(t)

	got, err := v.Load(context.Background(), "k1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVault_Save_AllOrNothingOnEncryptFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	kv := store.NewMemoryStore()
	salt := []byte("device-xyz")
	mockCodec := mock.NewMockCodec(ctrl)

	v := New(kv, mockCodec, device.NewFixedSaltSource(salt), NewAppResolver("com.example.app"), logger.Nop())
	ctx := context.Background()

	// A previous record is in place; a failed save must not leave it behind.
	realCodec := crypto.NewCodec()
	old := New(kv, realCodec, device.NewFixedSaltSource(salt), NewAppResolver("com.example.app"), logger.Nop())
	require.NoError(t, old.Save(ctx, "k1", testToken))

	encodingErr := fmt.Errorf("%w: decrypted value is not valid utf-8", crypto.ErrEncoding)
	gomock.InOrder(
		mockCodec.EXPECT().Encrypt("k1", salt, "abc123").Return(models.Ciphertext("ct-1"), nil),
		mockCodec.EXPECT().Encrypt("k1", salt, "1700000000").Return(models.Ciphertext("ct-2"), nil),
		// Third of four fields fails.
		mockCodec.EXPECT().Encrypt("k1", salt, "ref456").Return(models.Ciphertext(""), encodingErr),
	)

	err := v.Save(ctx, "k1", testToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrEncoding)

	assertNamespaceEmpty(t, kv, "com.example.app.sdk")
}

func TestVault_Save_ClearsOnSequentialPutFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The store mock does not implement BatchWriter, so the vault takes the
	// sequential write path.
	mockStore := mock.NewMockKeyValueStore(ctrl)
	v := New(
		mockStore,
		crypto.NewCodec(),
		device.NewFixedSaltSource([]byte("device-xyz")),
		NewAppResolver("com.example.app"),
		logger.Nop(),
	)
	ctx := context.Background()
	ns := "com.example.app.sdk"

	putErr := errors.New("store unavailable")
	gomock.InOrder(
		mockStore.EXPECT().Put(ctx, ns, "access_token", gomock.Any()).Return(nil),
		mockStore.EXPECT().Put(ctx, ns, "expires_at", gomock.Any()).Return(nil),
		mockStore.EXPECT().Put(ctx, ns, "refresh_token", gomock.Any()).Return(putErr),
		// Compensating clear removes every key, including the written ones.
		mockStore.EXPECT().Remove(ctx, ns, "access_token").Return(nil),
		mockStore.EXPECT().Remove(ctx, ns, "expires_at").Return(nil),
		mockStore.EXPECT().Remove(ctx, ns, "refresh_token").Return(nil),
		mockStore.EXPECT().Remove(ctx, ns, "user_id").Return(nil),
	)

	err := v.Save(ctx, "k1", testToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, putErr)
}

func TestVault_Save_SaltUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No store expectations: the vault must not touch the store when the
	// salt cannot be resolved.
	mockStore := mock.NewMockKeyValueStore(ctrl)
	v := New(
		mockStore,
		crypto.NewCodec(),
		device.NewFixedSaltSource(nil),
		NewAppResolver("com.example.app"),
		logger.Nop(),
	)

	err := v.Save(context.Background(), "k1", testToken)
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrSaltUnavailable)
}

func TestVault_Load_DecryptFailureClearsNamespace(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Save(ctx, "k1", testToken))

	_, err := v.Load(ctx, "wrong-passphrase")
	require.Error(t, err)
	assert.ErrorIs(t, err, crypto.ErrCrypto)

	assertNamespaceEmpty(t, kv, "com.example.app.sdk")
}

func TestVault_Load_BadExpiresAtFormat(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()
	ns := "com.example.app.sdk"

	// Store a record whose expires_at decrypts to a non-integer.
	codec := crypto.NewCodec()
	salt := []byte("device-xyz")
	fields := map[string]string{
		"access_token":  "abc123",
		"expires_at":    "not-a-number",
		"refresh_token": "ref456",
		"user_id":       "u-42",
	}
	for key, value := range fields {
		ct, err := codec.Encrypt("k1", salt, value)
		require.NoError(t, err)
		require.NoError(t, kv.Put(ctx, ns, key, string(ct)))
	}

	_, err := v.Load(ctx, "k1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)

	assertNamespaceEmpty(t, kv, ns)
}

func TestVault_Load_IncompleteRecordIsCorrupt(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()
	ns := "com.example.app.sdk"

	// Only two of the four keys present.
	codec := crypto.NewCodec()
	salt := []byte("device-xyz")
	for key, value := range map[string]string{
		"access_token": "abc123",
		"expires_at":   "1700000000",
	} {
		ct, err := codec.Encrypt("k1", salt, value)
		require.NoError(t, err)
		require.NoError(t, kv.Put(ctx, ns, key, string(ct)))
	}

	got, err := v.Load(ctx, "k1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFormat)
	assert.Nil(t, got)

	assertNamespaceEmpty(t, kv, ns)
}

func TestVault_Load_SaltUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSalt := mock.NewMockSaltSource(ctrl)
	kv := store.NewMemoryStore()
	ctx := context.Background()

	// Save with a working salt source, then lose the salt.
	saver := New(kv, crypto.NewCodec(), device.NewFixedSaltSource([]byte("device-xyz")), NewAppResolver("com.example.app"), logger.Nop())
	require.NoError(t, saver.Save(ctx, "k1", testToken))

	mockSalt.EXPECT().DeviceSalt().Return(nil, device.ErrSaltUnavailable)

	v := New(kv, crypto.NewCodec(), mockSalt, NewAppResolver("com.example.app"), logger.Nop())
	_, err := v.Load(ctx, "k1")
	require.Error(t, err)
	assert.ErrorIs(t, err, device.ErrSaltUnavailable)

	// Salt unavailability is an external failure, not corruption: the
	// stored record must survive.
	present, err := kv.Contains(ctx, "com.example.app.sdk", "access_token")
	require.NoError(t, err)
	assert.True(t, present)
}

func TestVault_Clear_Idempotent(t *testing.T) {
	v, kv := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Clear(ctx))
	require.NoError(t, v.Clear(ctx))
	assertNamespaceEmpty(t, kv, "com.example.app.sdk")

	require.NoError(t, v.Save(ctx, "k1", testToken))
	require.NoError(t, v.Clear(ctx))
	require.NoError(t, v.Clear(ctx))
	assertNamespaceEmpty(t, kv, "com.example.app.sdk")
}

func TestVault_Save_EmptyFieldsRoundTrip(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	empty := models.AccessToken{ExpiresAt: 0}
	require.NoError(t, v.Save(ctx, "k1", empty))

	got, err := v.Load(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, empty, *got)
}

func TestVault_Save_OverwritesPreviousRecord(t *testing.T) {
	v, _ := newTestVault(t)
	ctx := context.Background()

	require.NoError(t, v.Save(ctx, "k1", testToken))

	updated := models.AccessToken{
		AccessToken:  "new-token",
		ExpiresAt:    1800000000,
		RefreshToken: "new-refresh",
		UserID:       "u-42",
	}
	require.NoError(t, v.Save(ctx, "k1", updated))

	got, err := v.Load(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, updated, *got)
}
