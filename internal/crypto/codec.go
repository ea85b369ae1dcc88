// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"

	"github.com/oauthkit/token-vault/models"
)

// pbeCodec is the private implementation of [Codec].
type pbeCodec struct {
	// PBKDF2 tuning parameters. Stored in the struct so they can be adjusted
	// per deployment target, but the iteration count is part of the on-disk
	// format contract: changing it makes existing ciphertexts undecryptable.
	iterations int
	keyLen     int
}

// NewCodec constructs a [Codec] performing PBKDF2-SHA256 key derivation
// followed by AES-256-GCM with a fresh random nonce per encrypted value.
//
// Fixed parameters:
//   - iteration count: 4096
//   - key length:      32 bytes (256 bits)
//
// The derived key is deterministic for a given (passphrase, salt) pair, which
// is what allows decryption without storing any key material. Integrity comes
// from the GCM authentication tag: tampering or a wrong key fails closed.
func NewCodec() Codec {
	return &pbeCodec{
		iterations: 4096,
		keyLen:     32, // 256 bits
	}
}

// Encrypt implements [Codec]. The output blob layout is
// nonce (12 bytes) ‖ ciphertext, base64-encoded with the standard alphabet
// and no line wrapping.
func (c *pbeCodec) Encrypt(passphrase string, salt []byte, plaintext string) (models.Ciphertext, error) {
	gcm, err := c.aead(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %s", ErrCrypto, err)
	}

	ct := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	blob := append(nonce, ct...)

	return models.Ciphertext(base64.StdEncoding.EncodeToString(blob)), nil
}

// Decrypt implements [Codec]. An empty ciphertext maps to an empty plaintext;
// everything else must be a valid base64 blob produced by [pbeCodec.Encrypt]
// under the same passphrase and salt.
func (c *pbeCodec) Decrypt(passphrase string, salt []byte, ciphertext models.Ciphertext) (string, error) {
	if ciphertext == "" {
		return "", nil
	}

	blob, err := base64.StdEncoding.DecodeString(string(ciphertext))
	if err != nil {
		return "", fmt.Errorf("%w: decode base64: %s", ErrCrypto, err)
	}

	gcm, err := c.aead(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrCrypto)
	}
	nonce, ct := blob[:nonceSize], blob[nonceSize:]

	// An authentication failure here almost always means a wrong passphrase
	// or a salt that changed since encryption.
	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return "", fmt.Errorf("%w: decrypt: %s", ErrCrypto, err)
	}

	if !utf8.Valid(plaintext) {
		return "", fmt.Errorf("%w: decrypted value is not valid utf-8", ErrEncoding)
	}

	return string(plaintext), nil
}

// aead derives the symmetric key from (passphrase, salt) and builds the
// AES-GCM cipher around it.
func (c *pbeCodec) aead(passphrase string, salt []byte) (cipher.AEAD, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", ErrCrypto)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrCrypto)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, c.iterations, c.keyLen, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %s", ErrCrypto, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %s", ErrCrypto, err)
	}

	return gcm, nil
}
