package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

import "github.com/oauthkit/token-vault/models"

// Codec performs password-based encryption and decryption of single text
// values. It knows nothing about namespaces, stores or token records — its
// only job is to turn (passphrase, salt, plaintext) into a transport-safe
// ciphertext string and to invert that operation.
//
// The same passphrase and salt used at encryption time must be supplied at
// decryption time; the ciphertext carries no indication of which salt
// produced it, so salt stability is the caller's responsibility.
type Codec interface {
	// Encrypt derives a symmetric key from passphrase and salt and encrypts
	// plaintext into a base64 ciphertext safe to store in a text-only
	// key-value store. An empty plaintext is valid and encrypts to a
	// non-empty blob (nonce and authentication tag are always present).
	Encrypt(passphrase string, salt []byte, plaintext string) (models.Ciphertext, error)

	// Decrypt reverses Encrypt. An empty ciphertext maps to an empty
	// plaintext. A wrong passphrase or salt fails closed with [ErrCrypto];
	// it never yields a plausible-looking wrong value.
	Decrypt(passphrase string, salt []byte, ciphertext models.Ciphertext) (string, error)
}
