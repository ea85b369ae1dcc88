package crypto

import "errors"

// Sentinel errors returned by codec operations. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrCrypto is returned when key derivation, cipher initialization,
	// encryption or decryption fails: bad key material, malformed base64,
	// truncated blob, or an authentication-tag mismatch caused by a wrong
	// passphrase, a changed salt, or corrupted ciphertext.
	ErrCrypto = errors.New("cryptographic operation failed")

	// ErrEncoding is returned when a decrypted value is not valid UTF-8 and
	// therefore cannot be handed back as a text field.
	ErrEncoding = errors.New("text encoding conversion failed")
)
