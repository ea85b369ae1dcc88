package models

import "time"

// AccessToken is the plaintext credential record protected by the vault.
//
// It is a pure value type: the caller constructs it before a save, the vault
// reconstructs a fresh instance on load, and equality is defined entirely by
// the field values. All four fields exist together or not at all — there is
// no partial record.
type AccessToken struct {
	// AccessToken is the opaque bearer token issued by the identity platform.
	AccessToken string `json:"access_token"`

	// ExpiresAt is the absolute expiry moment as unix seconds.
	ExpiresAt int64 `json:"expires_at"`

	// RefreshToken is the opaque token used to obtain a new access token.
	RefreshToken string `json:"refresh_token"`

	// UserID is the opaque identifier of the token owner.
	UserID string `json:"user_id"`
}

// Expired reports whether the token's expiry moment has passed relative to now.
func (t AccessToken) Expired(now time.Time) bool {
	return t.ExpiresAt <= now.Unix()
}

// ExpiresAtTime returns the expiry moment as a time.Time in the local zone.
func (t AccessToken) ExpiresAtTime() time.Time {
	return time.Unix(t.ExpiresAt, 0)
}
