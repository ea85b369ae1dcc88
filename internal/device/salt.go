// Package device resolves the device-bound salt used for password-based
// key derivation. The salt must be stable for the lifetime of an
// installation: if it changes between a save and the matching load, every
// stored ciphertext becomes undecryptable.
package device

//go:generate mockgen -source=salt.go -destination=../mock/salt_mock.go -package=mock

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrSaltUnavailable is returned when no device salt can be resolved. It is
// deliberately distinct from the codec's crypto errors so callers can tell
// "salt missing" apart from "wrong passphrase".
var ErrSaltUnavailable = errors.New("device salt unavailable")

// SaltSource produces the stable, device-bound byte sequence used as the
// password-based-encryption salt.
type SaltSource interface {
	DeviceSalt() ([]byte, error)
}

type fixedSaltSource struct {
	salt []byte
}

// NewFixedSaltSource returns a source that always yields salt. Used by tests
// and by deployments that manage the installation identifier themselves.
func NewFixedSaltSource(salt []byte) SaltSource {
	return &fixedSaltSource{salt: salt}
}

func (s *fixedSaltSource) DeviceSalt() ([]byte, error) {
	if len(s.salt) == 0 {
		return nil, fmt.Errorf("%w: empty fixed salt", ErrSaltUnavailable)
	}
	return s.salt, nil
}

type machineIDSaltSource struct {
	paths []string
}

// NewMachineIDSaltSource returns a source reading the installation
// identifier from the first readable, non-empty file among paths. With no
// paths given it falls back to the conventional machine-id locations.
func NewMachineIDSaltSource(paths ...string) SaltSource {
	if len(paths) == 0 {
		paths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}
	}
	return &machineIDSaltSource{paths: paths}
}

func (s *machineIDSaltSource) DeviceSalt() ([]byte, error) {
	for _, path := range s.paths {
		raw, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		id := strings.TrimSpace(string(raw))
		if id != "" {
			return []byte(id), nil
		}
	}

	return nil, fmt.Errorf("%w: no machine id found in %s", ErrSaltUnavailable, strings.Join(s.paths, ", "))
}
