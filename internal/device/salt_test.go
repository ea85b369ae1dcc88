package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFixedSaltSource(t *testing.T) {
	src := NewFixedSaltSource([]byte("device-xyz"))

	salt, err := src.DeviceSalt()
	if err != nil {
		t.Fatalf("DeviceSalt error: %v", err)
	}
	if string(salt) != "device-xyz" {
		t.Fatalf("salt = %q, want %q", salt, "device-xyz")
	}
}

func TestFixedSaltSource_Empty(t *testing.T) {
	src := NewFixedSaltSource(nil)

	_, err := src.DeviceSalt()
	if !errors.Is(err, ErrSaltUnavailable) {
		t.Fatalf("expected ErrSaltUnavailable, got %v", err)
	}
}

func TestMachineIDSaltSource_ReadsFirstNonEmptyFile(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty-id")
	good := filepath.Join(dir, "machine-id")

	if err := os.WriteFile(empty, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(good, []byte("0123456789abcdef\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := NewMachineIDSaltSource(filepath.Join(dir, "missing"), empty, good)

	salt, err := src.DeviceSalt()
	if err != nil {
		t.Fatalf("DeviceSalt error: %v", err)
	}
	if string(salt) != "0123456789abcdef" {
		t.Fatalf("salt = %q, want trimmed machine id", salt)
	}
}

func TestMachineIDSaltSource_Unavailable(t *testing.T) {
	dir := t.TempDir()
	src := NewMachineIDSaltSource(filepath.Join(dir, "missing"))

	_, err := src.DeviceSalt()
	if !errors.Is(err, ErrSaltUnavailable) {
		t.Fatalf("expected ErrSaltUnavailable, got %v", err)
	}
}
