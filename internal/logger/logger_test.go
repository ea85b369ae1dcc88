package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLogger_NotNil(t *testing.T) {
	l := NewLogger("test")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
}

func TestNop_Disabled(t *testing.T) {
	l := Nop()
	if l.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled level, got %v", l.GetLevel())
	}
}

func TestWithOperationID_ReturnsNewLogger(t *testing.T) {
	l := Nop()
	child := l.WithOperationID("op-1")
	if child == nil {
		t.Fatal("expected non-nil child logger")
	}
	if child == l {
		t.Fatal("expected a new logger instance")
	}
}
