package utils

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetLogLevel(t *testing.T) {
	defer Log.SetLevel(logrus.InfoLevel)

	if err := SetLogLevel("WARN"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Log.GetLevel() != logrus.WarnLevel {
		t.Fatalf("expected warn level, got %s", Log.GetLevel())
	}
	if err := SetLogLevel("verbose"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("Warlock, Vault", []string{"Titan", "Vault"}) {
		t.Fatalf("expected match on Vault")
	}
	if ContainsAny("Hunter", []string{"Titan", "Warlock"}) {
		t.Fatalf("unexpected match")
	}
	if ContainsAny("Hunter", nil) {
		t.Fatalf("empty list must not match")
	}
}

func TestInSet(t *testing.T) {
	if !InSet("junk", []string{"archive", "junk"}) {
		t.Fatalf("expected junk in set")
	}
	if InSet("jun", []string{"junk"}) {
		t.Fatalf("InSet must be exact")
	}
}

func TestDBLockRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.sqlite")
	l, err := NewDBLock(path)
	if err != nil {
		t.Fatalf("NewDBLock: %v", err)
	}
	if err := l.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	if err := l.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}
}
