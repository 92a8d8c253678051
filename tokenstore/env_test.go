package tokenstore

import (
	"context"
	"errors"
	"testing"
)

func TestEnvStoreRead(t *testing.T) {
	t.Setenv("RLAUTH_TEST_TOKEN", " "+testToken+"\n")

	store, err := NewEnvStore("RLAUTH_TEST_TOKEN")
	if err != nil {
		t.Fatalf("NewEnvStore: %v", err)
	}
	got, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got != testToken {
		t.Errorf("Read = %q, want %q", got, testToken)
	}
}

func TestEnvStoreEmpty(t *testing.T) {
	t.Setenv("RLAUTH_TEST_TOKEN", "")

	store, err := NewEnvStore("RLAUTH_TEST_TOKEN")
	if err != nil {
		t.Fatalf("NewEnvStore: %v", err)
	}
	if _, err := store.Read(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Read = %v, want ErrNotFound", err)
	}
}

func TestNewEnvStoreUnset(t *testing.T) {
	if _, err := NewEnvStore("RLAUTH_TEST_TOKEN_UNSET"); err == nil {
		t.Error("unset variable should fail")
	}
	if _, err := NewEnvStore(""); err == nil {
		t.Error("empty key should fail")
	}
}
