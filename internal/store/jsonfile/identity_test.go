package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runhub/runhub/internal/core/identity"
)

func TestIdentityStore_SaveAndLoad(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))
	ctx := context.Background()

	err := store.Save(ctx, identity.Identity{UserID: "42", APIKey: "abc"})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	id, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if id.UserID != "42" {
		t.Errorf("UserID = %q, want %q", id.UserID, "42")
	}
	if id.APIKey != "abc" {
		t.Errorf("APIKey = %q, want %q", id.APIKey, "abc")
	}
}

func TestIdentityStore_LoadEmpty(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))

	_, err := store.Load(context.Background())
	if !errors.Is(err, identity.ErrNoIdentity) {
		t.Errorf("Load error = %v, want ErrNoIdentity", err)
	}
}

func TestIdentityStore_SaveWithoutAPIKey(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))
	ctx := context.Background()

	// Save with a key, then replace without one. The old key must not linger.
	if err := store.Save(ctx, identity.Identity{UserID: "42", APIKey: "abc"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Save(ctx, identity.Identity{UserID: "43"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	id, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id.UserID != "43" {
		t.Errorf("UserID = %q, want %q", id.UserID, "43")
	}
	if id.APIKey != "" {
		t.Errorf("APIKey = %q, want empty", id.APIKey)
	}
}

func TestIdentityStore_SaveRejectsZeroIdentity(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))

	if err := store.Save(context.Background(), identity.Identity{}); err == nil {
		t.Fatal("Save of zero identity should fail")
	}
}

func TestIdentityStore_Clear(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))
	ctx := context.Background()

	if err := store.Save(ctx, identity.Identity{UserID: "42"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	_, err := store.Load(ctx)
	if !errors.Is(err, identity.ErrNoIdentity) {
		t.Errorf("Load after Clear error = %v, want ErrNoIdentity", err)
	}
}

func TestIdentityStore_ClearEmptyIsNoop(t *testing.T) {
	store := NewIdentityStore(filepath.Join(t.TempDir(), "identity.json"))

	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear of empty store failed: %v", err)
	}
}

func TestIdentityStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewIdentityStore(path)
	_, err := store.Load(context.Background())
	if err == nil {
		t.Fatal("Load of corrupt file should fail")
	}
}
