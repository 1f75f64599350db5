// Package jsonfile provides JSON file-based persistence for the session
// identity.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/runhub/runhub/internal/core/identity"
)

// Storage keys, mirroring the browser client's localStorage names.
const (
	keyUserID = "runhub_user_id"
	keyAPIKey = "runhub_api_key"
)

// identityFile is the root JSON structure stored on disk.
type identityFile struct {
	Entries map[string]string `json:"entries"`
}

// IdentityStore implements identity.Store using a JSON file.
type IdentityStore struct {
	path string
	mu   sync.RWMutex
}

// NewIdentityStore creates a new JSON file identity store at the given path.
func NewIdentityStore(path string) *IdentityStore {
	return &IdentityStore{path: path}
}

// lockPath returns the path to the lock file.
func (s *IdentityStore) lockPath() string {
	return s.path + ".lock"
}

// withFileLock acquires a file lock, executes fn, then releases the lock.
// Guards against a second runhub process writing the same file.
func (s *IdentityStore) withFileLock(lockType int, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(s.lockPath(), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if err := syscall.Flock(int(f.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire file lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN) //nolint:errcheck

	return fn()
}

// Load returns the stored identity. Returns identity.ErrNoIdentity when no
// user id has been persisted.
func (s *IdentityStore) Load(ctx context.Context) (identity.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var id identity.Identity

	err := s.withFileLock(syscall.LOCK_SH, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		id = identity.Identity{
			UserID: file.Entries[keyUserID],
			APIKey: file.Entries[keyAPIKey],
		}
		return nil
	})
	if err != nil {
		return identity.Identity{}, err
	}

	if id.IsZero() {
		return identity.Identity{}, identity.ErrNoIdentity
	}

	return id, nil
}

// Save creates or replaces the stored identity.
func (s *IdentityStore) Save(ctx context.Context, id identity.Identity) error {
	if id.IsZero() {
		return fmt.Errorf("refusing to save identity without a user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withFileLock(syscall.LOCK_EX, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		file.Entries[keyUserID] = id.UserID
		if id.APIKey != "" {
			file.Entries[keyAPIKey] = id.APIKey
		} else {
			delete(file.Entries, keyAPIKey)
		}
		return s.save(file)
	})
}

// Clear removes the stored identity. Clearing an empty store is a no-op.
func (s *IdentityStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.withFileLock(syscall.LOCK_EX, func() error {
		file, err := s.load()
		if err != nil {
			return err
		}

		delete(file.Entries, keyUserID)
		delete(file.Entries, keyAPIKey)
		return s.save(file)
	})
}

// load reads the identity file from disk.
// Returns an empty file if it doesn't exist.
func (s *IdentityStore) load() (identityFile, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return identityFile{Entries: make(map[string]string)}, nil
		}
		return identityFile{}, fmt.Errorf("read identity file: %w", err)
	}

	if len(data) == 0 {
		return identityFile{Entries: make(map[string]string)}, nil
	}

	var file identityFile
	if err := json.Unmarshal(data, &file); err != nil {
		return identityFile{}, fmt.Errorf("parse %s: %w", s.path, err)
	}

	if file.Entries == nil {
		file.Entries = make(map[string]string)
	}

	return file, nil
}

// save writes the identity file to disk atomically.
// Uses write-to-temp-then-rename to prevent corruption from interrupted writes.
func (s *IdentityStore) save(file identityFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp) // best effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
