package configs

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/PolarWolf314/git-agecrypt/internal/secrets"
)

// IdentityKey is the multi-valued local git config key holding identity paths.
const IdentityKey = "git-agecrypt.config.identity"

// KeyValueStore is a multi-valued key/value store, such as a repository's
// local git config.
type KeyValueStore interface {
	ConfigGetAll(key string) ([]string, error)
	ConfigAdd(key, value string) error
	ConfigUnset(key, value string) error
}

// IdentityStatus is an identity path with the result of validating it.
type IdentityStatus struct {
	Path string
	Err  error
}

// Valid reports whether the identity parsed when it was listed.
func (s IdentityStatus) Valid() bool {
	return s.Err == nil
}

// IdentityStore keeps the private identity paths of one clone. Nothing in
// it is ever committed.
type IdentityStore struct {
	Store KeyValueStore

	// Validate checks an identity file. Defaults to secrets.ValidateIdentity.
	Validate func(path string) error
}

func (s IdentityStore) validate(path string) error {
	if s.Validate != nil {
		return s.Validate(path)
	}
	return secrets.ValidateIdentity(path)
}

// Paths returns the configured identity paths.
func (s IdentityStore) Paths() ([]string, error) {
	paths, err := s.Store.ConfigGetAll(IdentityKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IdentityKey, err)
	}
	return paths, nil
}

// Add stores the absolute form of identity after checking that it parses.
// An identity that is already configured is reported as unchanged.
func (s IdentityStore) Add(identity string) (bool, error) {
	path, err := filepath.Abs(identity)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", identity, err)
	}
	if err := s.validate(path); err != nil {
		return false, err
	}

	existing, err := s.Paths()
	if err != nil {
		return false, err
	}
	if slices.Contains(existing, path) {
		return false, nil
	}

	if err := s.Store.ConfigAdd(IdentityKey, path); err != nil {
		return false, fmt.Errorf("failed to add identity %s: %w", path, err)
	}
	return true, nil
}

// Remove forgets identity. Removing an identity that is not configured is
// reported as unchanged.
func (s IdentityStore) Remove(identity string) (bool, error) {
	existing, err := s.Paths()
	if err != nil {
		return false, err
	}

	path := identity
	if !slices.Contains(existing, path) {
		if path, err = filepath.Abs(identity); err != nil || !slices.Contains(existing, path) {
			return false, nil
		}
	}

	if err := s.Store.ConfigUnset(IdentityKey, path); err != nil {
		return false, fmt.Errorf("failed to remove identity %s: %w", path, err)
	}
	return true, nil
}

// List returns every configured identity, each validated again so that
// identities whose key file has since become unusable are flagged.
func (s IdentityStore) List() ([]IdentityStatus, error) {
	paths, err := s.Paths()
	if err != nil {
		return nil, err
	}

	statuses := make([]IdentityStatus, 0, len(paths))
	for _, p := range paths {
		statuses = append(statuses, IdentityStatus{Path: p, Err: s.validate(p)})
	}
	return statuses, nil
}
