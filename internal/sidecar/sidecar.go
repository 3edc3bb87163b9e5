package sidecar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/PolarWolf314/git-agecrypt/internal/utils"
)

// DirName is the cache directory name inside the git directory.
const DirName = "git-agecrypt"

// Kind selects which blob of a file is cached.
type Kind string

const (
	// KindHash is the 32 byte digest of the last plaintext.
	KindHash Kind = "hash"
	// KindCiphertext is the last ciphertext emitted by clean.
	KindCiphertext Kind = "ciphertext"
)

// Cache is a per-file blob cache. Load reports a missing entry with
// found == false, not an error.
type Cache interface {
	Store(path string, kind Kind, data []byte) error
	Load(path string, kind Kind) (data []byte, found bool, err error)
	Clear() error
}

// Store is the filesystem Cache kept under <git dir>/git-agecrypt.
type Store struct {
	Dir string
}

// New returns the Store of the repository whose git directory is gitDir.
func New(gitDir string) *Store {
	return &Store{Dir: filepath.Join(gitDir, DirName)}
}

// entryEscaper flattens a slash separated path into one file name. Every
// '!' in the result starts a two character escape, so distinct paths never
// share an entry.
var entryEscaper = strings.NewReplacer("!", "!!", "/", "!_")

// EntryName is the file name caching kind for the repository relative path.
func EntryName(path string, kind Kind) string {
	return entryEscaper.Replace(filepath.ToSlash(path)) + "." + string(kind)
}

func (s *Store) entry(path string, kind Kind) string {
	return filepath.Join(s.Dir, EntryName(path, kind))
}

// Store replaces the cached blob, creating the cache directory if needed.
func (s *Store) Store(path string, kind Kind, data []byte) error {
	if err := utils.WriteFileAtomic(s.entry(path, kind), data, 0600); err != nil {
		return fmt.Errorf("failed to cache %s of %s: %w", kind, path, err)
	}
	return nil
}

// Load returns the cached blob if one was stored.
func (s *Store) Load(path string, kind Kind) ([]byte, bool, error) {
	data, err := os.ReadFile(s.entry(path, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached %s of %s: %w", kind, path, err)
	}
	return data, true, nil
}

// Clear removes every entry. A missing cache directory is not an error.
func (s *Store) Clear() error {
	return utils.RemoveDirIfExists(s.Dir)
}

// MemoryCache is an in-memory Cache that stands in for Store in tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Store(path string, kind Kind, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[EntryName(path, kind)] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryCache) Load(path string, kind Kind) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[EntryName(path, kind)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemoryCache) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

// Len returns the number of cached entries.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
