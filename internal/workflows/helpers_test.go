package workflows

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
	"github.com/PolarWolf314/git-agecrypt/internal/secrets"
	"github.com/PolarWolf314/git-agecrypt/internal/sidecar"
)

// newKey writes a fresh identity file and returns its path and recipient.
func newKey(t *testing.T) (string, string) {
	t.Helper()
	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.txt")
	require.NoError(t, os.WriteFile(path, []byte(id.String()+"\n"), 0600))
	return path, id.Recipient().String()
}

type staticRecipients map[string][]string

func (s staticRecipients) RecipientsFor(path string) ([]string, error) {
	r, ok := s[path]
	if !ok {
		return nil, fmt.Errorf("%w for '%s'", kerrors.ErrNoRecipients, path)
	}
	return r, nil
}

type staticIdentities []string

func (s staticIdentities) Paths() ([]string, error) {
	return append([]string(nil), s...), nil
}

// countingCipher counts encryptions done by the real age boundary.
type countingCipher struct {
	secrets.Age
	encryptions int
}

func (c *countingCipher) Encrypt(recipients []string, plaintext []byte) ([]byte, error) {
	c.encryptions++
	return c.Age.Encrypt(recipients, plaintext)
}

type fixture struct {
	filter    *Filter
	cache     *sidecar.MemoryCache
	cipher    *countingCipher
	identity  string
	recipient string
}

func newFixture(t *testing.T, file string) *fixture {
	t.Helper()
	identity, recipient := newKey(t)
	cache := sidecar.NewMemoryCache()
	cipher := &countingCipher{}
	return &fixture{
		filter: &Filter{
			Cache:      cache,
			Recipients: staticRecipients{file: {recipient}},
			Identities: staticIdentities{identity},
			Cipher:     cipher,
		},
		cache:     cache,
		cipher:    cipher,
		identity:  identity,
		recipient: recipient,
	}
}
