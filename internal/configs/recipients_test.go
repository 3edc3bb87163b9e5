package configs

import (
	"os"
	"path/filepath"
	"testing"

	"filippo.io/age"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/git-agecrypt/internal/errors"
)

func newRecipient(t *testing.T) string {
	t.Helper()
	id, err := age.GenerateX25519Identity()
	require.NoError(t, err)
	return id.Recipient().String()
}

// setupRepo creates a working tree with the given files and returns its root.
func setupRepo(t *testing.T, files ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0700))
		require.NoError(t, os.WriteFile(path, []byte("secret"), 0600))
	}
	return root
}

func loadConfig(t *testing.T, root string) *RecipientConfig {
	t.Helper()
	c, err := LoadRecipientConfig(root, "")
	require.NoError(t, err)
	return c
}

func TestLoadRecipientConfigMissingFile(t *testing.T) {
	root := setupRepo(t)

	c := loadConfig(t, root)
	assert.Empty(t, c.List())
	assert.Equal(t, filepath.Join(root, DefaultRecipientFile), c.Path())
}

func TestLoadRecipientConfigInvalidFile(t *testing.T) {
	root := setupRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultRecipientFile), []byte("[config\n"), 0600))

	_, err := LoadRecipientConfig(root, "")
	assert.ErrorIs(t, err, kerrors.ErrInvalidConfig)
}

func TestRecipientConfigAddSaveLoad(t *testing.T) {
	root := setupRepo(t, "secrets/a.env", "b.txt")
	alice, bob := newRecipient(t), newRecipient(t)

	c := loadConfig(t, root)
	changed, err := c.Add([]string{alice, bob}, []string{"secrets/a.env", "b.txt"})
	require.NoError(t, err)
	assert.True(t, changed)
	require.NoError(t, c.Save())

	reloaded := loadConfig(t, root)
	recipients, err := reloaded.RecipientsFor("secrets/a.env")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{alice, bob}, recipients)
	assert.Len(t, reloaded.List(), 4)
}

func TestRecipientConfigAddDeduplicates(t *testing.T) {
	root := setupRepo(t, "a.env")
	alice := newRecipient(t)

	c := loadConfig(t, root)
	changed, err := c.Add([]string{alice, alice}, []string{"a.env"})
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = c.Add([]string{alice}, []string{"a.env"})
	require.NoError(t, err)
	assert.False(t, changed, "adding a present recipient is no change")
	assert.Equal(t, []string{alice}, c.Config["a.env"])
}

func TestRecipientConfigValidationGate(t *testing.T) {
	root := setupRepo(t, "a.env")
	alice := newRecipient(t)

	c := loadConfig(t, root)
	_, err := c.Add([]string{alice}, []string{"a.env"})
	require.NoError(t, err)
	require.NoError(t, c.Save())
	before, err := os.ReadFile(c.Path())
	require.NoError(t, err)

	c = loadConfig(t, root)
	_, err = c.Add([]string{newRecipient(t), "not-a-recipient"}, []string{"a.env"})
	require.ErrorIs(t, err, kerrors.ErrInvalidRecipient)
	assert.Contains(t, err.Error(), "not-a-recipient")
	assert.Equal(t, []string{alice}, c.Config["a.env"], "no partial update")

	after, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRecipientConfigExistenceGate(t *testing.T) {
	root := setupRepo(t, "a.env")

	c := loadConfig(t, root)
	_, err := c.Add([]string{newRecipient(t)}, []string{"a.env", "missing.env"})
	require.ErrorIs(t, err, kerrors.ErrFileNotFound)
	assert.Contains(t, err.Error(), "file does not exist")
	assert.Contains(t, err.Error(), "missing.env")
	assert.Empty(t, c.Config)

	_, err = os.Stat(c.Path())
	assert.True(t, os.IsNotExist(err), "mapping file is not created")
}

func TestRecipientConfigRemove(t *testing.T) {
	root := setupRepo(t, "a.env", "b.env", "secrets/c.env")
	alice, bob, carol := newRecipient(t), newRecipient(t), newRecipient(t)

	seed := func(t *testing.T) *RecipientConfig {
		c := loadConfig(t, root)
		_, err := c.Add([]string{alice, bob}, []string{"a.env", "b.env"})
		require.NoError(t, err)
		_, err = c.Add([]string{carol}, []string{"secrets/c.env"})
		require.NoError(t, err)
		return c
	}

	t.Run("global revocation", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove([]string{alice}, nil)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{bob}, c.Config["a.env"])
		assert.Equal(t, []string{bob}, c.Config["b.env"])
		assert.Equal(t, []string{carol}, c.Config["secrets/c.env"])
	})

	t.Run("clear paths", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove(nil, []string{"a.env"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.NotContains(t, c.Config, "a.env")
		assert.Contains(t, c.Config, "b.env")
	})

	t.Run("selective", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove([]string{bob}, []string{"b.env"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{alice, bob}, c.Config["a.env"])
		assert.Equal(t, []string{alice}, c.Config["b.env"])
	})

	t.Run("pattern", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove(nil, []string{"secrets/**"})
		require.NoError(t, err)
		assert.True(t, changed)
		assert.NotContains(t, c.Config, "secrets/c.env")
		assert.Len(t, c.Config, 2)
	})

	t.Run("pruning", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove([]string{alice, bob}, nil)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []Entry{{Path: "secrets/c.env", Recipient: carol}}, c.List())
	})

	t.Run("absent entries are no change", func(t *testing.T) {
		c := seed(t)
		changed, err := c.Remove([]string{carol}, []string{"a.env"})
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = c.Remove(nil, []string{"nope.env"})
		require.NoError(t, err)
		assert.False(t, changed)

		changed, err = c.Remove([]string{newRecipient(t)}, nil)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Len(t, c.List(), 5)
	})

	t.Run("bad pattern", func(t *testing.T) {
		c := seed(t)
		_, err := c.Remove(nil, []string{"[unterminated"})
		assert.Error(t, err)
	})
}

func TestRecipientConfigListSorted(t *testing.T) {
	root := setupRepo(t, "z.env", "a.env")
	c := loadConfig(t, root)
	c.Config = map[string][]string{
		"z.env": {"r2", "r1"},
		"a.env": {"r3"},
	}

	assert.Equal(t, []Entry{
		{Path: "a.env", Recipient: "r3"},
		{Path: "z.env", Recipient: "r1"},
		{Path: "z.env", Recipient: "r2"},
	}, c.List())
}

func TestRecipientConfigRecipientsForUnknownPath(t *testing.T) {
	c := loadConfig(t, setupRepo(t))

	_, err := c.RecipientsFor("unknown.env")
	require.ErrorIs(t, err, kerrors.ErrNoRecipients)
	assert.Contains(t, err.Error(), "no public key can be found")
}
