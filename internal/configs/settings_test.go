package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Setenv("GIT_AGECRYPT_LOG", "")
	t.Setenv("GIT_AGECRYPT_SECRETS_NIX", "")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, DefaultRecipientFile, s.ConfigFile)
	assert.Empty(t, s.LogLevel)
	assert.Empty(t, s.SecretsNix)
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	t.Setenv("GIT_AGECRYPT_LOG", "debug")
	t.Setenv("GIT_AGECRYPT_CONFIG", "secrets/recipients.toml")
	t.Setenv("GIT_AGECRYPT_SECRETS_NIX", "/repo/secrets.nix")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, Settings{
		LogLevel:   "debug",
		ConfigFile: "secrets/recipients.toml",
		SecretsNix: "/repo/secrets.nix",
	}, s)
}
