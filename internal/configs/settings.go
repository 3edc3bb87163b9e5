package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// DefaultRecipientFile is the recipient mapping file name, relative to the
// repository root.
const DefaultRecipientFile = "git-agecrypt.toml"

// Settings are the process-wide knobs read from the environment. Git runs
// the filter subcommands itself, so flags alone cannot reach them.
type Settings struct {
	LogLevel   string `env:"GIT_AGECRYPT_LOG"`
	ConfigFile string `env:"GIT_AGECRYPT_CONFIG" envDefault:"git-agecrypt.toml"`
	SecretsNix string `env:"GIT_AGECRYPT_SECRETS_NIX"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings from environment: %w", err)
	}
	return s, nil
}
