package cmd

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	config := &cobra.Command{
		Use:   "config",
		Short: "Configure encryption settings",
		Long: `Manages the identities used for decryption in this clone and the
recipients each file is encrypted for.

Identities are private and stored in the local git config. Recipients are
stored in git-agecrypt.toml at the repository root and should be committed.

Examples:
  # Add an identity usable for decryption
  git-agecrypt config add -i ~/.ssh/id_ed25519

  # Encrypt every .env file under secrets/ for two recipients
  git-agecrypt config add -r age1... -r 'ssh-ed25519 AAAA...' -p 'secrets/**/*.env'

  # Revoke a recipient everywhere
  git-agecrypt config remove -r age1...

  # Stop encrypting a file
  git-agecrypt config remove -p secrets/old.env

  # Show the recipients of every file
  git-agecrypt config list -r`,
	}

	config.AddCommand(newConfigAddCmd())
	config.AddCommand(newConfigRemoveCmd())
	config.AddCommand(newConfigListCmd())
	return config
}
