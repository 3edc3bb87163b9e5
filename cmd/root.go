package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	logger "github.com/PolarWolf314/git-agecrypt/internal/logging"
)

var (
	verbose  bool
	debug    bool
	Logger   logger.Logger
	settings configs.Settings
)

// NewRootCmd builds the git-agecrypt command tree.
func NewRootCmd() *cobra.Command {
	verbose, debug = false, false

	root := &cobra.Command{
		Use:   "git-agecrypt",
		Short: "Transparently encrypt/decrypt age secrets",
		Long: `git-agecrypt keeps selected files of a git repository encrypted with age.

Files are encrypted when they are staged and decrypted when they are checked
out, so the repository stores ciphertext while the working tree holds
plaintext.

Getting started:
  # Register the filters in this clone
  git-agecrypt init

  # Add your private key used for decryption
  git-agecrypt config add -i ~/.config/age/key.txt

  # Encrypt a file for a recipient, then mark it in .gitattributes
  git-agecrypt config add -r age1... -p secrets/prod.env
  echo 'secrets/prod.env filter=git-agecrypt diff=git-agecrypt' >> .gitattributes`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if settings, err = configs.LoadSettings(); err != nil {
				return err
			}

			Logger = logger.FromLevel(settings.LogLevel)
			Logger.Verbose = Logger.Verbose || verbose
			Logger.Debug = Logger.Debug || debug
			Logger.Out = cmd.ErrOrStderr()
			Logger.Debugf("Initializing %s with verbose=%t, debug=%t", cmd.Name(), Logger.Verbose, Logger.Debug)
			return nil
		},
	}
	root.SetGlobalNormalizationFunc(normalizeFlagName)

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	root.AddCommand(newInitCmd())
	root.AddCommand(newDeinitCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newCleanCmd())
	root.AddCommand(newSmudgeCmd())
	root.AddCommand(newTextconvCmd())

	return root
}

// normalizeFlagName accepts underscores in flag names, e.g. --secrets_nix.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Execute runs the command line.
func Execute() error {
	return NewRootCmd().Execute()
}
