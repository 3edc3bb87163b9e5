package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

// The filter commands are run by git, not by users. Content flows through
// stdin and stdout; logs go to stderr.

func newCleanCmd() *cobra.Command {
	var file, secretsNix string

	cmd := &cobra.Command{
		Use:    "clean",
		Short:  "Encrypt files for commit",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			rel, err := session.RelPath(file)
			if err != nil {
				return err
			}

			result, err := session.Filter(secretsNix).Clean(cmd.Context(), workflows.CleanOptions{
				File:   rel,
				Input:  cmd.InOrStdin(),
				Output: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			Logger.Debugf("Cleaned %s (reused=%t)", rel, result.Reused)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path of the file being cleaned")
	cmd.Flags().StringVar(&secretsNix, "secrets-nix", "", "resolve recipients with an agenix secrets.nix rule file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSmudgeCmd() *cobra.Command {
	var file string
	var identities []string

	cmd := &cobra.Command{
		Use:    "smudge",
		Short:  "Decrypt files from checkout",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			rel, err := session.RelPath(file)
			if err != nil {
				return err
			}

			return session.Filter("").Smudge(cmd.Context(), workflows.SmudgeOptions{
				File:       rel,
				Identities: identities,
				Input:      cmd.InOrStdin(),
				Output:     cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringArrayVarP(&identities, "identities", "i", nil, "additional identity to decrypt with (repeatable)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path of the file being checked out")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newTextconvCmd() *cobra.Command {
	var identities []string

	cmd := &cobra.Command{
		Use:    "textconv <path>",
		Short:  "Prepare file for diff",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			result, err := session.Filter("").Textconv(cmd.Context(), workflows.TextconvOptions{
				Path:       args[0],
				Identities: identities,
				Output:     cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			Logger.Debugf("Rendered %s (decrypted=%t)", args[0], result.Decrypted)
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&identities, "identities", "i", nil, "additional identity to decrypt with (repeatable)")
	return cmd
}
