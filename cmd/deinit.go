package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

func newDeinitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deinit",
		Short: "Remove repository specific configuration",
		Long: `Removes the git-agecrypt filter and diff configuration from this clone and
deletes the cached digests and ciphertexts. Configured identities and the
recipient file are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			if _, err := workflows.Deinit(cmd.Context(), session.Repo, workflows.DeinitOptions{
				Cache:  session.Cache(),
				Logger: Logger,
			}); err != nil {
				return err
			}

			printSuccess(cmd.OutOrStdout(), "git-agecrypt filters removed")
			return nil
		},
	}
}
