package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

func newConfigListCmd() *cobra.Command {
	var identities, recipients bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configuration entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if identities {
				statuses, err := workflows.ListIdentities(cmd.Context(), session.Identities())
				if err != nil {
					return err
				}
				printIdentities(out, statuses)
				return nil
			}

			mapping, err := session.Recipients()
			if err != nil {
				return err
			}
			for _, e := range workflows.ListRecipients(cmd.Context(), mapping) {
				fmt.Fprintf(out, "%s: %s\n", e.Path, e.Recipient)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&identities, "identity", "i", false, "list identities usable for decryption")
	cmd.Flags().BoolVarP(&recipients, "recipient", "r", false, "list recipients of every path")
	cmd.MarkFlagsOneRequired("identity", "recipient")
	cmd.MarkFlagsMutuallyExclusive("identity", "recipient")
	return cmd
}
