package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	"github.com/PolarWolf314/git-agecrypt/internal/ui"
	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

func newConfigRemoveCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a configuration entry",
		Long: `Removes an identity, or revokes recipients.

  -r without -p    removes the recipients from every path
  -p without -r    removes every recipient of the matching paths
  -r with -p       removes the recipients from the matching paths

Paths left without recipients are dropped from the recipient file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if flags.identity != "" {
				result, err := workflows.RemoveIdentity(cmd.Context(), session.Identities(), flags.identity)
				if err != nil {
					return err
				}
				if !result.Changed {
					printNothingToDo(out, "identity %s is not configured", ui.Recipient.Sprint(flags.identity))
					return nil
				}
				printSuccess(out, "Removed identity %s", ui.Recipient.Sprint(flags.identity))
				return nil
			}

			patterns, err := configs.NormalizePatterns(session.Repo.Workdir(), session.Cwd, flags.paths)
			if err != nil {
				return err
			}
			mapping, err := session.Recipients()
			if err != nil {
				return err
			}

			result, err := workflows.RemoveRecipients(cmd.Context(), workflows.RecipientOptions{
				Mapping:    mapping,
				Recipients: flags.recipients,
				Paths:      patterns,
			})
			if err != nil {
				return err
			}
			if !result.Changed {
				printNothingToDo(out, "no matching recipients are configured")
				return nil
			}
			printSuccess(out, "Updated %s", ui.Path.Sprint(mapping.Path()))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.MarkFlagsOneRequired("identity", "recipient", "path")
	return cmd
}
