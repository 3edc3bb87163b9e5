package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	"github.com/PolarWolf314/git-agecrypt/internal/ui"
	"github.com/PolarWolf314/git-agecrypt/internal/utils"
	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

type configFlags struct {
	identity   string
	recipients []string
	paths      []string
}

func (f *configFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.identity, "identity", "i", "", "identity usable for decryption")
	cmd.Flags().StringArrayVarP(&f.recipients, "recipient", "r", nil, "recipient for encryption (repeatable)")
	cmd.Flags().StringArrayVarP(&f.paths, "path", "p", nil, "path to encrypt for the given recipients, glob patterns allowed (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("identity", "recipient")
	cmd.MarkFlagsMutuallyExclusive("identity", "path")
}

func newConfigAddCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a configuration entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if flags.identity != "" {
				result, err := workflows.AddIdentity(cmd.Context(), session.Identities(), flags.identity)
				if err != nil {
					return err
				}
				if !result.Changed {
					printNothingToDo(out, "identity %s is already configured", ui.Recipient.Sprint(flags.identity))
					return nil
				}
				printSuccess(out, "Added identity %s", ui.Recipient.Sprint(flags.identity))
				return nil
			}

			if len(flags.paths) == 0 {
				return errors.New("--recipient requires at least one --path")
			}
			paths, err := configs.ExpandPaths(session.Repo.Workdir(), session.Cwd, flags.paths)
			if err != nil {
				return err
			}
			mapping, err := session.Recipients()
			if err != nil {
				return err
			}

			result, err := workflows.AddRecipients(cmd.Context(), workflows.RecipientOptions{
				Mapping:    mapping,
				Recipients: flags.recipients,
				Paths:      paths,
			})
			if err != nil {
				return err
			}
			if !result.Changed {
				printNothingToDo(out, "recipients are already configured for these paths")
				return nil
			}
			printSuccess(out, "Added %d recipient(s) for:%s", len(flags.recipients), utils.FormatPaths(paths))
			printHint(out, "Make sure %s assigns %s to these paths", ui.Path.Sprint(".gitattributes"), ui.Code.Sprint("filter=git-agecrypt diff=git-agecrypt"))
			return nil
		},
	}

	flags.bind(cmd)
	cmd.MarkFlagsOneRequired("identity", "recipient")
	return cmd
}
