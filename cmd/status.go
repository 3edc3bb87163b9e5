package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/configs"
	"github.com/PolarWolf314/git-agecrypt/internal/ui"
	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Display configuration status information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}
			mapping, err := session.Recipients()
			if err != nil {
				return err
			}

			stop := startSpinner("Validating identities...")
			result, err := workflows.Status(cmd.Context(), workflows.StatusOptions{
				Repo:       session.Repo,
				Identities: session.Identities(),
				Recipients: mapping,
			})
			stop()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if result.FilterInstalled {
				fmt.Fprintf(out, "%s Filters are installed\n", ui.Mark(true))
			} else {
				fmt.Fprintf(out, "%s Filters are not installed, run %s\n", ui.Mark(false), ui.Code.Sprint("git-agecrypt init"))
			}
			fmt.Fprintln(out)
			printIdentities(out, result.Identities)
			fmt.Fprintln(out)
			printRecipients(out, mapping.Path(), result.Recipients)
			return nil
		},
	}
}

func printIdentities(w io.Writer, identities []configs.IdentityStatus) {
	if len(identities) == 0 {
		fmt.Fprintln(w, "No identities are configured.")
		return
	}

	padding := 0
	for _, i := range identities {
		padding = max(padding, len(i.Path))
	}

	fmt.Fprintln(w, "The following identities are currently configured:")
	for _, i := range identities {
		if i.Valid() {
			fmt.Fprintf(w, "    %s %s\n", ui.Mark(true), i.Path)
			continue
		}
		fmt.Fprintf(w, "    %s %-*s -- %v\n", ui.Mark(false), padding, i.Path, i.Err)
	}
}

func printRecipients(w io.Writer, file string, entries []configs.Entry) {
	if len(entries) == 0 {
		fmt.Fprintf(w, "No recipients are configured in %s.\n", ui.Path.Sprint(file))
		return
	}

	fmt.Fprintf(w, "The following recipients are configured in %s:\n", ui.Path.Sprint(file))
	current := ""
	for _, e := range entries {
		if e.Path != current {
			fmt.Fprintf(w, "    %s:\n", e.Path)
			current = e.Path
		}
		fmt.Fprintf(w, "        - %s\n", e.Recipient)
	}
}
