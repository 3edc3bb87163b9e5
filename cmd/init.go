package cmd

import (
	"github.com/spf13/cobra"

	"github.com/PolarWolf314/git-agecrypt/internal/ui"
	"github.com/PolarWolf314/git-agecrypt/internal/workflows"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Set-up repository for use with git-agecrypt",
		Long: `Registers the git-agecrypt clean and smudge filters and the textconv diff
driver in the local configuration of this clone.

Files use them once .gitattributes assigns filter=git-agecrypt and
diff=git-agecrypt to them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession()
			if err != nil {
				return err
			}

			result, err := workflows.Init(cmd.Context(), session.Repo, workflows.InitOptions{})
			if err != nil {
				return err
			}
			for _, kv := range result.Settings {
				Logger.Debugf("Set %s = %s", kv[0], kv[1])
			}

			out := cmd.OutOrStdout()
			printSuccess(out, "git-agecrypt filters configured in %s", ui.Path.Sprint(session.Repo.Workdir()))
			printHint(out, "Run %s to add your identity", ui.Code.Sprint("git-agecrypt config add -i <key file>"))
			return nil
		},
	}
}
