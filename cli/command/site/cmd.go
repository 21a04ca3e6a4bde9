package site

import (
	"wpr/cli"
	"wpr/cli/command"

	"github.com/spf13/cobra"
)

func NewSiteCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage the sites in your account",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
		Annotations: map[string]string{
			"category-top": "1",
		},
	}

	cmd.AddCommand(
		newListCommand(wprCli),
		newAddCommand(wprCli),
		newRemoveCommand(wprCli),
		newRefreshCommand(wprCli),
		newPremiumCommand(wprCli),
		newHistoryCommand(wprCli),
		newDownloadCommand(wprCli),
	)

	return cmd
}
