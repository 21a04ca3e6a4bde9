package auth

import (
	"wpr/cli"
	"wpr/cli/command"

	"github.com/spf13/cobra"
)

func NewAuthCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Save or clear the account credentials",
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

	cmd.AddCommand(NewLoginCommand(wprCli))
	cmd.AddCommand(NewLogoutCommand(wprCli))

	return cmd
}
