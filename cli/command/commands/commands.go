package commands

import (
	"wpr/cli/command"
	"wpr/cli/command/auth"
	"wpr/cli/command/backup"
	"wpr/cli/command/core"
	"wpr/cli/command/crud"
	"wpr/cli/command/extension"
	"wpr/cli/command/option"
	"wpr/cli/command/site"
	"wpr/cli/command/webhook"

	"github.com/spf13/cobra"
)

func AddCommands(cmd *cobra.Command, wprCli command.Cli) {
	cmd.AddCommand(
		auth.NewAuthCommand(wprCli),
		site.NewSiteCommand(wprCli),
		extension.NewPluginCommand(wprCli),
		extension.NewThemeCommand(wprCli),
		core.NewCoreCommand(wprCli),
		backup.NewBackupCommand(wprCli),
		crud.NewPostCommand(wprCli),
		crud.NewCommentCommand(wprCli),
		crud.NewUserCommand(wprCli),
		option.NewOptionCommand(wprCli),
		webhook.NewWebhookCommand(wprCli),
	)
}
