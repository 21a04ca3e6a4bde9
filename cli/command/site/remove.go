package site

import (
	"context"
	"fmt"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func newRemoveCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm SITE_ID",
		Aliases: []string{"delete"},
		Short:   "Delete a site from your account",
		Args:    cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), wprCli, args[0])
		},
	}

	return cmd
}

func runRemove(ctx context.Context, wprCli command.Cli, siteID string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("site/%d/", remote.CoerceID(siteID))
	if _, err := client.Delete(ctx, endpoint); err != nil {
		return err
	}

	wprCli.Output().Successln("Site deleted.")

	return nil
}
