package site

import (
	"context"
	"fmt"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func newRefreshCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh SITE_ID",
		Short: "Refresh the tracked details of a site",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd.Context(), wprCli, args[0])
		},
	}

	return cmd
}

func runRefresh(ctx context.Context, wprCli command.Cli, siteID string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("sites/%d/refresh_data", remote.CoerceID(siteID))

	if err := wprCli.Progress().RunWithProgress("", func() error {
		_, err := client.Post(ctx, endpoint, nil)
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	wprCli.Output().Successln("Site refreshed.")

	return nil
}
