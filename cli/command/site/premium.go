package site

import (
	"context"
	"fmt"
	"net/http"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func newPremiumCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "Manage the Premium flag on a site",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set SITE_ID",
			Short: "Mark a site as Premium (requires an active subscription)",
			Args:  cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPremium(cmd.Context(), wprCli, args[0], http.MethodPost, "Site is now Premium.")
			},
		},
		&cobra.Command{
			Use:   "rm SITE_ID",
			Short: "Remove Premium from a site",
			Args:  cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runPremium(cmd.Context(), wprCli, args[0], http.MethodDelete, "Premium has been removed from Site.")
			},
		},
	)

	return cmd
}

func runPremium(ctx context.Context, wprCli command.Cli, siteID, method, success string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("site/%d/premium", remote.CoerceID(siteID))
	if _, err := client.Do(ctx, method, endpoint, nil); err != nil {
		return err
	}

	wprCli.Output().Successln(success)

	return nil
}
