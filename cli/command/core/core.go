// Package core manages WordPress core on a site. Unlocking updates is
// a DELETE of the lock rather than an action of its own; the API has no
// unlock endpoint.
package core

import (
	"context"
	"fmt"
	"net/http"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func NewCoreCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "core",
		Short: "Manage WordPress core on a site",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
		Annotations: map[string]string{
			"category-top": "2",
		},
	}

	var siteID string
	cmd.PersistentFlags().StringVar(&siteID, "site-id", "", "Site to run the command on")
	_ = cmd.MarkPersistentFlagRequired("site-id")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "update",
			Short: "Update WordPress core on a site",
			Args:  cli.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCore(cmd.Context(), wprCli, siteID, "update", http.MethodPost, "Core updated.")
			},
		},
		&cobra.Command{
			Use:   "lock-update",
			Short: "Lock WordPress core at its installed version",
			Args:  cli.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCore(cmd.Context(), wprCli, siteID, "lock-update", http.MethodPost, "Core updates locked.")
			},
		},
		&cobra.Command{
			Use:   "unlock-update",
			Short: "Allow WordPress core updates again",
			Args:  cli.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runCore(cmd.Context(), wprCli, siteID, "lock-update", http.MethodDelete, "Core updates unlocked.")
			},
		},
	)

	return cmd
}

func runCore(ctx context.Context, wprCli command.Cli, siteID, action, method, success string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("site/%d/core/%s", remote.CoerceID(siteID), action)

	if err := wprCli.Progress().RunWithProgress("", func() error {
		_, err := client.Do(ctx, method, endpoint, nil)
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	wprCli.Output().Successln(success)

	return nil
}
