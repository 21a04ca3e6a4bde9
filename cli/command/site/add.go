package site

import (
	"context"

	"wpr/cli"
	"wpr/cli/command"

	"github.com/spf13/cobra"
)

func newAddCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add DOMAIN NICENAME",
		Short: "Add a site to your account",
		Args:  cli.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), wprCli, args[0], args[1])
		},
	}

	return cmd
}

func runAdd(ctx context.Context, wprCli command.Cli, domain, nicename string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Post(ctx, "site/", map[string]any{
		"domain":   domain,
		"nicename": nicename,
	}); err != nil {
		return err
	}

	wprCli.Output().Successln("Site added.")

	return nil
}
