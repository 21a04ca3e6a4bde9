package site

import (
	"context"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/api"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

var siteFields = []string{"ID", "nicename", "home_url", "is_premium"}

func newListCommand(wprCli command.Cli) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all of the sites in your account",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), wprCli, opts)
		},
	}

	opts.Install(cmd.Flags(), siteFields)

	return cmd
}

func runList(ctx context.Context, wprCli command.Cli, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, "site/")
	if err != nil {
		return err
	}

	items, ok := value.([]any)
	if !ok {
		return api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
	}

	fields := opts.FieldList()
	records := make([]remote.Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		records = append(records, remote.ProjectFields(obj, "site", fields))
	}

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}
