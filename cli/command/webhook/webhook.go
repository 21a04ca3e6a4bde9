// Package webhook manages the webhooks of the account, or of a single
// site when --site-id is given.
package webhook

import (
	"context"
	"fmt"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/api"
	"wpr/pkg/remote"
	"wpr/pkg/validator"

	"github.com/spf13/cobra"
)

var webhookFields = []string{"id", "url"}

func NewWebhookCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the webhooks of your account or a site",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
		Annotations: map[string]string{
			"category-top": "4",
		},
	}

	var siteID string
	cmd.PersistentFlags().StringVar(&siteID, "site-id", "", "Operate on this site's webhooks instead of the account's")

	cmd.AddCommand(
		newWebhookListCommand(wprCli, &siteID),
		newWebhookGetCommand(wprCli, &siteID),
		newWebhookCreateCommand(wprCli, &siteID),
		newWebhookDeleteCommand(wprCli, &siteID),
	)

	return cmd
}

// endpoint scopes a webhook path to the account or to one site.
func endpoint(siteID, webhookID string) string {
	base := "account/webhook"
	if siteID != "" {
		base = fmt.Sprintf("site/%d/webhook", remote.CoerceID(siteID))
	}
	if webhookID != "" {
		return base + "/" + webhookID
	}
	return base
}

func newWebhookListCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List webhooks",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebhookList(cmd.Context(), wprCli, *siteID, opts)
		},
	}

	opts.Install(cmd.Flags(), webhookFields)

	return cmd
}

func runWebhookList(ctx context.Context, wprCli command.Cli, siteID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, endpoint(siteID, ""))
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
		records = append(records, remote.ProjectFields(obj, "webhook", fields))
	}

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}

func newWebhookGetCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:   "get WEBHOOK_ID",
		Short: "Get a single webhook",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebhookGet(cmd.Context(), wprCli, *siteID, args[0], opts)
		},
	}

	opts.Install(cmd.Flags(), webhookFields)

	return cmd
}

func runWebhookGet(ctx context.Context, wprCli command.Cli, siteID, webhookID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, endpoint(siteID, webhookID))
	if err != nil {
		return err
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
	}

	record := remote.ProjectFields(obj, "webhook", opts.FieldList())

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecord, Record: record}, opts.FieldList())
}

func newWebhookCreateCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create URL",
		Short: "Register a webhook",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebhookCreate(cmd.Context(), wprCli, *siteID, args[0])
		},
	}

	return cmd
}

func runWebhookCreate(ctx context.Context, wprCli command.Cli, siteID, url string) error {
	if err := validator.WebhookURL(url); err != nil {
		return err
	}

	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Post(ctx, endpoint(siteID, ""), map[string]any{"url": url}); err != nil {
		return err
	}

	wprCli.Output().Successln("Created webhook.")

	return nil
}

func newWebhookDeleteCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm WEBHOOK_ID",
		Aliases: []string{"delete"},
		Short:   "Delete a webhook",
		Args:    cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWebhookDelete(cmd.Context(), wprCli, *siteID, args[0])
		},
	}

	return cmd
}

func runWebhookDelete(ctx context.Context, wprCli command.Cli, siteID, webhookID string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Delete(ctx, endpoint(siteID, webhookID)); err != nil {
		return err
	}

	wprCli.Output().Successln("Deleted webhook " + webhookID + ".")

	return nil
}
