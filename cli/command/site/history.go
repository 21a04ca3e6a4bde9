package site

import (
	"context"
	"fmt"
	"time"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/api"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

var historyFields = []string{"date", "type", "action", "description"}

type historyOptions struct {
	format command.FormatOptions

	// Client-side filters, matched against the raw field values before
	// any display transformation.
	typeFilter   string
	actionFilter string
}

func newHistoryCommand(wprCli command.Cli) *cobra.Command {
	var opts historyOptions

	cmd := &cobra.Command{
		Use:   "history SITE_ID",
		Short: "View the event history of a site",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd.Context(), wprCli, args[0], opts)
		},
	}

	opts.format.Install(cmd.Flags(), historyFields)
	cmd.Flags().StringVar(&opts.typeFilter, "type", "", "Only show events of this type")
	cmd.Flags().StringVar(&opts.actionFilter, "action", "", "Only show events with this action")

	return cmd
}

func runHistory(ctx context.Context, wprCli command.Cli, siteID string, opts historyOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, fmt.Sprintf("site/%d/history", remote.CoerceID(siteID)))
	if err != nil {
		return err
	}

	items, ok := value.([]any)
	if !ok {
		return api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
	}

	fields := opts.format.FieldList()
	records := make([]remote.Record, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		if opts.typeFilter != "" && remote.FormatValue(entry["type"]) != opts.typeFilter {
			continue
		}
		if opts.actionFilter != "" && remote.FormatValue(entry["action"]) != opts.actionFilter {
			continue
		}

		row := make(map[string]any, len(entry))
		for k, v := range entry {
			row[k] = v
		}
		// The description sometimes carries HTML, and the date arrives
		// as a Unix timestamp.
		row["description"] = remote.StripTags(remote.FormatValue(entry["description"]))
		if epoch, ok := entry["date"].(float64); ok {
			row["date"] = time.Unix(int64(epoch), 0).UTC().Format("2006-01-02 15:04:05") + " GMT"
		}

		records = append(records, remote.ProjectFields(row, "history", fields))
	}

	return command.RenderResult(wprCli, opts.format.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}
