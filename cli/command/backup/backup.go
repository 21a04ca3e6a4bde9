// Package backup manages the stored backups of a site: listing and
// deleting archives, the exclude rules, and the automatic backup
// schedule.
package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/api"
	"wpr/pkg/remote"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"
)

var backupFields = []string{"id", "filesize", "date", "url"}

func NewBackupCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage the backups of a site",
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
		newBackupListCommand(wprCli, &siteID),
		newBackupGetCommand(wprCli, &siteID),
		newBackupDeleteCommand(wprCli, &siteID),
		newExcludesCommand(wprCli, &siteID),
		newAutoCommand(wprCli, &siteID),
	)

	return cmd
}

func newBackupListCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the backups of a site",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupList(cmd.Context(), wprCli, *siteID, opts)
		},
	}

	opts.Install(cmd.Flags(), backupFields)

	return cmd
}

func runBackupList(ctx context.Context, wprCli command.Cli, siteID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, fmt.Sprintf("sites/%d/backup", remote.CoerceID(siteID)))
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
		records = append(records, projectBackup(obj, fields))
	}

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}

func newBackupGetCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:   "get BACKUP_ID",
		Short: "Get a single backup of a site",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupGet(cmd.Context(), wprCli, *siteID, args[0], opts)
		},
	}

	opts.Install(cmd.Flags(), backupFields)

	return cmd
}

func runBackupGet(ctx context.Context, wprCli command.Cli, siteID, backupID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, fmt.Sprintf("sites/%d/backup/%s", remote.CoerceID(siteID), backupID))
	if err != nil {
		return err
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
	}

	record := projectBackup(obj, opts.FieldList())

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecord, Record: record}, opts.FieldList())
}

// projectBackup shapes one backup object for display. The date arrives
// as a Unix timestamp and the filesize in bytes.
func projectBackup(obj map[string]any, fields []string) remote.Record {
	row := make(map[string]any, len(obj))
	for k, v := range obj {
		row[k] = v
	}
	if epoch, ok := obj["date"].(float64); ok {
		row["date"] = time.Unix(int64(epoch), 0).UTC().Format("2006-01-02 15:04:05") + " GMT"
	}
	if size, ok := obj["filesize"].(float64); ok {
		row["filesize"] = units.HumanSize(size)
	}
	return remote.ProjectFields(row, "backup", fields)
}

func newBackupDeleteCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm BACKUP_ID",
		Aliases: []string{"delete"},
		Short:   "Delete a backup of a site",
		Args:    cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupDelete(cmd.Context(), wprCli, *siteID, args[0])
		},
	}

	return cmd
}

func runBackupDelete(ctx context.Context, wprCli command.Cli, siteID, backupID string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Delete(ctx, fmt.Sprintf("sites/%d/backup/%s", remote.CoerceID(siteID), backupID)); err != nil {
		return err
	}

	wprCli.Output().Successln("Deleted backup " + backupID + ".")

	return nil
}

func newExcludesCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "excludes",
		Short: "Manage the exclude rules applied to backups",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
	}

	var opts command.FormatOptions

	listCmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the exclude rules",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcludesList(cmd.Context(), wprCli, *siteID, opts)
		},
	}
	opts.Install(listCmd.Flags(), []string{"rule"})

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "set RULES",
			Short: "Replace the exclude rules (comma-separated)",
			Args:  cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runExcludesSet(cmd.Context(), wprCli, *siteID, args[0])
			},
		},
	)

	return cmd
}

func runExcludesList(ctx context.Context, wprCli command.Cli, siteID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	value, err := client.Get(ctx, fmt.Sprintf("sites/%d/backup/exclude", remote.CoerceID(siteID)))
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
		records = append(records, remote.ProjectFields(map[string]any{"rule": item}, "exclude", fields))
	}

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}

func runExcludesSet(ctx context.Context, wprCli command.Cli, siteID, rules string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	ruleList := strings.Split(rules, ",")
	body := map[string]any{"rules": ruleList}

	if _, err := client.Post(ctx, fmt.Sprintf("sites/%d/backup/exclude", remote.CoerceID(siteID)), body); err != nil {
		return err
	}

	wprCli.Output().Successln("Updated backup exclude rules.")

	return nil
}

func newAutoCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auto",
		Short: "Control automatic backups",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "enable",
			Short: "Enable automatic backups on a site",
			Args:  cli.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAuto(cmd.Context(), wprCli, *siteID, "enable-auto-backup", "Enabled automatic backups.")
			},
		},
		&cobra.Command{
			Use:   "disable",
			Short: "Disable automatic backups on a site",
			Args:  cli.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runAuto(cmd.Context(), wprCli, *siteID, "disable-auto-backup", "Disabled automatic backups.")
			},
		},
	)

	return cmd
}

func runAuto(ctx context.Context, wprCli command.Cli, siteID, action, success string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Post(ctx, fmt.Sprintf("sites/%d/backup/%s", remote.CoerceID(siteID), action), nil); err != nil {
		return err
	}

	wprCli.Output().Successln(success)

	return nil
}
