// Package extension implements the plugin and theme command families.
// The two share lifecycle endpoints and differ only in naming and the
// handful of actions each supports.
package extension

import (
	"context"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

// action describes one lifecycle subcommand.
type action struct {
	use   string
	name  string
	short string

	// withVersion adds the --version flag whose value is forwarded in
	// the request body.
	withVersion bool
}

func NewPluginCommand(wprCli command.Cli) *cobra.Command {
	return newExtensionCommand(wprCli, remote.ExtensionPlugin, remote.PluginFields, []action{
		{use: "install PLUGIN", name: "install", short: "Install a plugin on a site", withVersion: true},
		{use: "activate PLUGIN", name: "activate", short: "Activate a plugin on a site"},
		{use: "deactivate PLUGIN", name: "deactivate", short: "Deactivate a plugin on a site"},
		{use: "update PLUGIN", name: "update", short: "Update a plugin on a site"},
		{use: "uninstall PLUGIN", name: "uninstall", short: "Uninstall a plugin from a site"},
		{use: "lock-update PLUGIN", name: "lock-update", short: "Lock a plugin at its installed version"},
		{use: "unlock-update PLUGIN", name: "unlock-update", short: "Allow updates of a plugin again"},
	})
}

func NewThemeCommand(wprCli command.Cli) *cobra.Command {
	return newExtensionCommand(wprCli, remote.ExtensionTheme, remote.ThemeFields, []action{
		{use: "install THEME", name: "install", short: "Install a theme on a site", withVersion: true},
		{use: "activate THEME", name: "activate", short: "Activate a theme on a site"},
		{use: "update THEME", name: "update", short: "Update a theme on a site"},
		{use: "rm THEME", name: "delete", short: "Delete a theme from a site"},
		{use: "lock-update THEME", name: "lock-update", short: "Lock a theme at its installed version"},
		{use: "unlock-update THEME", name: "unlock-update", short: "Allow updates of a theme again"},
	})
}

func newExtensionCommand(wprCli command.Cli, objType remote.ExtensionType, defaultFields []string, actions []action) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(objType),
		Short: "Manage " + string(objType) + "s on a site",
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

	cmd.AddCommand(newExtensionListCommand(wprCli, objType, defaultFields, &siteID))
	for _, a := range actions {
		cmd.AddCommand(newActionCommand(wprCli, objType, a, &siteID))
	}

	return cmd
}

func newExtensionListCommand(wprCli command.Cli, objType remote.ExtensionType, defaultFields []string, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List the " + string(objType) + "s installed on a site",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), wprCli, objType, *siteID, opts)
		},
	}

	opts.Install(cmd.Flags(), defaultFields)

	return cmd
}

func runList(ctx context.Context, wprCli command.Cli, objType remote.ExtensionType, siteID string, opts command.FormatOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	fields := opts.FieldList()

	var records []remote.Record
	if err := wprCli.Progress().RunWithProgress("", func() error {
		var err error
		records, err = remote.ListExtensions(ctx, client, objType, siteID, fields)
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	return command.RenderResult(wprCli, opts.Format, remote.Result{Kind: remote.KindRecords, Records: records}, fields)
}

func newActionCommand(wprCli command.Cli, objType remote.ExtensionType, a action, siteID *string) *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   a.use,
		Short: a.short,
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var extraArgs map[string]any
			if a.withVersion && version != "" {
				extraArgs = map[string]any{"version": version}
			}
			return runAction(cmd.Context(), wprCli, objType, a.name, args[0], *siteID, extraArgs)
		},
	}

	if a.withVersion {
		cmd.Flags().StringVar(&version, "version", "", "Version to install instead of the latest")
	}

	return cmd
}

func runAction(ctx context.Context, wprCli command.Cli, objType remote.ExtensionType, action, name, siteID string, extraArgs map[string]any) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	var ack remote.Ack
	if err := wprCli.Progress().RunWithProgress("", func() error {
		var err error
		ack, err = remote.PerformExtensionAction(ctx, client, objType, action, name, siteID, extraArgs)
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	wprCli.Output().Successln(ack.Message)

	return nil
}
