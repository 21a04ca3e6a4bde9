package crud

import (
	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func newMetaCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Manage " + res.Type + " custom fields on a site",
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "ls ID",
			Aliases: []string{"list"},
			Short:   "List all meta values of a " + res.Type,
			Args:    cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatch(cmd.Context(), wprCli, res, remote.ActionMetaList, remote.DispatchOptions{
					SiteID:   *siteID,
					ObjectID: args[0],
				}, "")
			},
		},
		&cobra.Command{
			Use:   "get ID KEY",
			Short: "Get a meta value of a " + res.Type,
			Args:  cli.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatch(cmd.Context(), wprCli, res, remote.ActionMetaGet, remote.DispatchOptions{
					SiteID:   *siteID,
					ObjectID: args[0],
					MetaKey:  args[1],
				}, "")
			},
		},
		&cobra.Command{
			Use:   "add ID KEY VALUE",
			Short: "Add a meta value to a " + res.Type,
			Args:  cli.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatch(cmd.Context(), wprCli, res, remote.ActionMetaAdd, remote.DispatchOptions{
					SiteID:   *siteID,
					ObjectID: args[0],
					Body: map[string]any{
						"meta_key":   args[1],
						"meta_value": args[2],
					},
				}, "")
			},
		},
		&cobra.Command{
			Use:   "update ID KEY VALUE",
			Short: "Update a meta value of a " + res.Type,
			Args:  cli.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatch(cmd.Context(), wprCli, res, remote.ActionMetaUpdate, remote.DispatchOptions{
					SiteID:   *siteID,
					ObjectID: args[0],
					MetaKey:  args[1],
					Body: map[string]any{
						"meta_value": args[2],
					},
				}, "")
			},
		},
		&cobra.Command{
			Use:     "rm ID KEY",
			Aliases: []string{"delete"},
			Short:   "Delete a meta value of a " + res.Type,
			Args:    cli.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return dispatch(cmd.Context(), wprCli, res, remote.ActionMetaDelete, remote.DispatchOptions{
					SiteID:   *siteID,
					ObjectID: args[0],
					MetaKey:  args[1],
				}, "")
			},
		},
	)

	return cmd
}
