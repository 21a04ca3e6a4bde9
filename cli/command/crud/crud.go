// Package crud implements the post, comment and user command families
// on top of the generic resource dispatcher.
package crud

import (
	"context"
	"strings"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewPostCommand(wprCli command.Cli) *cobra.Command {
	return newResourceCommand(wprCli, remote.Posts, "Manage posts on a site")
}

func NewCommentCommand(wprCli command.Cli) *cobra.Command {
	return newResourceCommand(wprCli, remote.Comments, "Manage comments on a site")
}

func newResourceCommand(wprCli command.Cli, res remote.Resource, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   res.Type,
		Short: short,
		Args:  cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetOut(wprCli.Out())
			cmd.HelpFunc()(cmd, args)
			return nil
		},
		Annotations: map[string]string{
			"category-top": "3",
		},
	}

	var siteID string
	cmd.PersistentFlags().StringVar(&siteID, "site-id", "", "Site to run the command on")
	_ = cmd.MarkPersistentFlagRequired("site-id")

	cmd.AddCommand(
		newListCommand(wprCli, res, &siteID),
		newGetCommand(wprCli, res, &siteID),
		newCreateCommand(wprCli, res, &siteID),
		newUpdateCommand(wprCli, res, &siteID),
		newDeleteCommand(wprCli, res, &siteID),
		newMetaCommand(wprCli, res, &siteID),
	)

	return cmd
}

func newListCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	var opts command.FormatOptions

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List " + res.Type + "s on a site",
		Args:    cli.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd.Context(), wprCli, res, remote.ActionList, remote.DispatchOptions{
				SiteID: *siteID,
				Fields: opts.FieldList(),
			}, opts.Format)
		},
	}

	opts.Install(cmd.Flags(), res.DefaultFields)

	return cmd
}

func newGetCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	var opts command.FormatOptions
	var field string

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Get a single " + res.Type + " from a site",
		Args:  cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd.Context(), wprCli, res, remote.ActionGet, remote.DispatchOptions{
				SiteID:   *siteID,
				ObjectID: args[0],
				Fields:   opts.FieldList(),
				Field:    field,
			}, opts.Format)
		},
	}

	opts.Install(cmd.Flags(), res.DefaultFields)
	cmd.Flags().StringVar(&field, "field", "", "Print the value of this single field instead of a table")

	return cmd
}

func newCreateCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create FIELD=VALUE [FIELD=VALUE...]",
		Short: "Create a " + res.Type + " on a site",
		Args:  cli.RequiresMinArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseAssignments(args)
			if err != nil {
				return err
			}
			return dispatch(cmd.Context(), wprCli, res, remote.ActionCreate, remote.DispatchOptions{
				SiteID: *siteID,
				Body:   body,
			}, "")
		},
	}

	return cmd
}

func newUpdateCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ID FIELD=VALUE [FIELD=VALUE...]",
		Short: "Update a " + res.Type + " on a site",
		Args:  cli.RequiresMinArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}
			return dispatch(cmd.Context(), wprCli, res, remote.ActionUpdate, remote.DispatchOptions{
				SiteID:   *siteID,
				ObjectID: args[0],
				Body:     body,
			}, "")
		},
	}

	return cmd
}

func newDeleteCommand(wprCli command.Cli, res remote.Resource, siteID *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a " + res.Type + " from a site",
		Args:    cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd.Context(), wprCli, res, remote.ActionDelete, remote.DispatchOptions{
				SiteID:   *siteID,
				ObjectID: args[0],
			}, "")
		},
	}

	return cmd
}

// dispatch runs one resource action and renders its outcome.
func dispatch(ctx context.Context, wprCli command.Cli, res remote.Resource, action remote.Action, opts remote.DispatchOptions, format string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	var result remote.Result
	if err := wprCli.Progress().RunWithProgress("", func() error {
		var err error
		result, err = remote.Dispatch(ctx, client, res, action, opts)
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	return command.RenderResult(wprCli, format, result, opts.Fields)
}

// parseAssignments turns FIELD=VALUE arguments into a request body.
func parseAssignments(args []string) (map[string]any, error) {
	body := make(map[string]any, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, errors.Errorf("invalid field assignment %q, expected FIELD=VALUE", arg)
		}
		body[field] = value
	}
	return body, nil
}
