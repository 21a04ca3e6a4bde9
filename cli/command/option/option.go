// Package option implements reads and writes of a site's options table.
package option

import (
	"context"
	"fmt"
	"net/http"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

func NewOptionCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "option",
		Short: "Manage options on a site",
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
		&cobra.Command{
			Use:   "get NAME",
			Short: "Get an option from a site",
			Args:  cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOption(cmd.Context(), wprCli, siteID, args[0], http.MethodGet, nil, "")
			},
		},
		&cobra.Command{
			Use:   "update NAME VALUE",
			Short: "Update an option on a site",
			Args:  cli.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				body := map[string]any{"option_value": args[1]}
				return runOption(cmd.Context(), wprCli, siteID, args[0], http.MethodPost, body,
					fmt.Sprintf("Updated '%s' option.", args[0]))
			},
		},
		&cobra.Command{
			Use:     "rm NAME",
			Aliases: []string{"delete"},
			Short:   "Delete an option from a site",
			Args:    cli.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runOption(cmd.Context(), wprCli, siteID, args[0], http.MethodDelete, nil,
					fmt.Sprintf("Deleted '%s' option.", args[0]))
			},
		},
	)

	return cmd
}

// runOption hits site/{id}/option/{name}. A get prints the bare value
// so it composes in shell pipelines; writes print a success line.
func runOption(ctx context.Context, wprCli command.Cli, siteID, name, method string, body map[string]any, success string) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("site/%d/option/%s", remote.CoerceID(siteID), name)
	value, err := client.Do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}

	if success == "" {
		return command.RenderResult(wprCli, "", remote.Result{Kind: remote.KindValue, Value: value}, nil)
	}

	wprCli.Output().Successln(success)

	return nil
}
