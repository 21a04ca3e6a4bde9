package crud

import (
	"context"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"
	"wpr/pkg/validator"

	"github.com/spf13/cobra"
)

// NewUserCommand builds the user family. It differs from the generic
// resource family only in create, which takes login and email
// positionally, validates the email before hitting the network, and
// reports the remotely generated password.
func NewUserCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users on a site",
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
		newListCommand(wprCli, remote.Users, &siteID),
		newGetCommand(wprCli, remote.Users, &siteID),
		newUserCreateCommand(wprCli, &siteID),
		newUpdateCommand(wprCli, remote.Users, &siteID),
		newDeleteCommand(wprCli, remote.Users, &siteID),
		newMetaCommand(wprCli, remote.Users, &siteID),
	)

	return cmd
}

type userCreateOptions struct {
	role        string
	password    string
	registered  string
	displayName string
	porcelain   bool
}

func newUserCreateCommand(wprCli command.Cli, siteID *string) *cobra.Command {
	var opts userCreateOptions

	cmd := &cobra.Command{
		Use:   "create LOGIN EMAIL",
		Short: "Create a user on a site",
		Args:  cli.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd.Context(), wprCli, *siteID, args[0], args[1], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.role, "role", "", "Role of the new user (defaults to the site's default role)")
	flags.StringVar(&opts.password, "user-pass", "", "Password for the new user (defaults to a generated one)")
	flags.StringVar(&opts.registered, "user-registered", "", "Registration date as yyyy-mm-dd (defaults to today)")
	flags.StringVar(&opts.displayName, "display-name", "", "Display name of the new user")
	flags.BoolVar(&opts.porcelain, "porcelain", false, "Output just the new user id")

	return cmd
}

func runUserCreate(ctx context.Context, wprCli command.Cli, siteID, login, email string, opts userCreateOptions) error {
	if err := validator.Email(email); err != nil {
		return err
	}

	body := map[string]any{
		"user_login": login,
		"user_email": email,
	}
	if opts.role != "" {
		body["role"] = opts.role
	}
	if opts.password != "" {
		body["user_pass"] = opts.password
	}
	if opts.registered != "" {
		body["user_registered"] = opts.registered
	}
	if opts.displayName != "" {
		body["display_name"] = opts.displayName
	}

	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	var result remote.Result
	if err := wprCli.Progress().RunWithProgress("", func() error {
		var err error
		result, err = remote.Dispatch(ctx, client, remote.Users, remote.ActionCreate, remote.DispatchOptions{
			SiteID: siteID,
			Body:   body,
		})
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	if opts.porcelain {
		_, err := wprCli.Out().WriteString(result.Ack.ObjectID + "\n")
		return err
	}

	wprCli.Output().Successln(result.Ack.Message)

	// The password is generated remotely when none was supplied.
	if opts.password == "" {
		if obj, ok := result.Value.(map[string]any); ok {
			if pass, ok := obj["user_pass"]; ok {
				_, err := wprCli.Out().WriteString("Password: " + remote.FormatValue(pass) + "\n")
				return err
			}
		}
	}

	return nil
}
