package auth

import (
	"context"
	"fmt"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/output"

	"github.com/morikuni/aec"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type loginOptions struct {
	apiKey string
}

func NewLoginCommand(wprCli command.Cli) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save account credentials to the config file",
		Args:  cli.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return runLogin(cmd.Context(), wprCli, opts) },
	}

	flags := cmd.Flags()

	flags.StringVar(&opts.apiKey, "api-key", "", "API key to use for authentication")

	return cmd
}

func apiKeyStdinPrompt(ctx context.Context, wprCli command.Cli, opts *loginOptions) error {
	restoreInput, err := command.DisableInputEcho(wprCli.In())
	if err != nil {
		return err
	}
	defer func() {
		if err := restoreInput(); err != nil {
			_, _ = fmt.Fprintln(wprCli.Err(), "failed to restore terminal state to echo input:", err)
		}
	}()

	apiKey, err := command.PromptForInput(ctx, wprCli.In(), wprCli.Err(), "API key: ")
	if err != nil {
		return err
	}

	wprCli.Err().WriteString("\n")

	if apiKey == "" {
		return errors.Errorf("api key cannot be empty")
	}

	opts.apiKey = apiKey

	return nil
}

func runLogin(ctx context.Context, wprCli command.Cli, opts loginOptions) error {
	if opts.apiKey != "" {
		wprCli.Output().PrettyErrorln(output.Text{
			Plain: "WARNING! Using --api-key via the CLI is insecure.",
			Fancy: aec.RedF.Apply("WARNING! Using --api-key via the CLI is insecure."),
		})
	}

	if opts.apiKey == "" && wprCli.In().IsTerminal() {
		if err := apiKeyStdinPrompt(ctx, wprCli, &opts); err != nil {
			return err
		}
	}

	if opts.apiKey == "" {
		return errors.Errorf("api key cannot be empty")
	}

	cfg := wprCli.ConfigFile()
	cfg.APIKey = opts.apiKey

	// Check the key against the account endpoint before saving it.
	if err := wprCli.Apply(command.WithCredentials(opts.apiKey, "", "")); err != nil {
		return err
	}
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}
	if err := wprCli.Progress().RunWithProgress("validating api key", func() error {
		_, err := client.Get(ctx, "site/")
		return err
	}, wprCli.Err()); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	wprCli.Output().Prettyln(output.Text{
		Plain: "credentials saved",
		Fancy: aec.GreenF.Apply("credentials saved"),
	})

	return nil
}
