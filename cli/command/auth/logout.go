package auth

import (
	"fmt"

	"wpr/cli/command"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewLogoutCommand(wprCli command.Cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved account credentials",
		RunE:  func(cmd *cobra.Command, args []string) error { return runLogout(wprCli) },
	}

	return cmd
}

func runLogout(wprCli command.Cli) error {
	cfg := wprCli.ConfigFile()

	if cfg.APIKey == "" && cfg.User == "" && cfg.Password == "" {
		return errors.Errorf("no credentials are saved")
	}

	cfg.APIKey = ""
	cfg.User = ""
	cfg.Password = ""

	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Fprintf(wprCli.Out(), "credentials cleared\n")

	return nil
}
