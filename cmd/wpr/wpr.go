package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/cli/command/commands"
	"wpr/cli/version"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	wprCli, err := command.NewWprCli()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := runWpr(ctx, wprCli); err != nil {
		fmt.Fprintln(wprCli.Err(), err)
		os.Exit(1)
	}
}

func runWpr(ctx context.Context, wprCli *command.WprCli) error {
	tcmd := newWprCommand(wprCli)

	cmd, args, err := tcmd.HandleGlobalFlags()
	if err != nil {
		return err
	}

	if err := tcmd.Initialize(); err != nil {
		return err
	}

	cmd.SetArgs(args)

	return cmd.ExecuteContext(ctx)
}

func newWprCommand(wprCli *command.WprCli) *cli.TopLevelCommand {
	cmd := &cobra.Command{
		Use:              "wpr [OPTIONS] COMMAND [ARG...]",
		Short:            "Manage your remote WordPress sites",
		SilenceUsage:     true,
		SilenceErrors:    true,
		TraverseChildren: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("wpr: unknown command: wpr %s\n\nRun 'wpr --help' for more information on a command", args[0])
		},
		Version: version.Version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   false,
			HiddenDefaultCmd:    true,
			DisableDescriptions: true,
		},
	}
	cmd.SetIn(wprCli.In())
	cmd.SetOut(wprCli.Out())
	cmd.SetErr(wprCli.Err())

	opts, helpCmd := cli.SetupRootCommand(cmd)
	cmd.AddCommand(helpCmd)

	commands.AddCommands(cmd, wprCli)
	cli.DisableFlagsInUseLine(cmd)

	tcmd := cli.NewTopLevelCommand(cmd, wprCli, opts, cmd.Flags())

	logrus.SetOutput(wprCli.Err())

	return tcmd
}
