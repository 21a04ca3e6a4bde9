package site

import (
	"context"

	"wpr/cli"
	"wpr/cli/command"
	"wpr/pkg/remote"

	"github.com/spf13/cobra"
)

type downloadOptions struct {
	archive  string
	maxPolls int
}

func newDownloadCommand(wprCli command.Cli) *cobra.Command {
	var opts downloadOptions

	cmd := &cobra.Command{
		Use:   "download SITE_ID",
		Short: "Build a site archive and print its download URL",
		Long: `Build a site archive and print its download URL.

Requests an archive of the site, waits for the remote backup job to
finish, and prints the URL of the finished archive. Fetching the
archive itself is left to curl or wget.`,
		Args: cli.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), wprCli, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.archive, "archive", "complete", `Archive type to build ("complete" or "database")`)
	cmd.Flags().IntVar(&opts.maxPolls, "max-polls", 0, "Give up after this many status checks (0 polls until done)")

	return cmd
}

func runDownload(ctx context.Context, wprCli command.Cli, siteID string, opts downloadOptions) error {
	client, err := wprCli.APIClient(ctx)
	if err != nil {
		return err
	}

	progress := wprCli.Progress()
	progress.StartProgressIndicatorWithLabel("Requesting site archive", wprCli.Err())
	defer progress.StopProgressIndicator()

	url, err := remote.Download(ctx, client, remote.DownloadOptions{
		SiteID:      siteID,
		ArchiveType: opts.archive,
		MaxPolls:    opts.maxPolls,
		Progress: func(description string) {
			progress.StartProgressIndicatorWithLabel(description, wprCli.Err())
		},
	})
	if err != nil {
		return err
	}

	progress.StopProgressIndicator()
	_, err = wprCli.Out().WriteString(url + "\n")

	return err
}
