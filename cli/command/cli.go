package command

import (
	"context"
	"io"
	"strings"
	"time"

	"wpr/cli/debug"
	cliflags "wpr/cli/flags"
	"wpr/cli/streams"
	"wpr/pkg/api"
	"wpr/pkg/config"
	"wpr/pkg/config/configfile"
	"wpr/pkg/output"
	"wpr/pkg/progress"

	"github.com/spf13/cobra"
)

// Streams is an interface which exposes the standard input and output streams
type Streams interface {
	In() *streams.In
	Out() *streams.Out
	Err() *streams.Out
}

// Cli represents the wpr command line client.
type Cli interface {
	Streams
	SetIn(in *streams.In)
	Apply(ops ...CLIOption) error
	ConfigFile() *configfile.ConfigFile
	Output() *output.Output
	Progress() *progress.Progress
	Credentials(ctx context.Context) (api.Credentials, error)
	APIClient(ctx context.Context) (*api.Client, error)
}

// WprCli is an instance of the wpr command line client.
// Instances of the client can be returned from NewWprCli.
type WprCli struct {
	in         *streams.In
	out        *streams.Out
	err        *streams.Out
	configFile *configfile.ConfigFile
	output     *output.Output
	progress   *progress.Progress
	apiClient  *api.Client
	creds      *api.Credentials
}

// NewWprCli returns a WprCli instance with all operators applied on it.
// It applies by default the standard streams.
func NewWprCli(ops ...CLIOption) (*WprCli, error) {
	defaultOps := []CLIOption{
		WithStandardStreams(),
	}
	ops = append(defaultOps, ops...)

	cli := &WprCli{}
	if err := cli.Apply(ops...); err != nil {
		return nil, err
	}
	return cli, nil
}

// Out returns the writer used for stdout
func (cli *WprCli) Out() *streams.Out {
	return cli.out
}

// Err returns the writer used for stderr
func (cli *WprCli) Err() *streams.Out {
	return cli.err
}

// SetIn sets the reader used for stdin
func (cli *WprCli) SetIn(in *streams.In) {
	cli.in = in
}

// In returns the reader used for stdin
func (cli *WprCli) In() *streams.In {
	return cli.in
}

// Output returns the Plain/Fancy writer over the cli streams.
func (cli *WprCli) Output() *output.Output {
	if cli.output == nil {
		cli.output = output.New(cli.out, cli.err)
	}
	return cli.output
}

// Progress returns the spinner wrapper bound to the error stream.
func (cli *WprCli) Progress() *progress.Progress {
	if cli.progress == nil {
		cli.progress = &progress.Progress{
			ProgressIndicatorEnabled: cli.err.IsTerminal(),
			ProgressColorEnabled:     cli.err.IsColorEnabled(),
		}
	}
	return cli.progress
}

// ShowHelp shows the command help.
func ShowHelp(err io.Writer) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cmd.SetOut(err)
		cmd.HelpFunc()(cmd, args)
		return nil
	}
}

// Apply all the operation on the cli
func (cli *WprCli) Apply(ops ...CLIOption) error {
	for _, op := range ops {
		if err := op(cli); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFile returns the ConfigFile
func (cli *WprCli) ConfigFile() *configfile.ConfigFile {
	if cli.configFile == nil {
		cli.configFile = config.LoadDefaultConfigFile(cli.err)
	}
	return cli.configFile
}

// Credentials resolves the account credentials once per process:
// configured API key first, then configured username/password, then an
// interactive prompt. Credential shape is not validated here; invalid
// credentials surface as a 401 from the API.
func (cli *WprCli) Credentials(ctx context.Context) (api.Credentials, error) {
	if cli.creds != nil {
		return *cli.creds, nil
	}

	cfg := cli.ConfigFile()

	creds := api.Credentials{}
	switch {
	case cfg.APIKey != "":
		creds.APIKey = cfg.APIKey
	case cfg.User != "" && cfg.Password != "":
		creds.User = cfg.User
		creds.Password = cfg.Password
	default:
		user, password, err := promptAccount(ctx, cli)
		if err != nil {
			return api.Credentials{}, err
		}
		creds.User = user
		creds.Password = password
	}

	cli.creds = &creds
	return creds, nil
}

// APIClient returns the request engine configured from the config file
// and resolved credentials, building it on first use. Resolving
// credentials may block on an interactive prompt.
func (cli *WprCli) APIClient(ctx context.Context) (*api.Client, error) {
	if cli.apiClient != nil {
		return cli.apiClient, nil
	}

	creds, err := cli.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	cfg := cli.ConfigFile()

	opts := api.ClientOptions{
		BaseURL:     BaseURL(cfg.BaseURL),
		Credentials: creds,
		Log:         cli.err,
		LogColorize: cli.err.IsColorEnabled(),
	}
	if cfg.Timeout > 0 {
		opts.Timeout = time.Duration(cfg.Timeout) * time.Second
	}

	cli.apiClient = api.NewClient(opts)
	return cli.apiClient, nil
}

// BaseURL turns a configured service root into the JSON API root. The
// service always mounts the API under /api/json.
func BaseURL(configured string) string {
	if configured == "" {
		return api.DefaultBaseURL
	}
	return strings.TrimRight(configured, "/") + "/api/json"
}

// Initialize runs initialization that must happen after command line
// flags are parsed.
func (cli *WprCli) Initialize(opts *cliflags.ClientOptions, ops ...CLIOption) error {
	for _, o := range ops {
		if err := o(cli); err != nil {
			return err
		}
	}
	cliflags.SetLogLevel(opts.LogLevel)

	if opts.ConfigDir != "" {
		config.SetDir(opts.ConfigDir)
	}

	if opts.Debug {
		debug.Enable()
	}

	cli.configFile = config.LoadDefaultConfigFile(cli.err)

	return nil
}
