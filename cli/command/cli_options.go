package command

import (
	"io"

	"wpr/cli/streams"
	"wpr/pkg/api"

	"github.com/moby/term"
)

// CLIOption is a functional argument to apply options to a [WprCli]. These
// options can be passed to [NewWprCli] to initialize a new CLI, or
// applied with [WprCli.Initialize] or [WprCli.Apply].
type CLIOption func(cli *WprCli) error

// WithStandardStreams sets a cli in, out and err streams with the standard streams.
func WithStandardStreams() CLIOption {
	return func(cli *WprCli) error {
		// Set terminal emulation based on platform as required.
		stdin, stdout, stderr := term.StdStreams()
		cli.in = streams.NewIn(stdin)
		cli.out = streams.NewOut(stdout)
		cli.err = streams.NewOut(stderr)
		return nil
	}
}

// WithCombinedStreams uses the same stream for the output and error streams.
func WithCombinedStreams(combined io.Writer) CLIOption {
	return func(cli *WprCli) error {
		s := streams.NewOut(combined)
		cli.out = s
		cli.err = s
		return nil
	}
}

// WithInputStream sets a cli input stream.
func WithInputStream(in io.ReadCloser) CLIOption {
	return func(cli *WprCli) error {
		cli.in = streams.NewIn(in)
		return nil
	}
}

// WithOutputStream sets a cli output stream.
func WithOutputStream(out io.Writer) CLIOption {
	return func(cli *WprCli) error {
		cli.out = streams.NewOut(out)
		return nil
	}
}

// WithErrorStream sets a cli error stream.
func WithErrorStream(err io.Writer) CLIOption {
	return func(cli *WprCli) error {
		cli.err = streams.NewOut(err)
		return nil
	}
}

// WithCredentials presets resolved credentials, bypassing config and
// prompt resolution. Tests use it.
func WithCredentials(apiKey, user, password string) CLIOption {
	return func(cli *WprCli) error {
		cli.creds = &api.Credentials{APIKey: apiKey, User: user, Password: password}
		return nil
	}
}
