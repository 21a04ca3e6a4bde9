package api

import (
	"io"
	"time"
)

// DefaultBaseURL is the WP Remote JSON API root used when no override
// is configured.
const DefaultBaseURL = "https://wpremote.com/api/json"

// DefaultTimeout bounds each API round trip.
const DefaultTimeout = 30 * time.Second

// ClientOptions holds available options to configure API clients.
type ClientOptions struct {
	// BaseURL is the API root that endpoint paths are joined onto.
	// Default is DefaultBaseURL.
	BaseURL string

	// Credentials used to build the Authorization header. When zero,
	// requests go out unauthenticated.
	Credentials Credentials

	// Headers are sent with every API request. Default headers set are
	// Accept, Content-Type, Time-Zone, and User-Agent; keys specified
	// here override them.
	Headers map[string]string

	// Log specifies a writer to write API request logs to.
	Log io.Writer

	// LogColorize enables colorized logging to Log for display in a
	// terminal. Default is no coloring.
	LogColorize bool

	// LogVerboseHTTP enables logging HTTP headers and bodies to Log.
	// Default is only logging request URLs and response statuses.
	LogVerboseHTTP bool

	// SkipDefaultHeaders disables setting of the default headers.
	SkipDefaultHeaders bool

	// Timeout specifies a time limit for each API request.
	// Default is DefaultTimeout.
	Timeout time.Duration
}

func resolveOptions(opts ClientOptions) ClientOptions {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return opts
}
