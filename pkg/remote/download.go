package remote

import (
	"context"
	"fmt"
	"time"

	"wpr/pkg/api"
)

// StatusBackupComplete is the terminal status of a site download job.
const StatusBackupComplete = "backup-complete"

// DefaultPollInterval is the pause between download status polls.
const DefaultPollInterval = 15 * time.Second

// DownloadOptions configures one run of the download state machine.
type DownloadOptions struct {
	SiteID string

	// ArchiveType is the archive the server should build. Default
	// "complete".
	ArchiveType string

	// PollInterval overrides DefaultPollInterval. Tests shrink it.
	PollInterval time.Duration

	// MaxPolls bounds the polling loop; 0 polls forever. The remote
	// job has no server-side deadline, so an unbounded loop matches
	// the service contract; callers wanting a bound set this or cancel
	// the context.
	MaxPolls int

	// Progress receives the HTML-stripped progress description after
	// each in-progress poll. May be nil.
	Progress func(description string)
}

// Download drives the site backup/download workflow: initiate the job,
// poll until the backup completes, and return the artifact URL. The
// caller fetches the URL with an external transfer tool; this layer
// hands off a plain URL string.
//
// The loop is interruptible through ctx. Any request error terminates
// the job and propagates verbatim; the job is never retried.
func Download(ctx context.Context, client *api.Client, opts DownloadOptions) (string, error) {
	if opts.ArchiveType == "" {
		opts.ArchiveType = "complete"
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultPollInterval
	}

	endpoint := fmt.Sprintf("site/%d/download", CoerceID(opts.SiteID))

	if _, err := client.Post(ctx, endpoint, map[string]any{"archive": opts.ArchiveType}); err != nil {
		return "", err
	}

	for polls := 0; ; polls++ {
		if opts.MaxPolls > 0 && polls >= opts.MaxPolls {
			return "", api.NewError(api.CodeAPIError,
				fmt.Sprintf("backup did not complete after %d status checks", opts.MaxPolls))
		}

		value, err := client.Get(ctx, endpoint)
		if err != nil {
			return "", err
		}

		job, ok := value.(map[string]any)
		if !ok {
			return "", api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
		}

		status := FormatValue(job["status"])
		if status == StatusBackupComplete {
			return FormatValue(job["url"]), nil
		}

		if opts.Progress != nil {
			description := FormatValue(job["description"])
			if description == "" {
				description = status
			}
			opts.Progress(StripTags(description))
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(opts.PollInterval):
		}
	}
}
