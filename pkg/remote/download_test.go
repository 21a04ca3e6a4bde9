package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"wpr/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// downloadServer replays a scripted sequence of job states: the first
// request is the initiating POST, each GET after that consumes one
// state.
type downloadServer struct {
	mu     sync.Mutex
	states []map[string]any

	initiated bool
	archive   string
}

func (d *downloadServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.mu.Lock()
		defer d.mu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodPost {
			d.initiated = true
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			d.archive, _ = body["archive"].(string)
			w.Write([]byte(`{}`))
			return
		}

		state := d.states[0]
		if len(d.states) > 1 {
			d.states = d.states[1:]
		}
		_ = json.NewEncoder(w).Encode(state)
	})
}

func newDownloadClient(t *testing.T, d *downloadServer) *api.Client {
	t.Helper()
	srv := httptest.NewServer(d.handler())
	t.Cleanup(srv.Close)
	return api.NewClient(api.ClientOptions{BaseURL: srv.URL})
}

func TestDownloadPollsUntilComplete(t *testing.T) {
	d := &downloadServer{states: []map[string]any{
		{"status": "queued", "description": "<p>Waiting for a worker</p>"},
		{"status": "backup-running"},
		{"status": "backup-complete", "url": "https://cdn.example.com/site.zip"},
	}}
	client := newDownloadClient(t, d)

	var progress []string
	url, err := Download(context.Background(), client, DownloadOptions{
		SiteID:       "7",
		PollInterval: time.Millisecond,
		Progress:     func(description string) { progress = append(progress, description) },
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/site.zip", url)
	assert.True(t, d.initiated)
	assert.Equal(t, "complete", d.archive)

	// Progress descriptions are HTML-stripped, falling back to the
	// status when the job carries no description.
	assert.Equal(t, []string{"Waiting for a worker", "backup-running"}, progress)
}

func TestDownloadArchiveType(t *testing.T) {
	d := &downloadServer{states: []map[string]any{
		{"status": "backup-complete", "url": "u"},
	}}
	client := newDownloadClient(t, d)

	_, err := Download(context.Background(), client, DownloadOptions{
		SiteID:       "7",
		ArchiveType:  "database",
		PollInterval: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, "database", d.archive)
}

func TestDownloadMaxPolls(t *testing.T) {
	d := &downloadServer{states: []map[string]any{
		{"status": "queued"},
	}}
	client := newDownloadClient(t, d)

	_, err := Download(context.Background(), client, DownloadOptions{
		SiteID:       "7",
		PollInterval: time.Millisecond,
		MaxPolls:     3,
	})
	require.Error(t, err)
	assert.True(t, api.IsCode(err, api.CodeAPIError))
}

func TestDownloadContextCancel(t *testing.T) {
	d := &downloadServer{states: []map[string]any{
		{"status": "queued"},
	}}
	client := newDownloadClient(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := Download(ctx, client, DownloadOptions{
			SiteID:       "7",
			PollInterval: time.Hour,
		})
		done <- err
	}()

	// Give the loop time to reach its wait before cancelling.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("download did not stop after context cancellation")
	}
}

func TestDownloadErrorTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write([]byte(`{}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(api.ClientOptions{BaseURL: srv.URL})
	_, err := Download(context.Background(), client, DownloadOptions{
		SiteID:       "7",
		PollInterval: time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, api.IsCode(err, api.CodeAPIError))
}
