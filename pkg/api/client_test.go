package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		endpoint string
		want     string
	}{
		{"no slashes", "https://wpremote.com/api/json", "site/1", "https://wpremote.com/api/json/site/1"},
		{"trailing base slash", "https://wpremote.com/api/json/", "site/1", "https://wpremote.com/api/json/site/1"},
		{"leading endpoint slash", "https://wpremote.com/api/json", "/site/1", "https://wpremote.com/api/json/site/1"},
		{"both slashes", "https://wpremote.com/api/json/", "/site/1", "https://wpremote.com/api/json/site/1"},
		{"trailing endpoint slash kept", "https://wpremote.com/api/json", "site/", "https://wpremote.com/api/json/site/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinURL(tt.base, tt.endpoint))
		})
	}
}

func newTestClient(t *testing.T, handler http.Handler, creds Credentials) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientOptions{BaseURL: srv.URL, Credentials: creds})
}

func TestDoClassification(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		w.Write([]byte(`{"ID": 42}`))
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/html", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>not json</html>"))
	})
	mux.HandleFunc("/envelope", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", jsonContentType)
		w.Write([]byte(`{"status":"error","error_code":"invalid-site","error_message":"No such site."}`))
	})
	mux.HandleFunc("/unauthorized", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("database on fire"))
	})

	client := newTestClient(t, mux, Credentials{APIKey: "k"})
	ctx := context.Background()

	t.Run("valid json", func(t *testing.T) {
		value, err := client.Get(ctx, "ok")
		require.NoError(t, err)
		obj, ok := value.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(42), obj["ID"])
	})

	t.Run("empty body", func(t *testing.T) {
		value, err := client.Get(ctx, "empty")
		require.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := client.Get(ctx, "html")
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeInvalidResponse))
		assert.Equal(t, "the server didn't return a valid JSON response", err.Error())
	})

	t.Run("error envelope keeps server code", func(t *testing.T) {
		_, err := client.Get(ctx, "envelope")
		require.Error(t, err)
		assert.True(t, IsCode(err, "invalid-site"))
		assert.Equal(t, "No such site.", err.Error())
	})

	t.Run("unauthorized", func(t *testing.T) {
		_, err := client.Get(ctx, "unauthorized")
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeUnauthorized))
		assert.Equal(t, "Invalid account details.", err.Error())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeNotFound))
		assert.Equal(t, "Not found.", err.Error())
	})

	t.Run("other status", func(t *testing.T) {
		_, err := client.Get(ctx, "broken")
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeAPIError))
		assert.Equal(t, "HTTP 500: database on fire", err.Error())
	})
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(ClientOptions{BaseURL: url})
	_, err := client.Get(context.Background(), "site/")
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeTransportFailure))
}

func TestAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		want  string
	}{
		{
			name:  "api key",
			creds: Credentials{APIKey: "secret"},
			want:  "Basic c2VjcmV0Og==", // base64("secret:")
		},
		{
			name:  "user and password",
			creds: Credentials{User: "alice", Password: "hunter2"},
			want:  "Basic YWxpY2U6aHVudGVyMg==", // base64("alice:hunter2")
		},
		{
			name:  "api key wins over user and password",
			creds: Credentials{APIKey: "secret", User: "alice", Password: "hunter2"},
			want:  "Basic c2VjcmV0Og==",
		},
		{
			name:  "no credentials",
			creds: Credentials{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.Header().Set("Content-Type", jsonContentType)
				w.Write([]byte(`{}`))
			}), tt.creds)

			_, err := client.Get(context.Background(), "site/")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialsBasicAuth(t *testing.T) {
	assert.Equal(t, "", Credentials{}.BasicAuth())
	assert.True(t, Credentials{}.IsZero())
	assert.False(t, Credentials{APIKey: "k"}.IsZero())
}
