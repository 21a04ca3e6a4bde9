package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"wpr/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformExtensionAction(t *testing.T) {
	tests := []struct {
		objType ExtensionType
		action  string
		message string
	}{
		{ExtensionPlugin, "install", "Plugin was installed."},
		{ExtensionPlugin, "activate", "Plugin was activated."},
		{ExtensionPlugin, "deactivate", "Plugin was deactivated."},
		{ExtensionPlugin, "update", "Plugin was updated."},
		{ExtensionPlugin, "uninstall", "Plugin was uninstalled."},
		{ExtensionTheme, "delete", "Theme was deleted."},
		{ExtensionTheme, "lock-update", "Theme was lock-updated."},
	}

	for _, tt := range tests {
		t.Run(string(tt.objType)+" "+tt.action, func(t *testing.T) {
			var method, path string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				method = r.Method
				path = r.URL.Path
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Write([]byte(`{}`))
			}))
			t.Cleanup(srv.Close)

			client := api.NewClient(api.ClientOptions{BaseURL: srv.URL})
			ack, err := PerformExtensionAction(context.Background(), client, tt.objType, tt.action, "akismet", "7", nil)
			require.NoError(t, err)

			// Every lifecycle action goes out as a POST.
			assert.Equal(t, http.MethodPost, method)
			assert.Equal(t, "/sites/7/"+string(tt.objType)+"/akismet/"+tt.action+"/", path)
			assert.Equal(t, tt.message, ack.Message)
		})
	}
}

func TestListExtensions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sites/7/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{
			"ID": 7,
			"plugins": [
				{"name": "Zeta", "slug": "zeta", "version": "2.0", "latest_version": "2.0", "is_active": false},
				{"name": "Akismet", "slug": "akismet", "version": "1.0", "latest_version": "1.1", "is_active": true},
				{"name": "plugin 10", "slug": "p10", "version": "weird", "latest_version": "9.9", "is_active": true},
				{"name": "plugin 2", "slug": "p2", "version": "3.0", "latest_version": "2.0", "is_active": true}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(api.ClientOptions{BaseURL: srv.URL})
	records, err := ListExtensions(context.Background(), client, ExtensionPlugin, "7", PluginFields)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Natural name order: "plugin 2" sorts before "plugin 10".
	assert.Equal(t, "Akismet", records[0].Get("name"))
	assert.Equal(t, "plugin 2", records[1].Get("name"))
	assert.Equal(t, "plugin 10", records[2].Get("name"))
	assert.Equal(t, "Zeta", records[3].Get("name"))

	akismet := records[0]
	assert.Equal(t, "active", akismet.Get("status"))
	assert.Equal(t, "available", akismet.Get("update"))
	assert.Equal(t, "akismet", akismet.Get("slug"))

	zeta := records[3]
	assert.Equal(t, "inactive", zeta.Get("status"))
	assert.Equal(t, "none", zeta.Get("update"))

	// Unparseable versions never report an update; newer installed
	// versions don't either.
	assert.Equal(t, "none", records[2].Get("update"))
	assert.Equal(t, "none", records[1].Get("update"))
}

func TestListExtensionsThemesHaveNoSlug(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"themes": [{"name": "Twenty Ten", "version": "1.0", "latest_version": "1.0", "is_active": true}]}`))
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(api.ClientOptions{BaseURL: srv.URL})
	records, err := ListExtensions(context.Background(), client, ExtensionTheme, "7", ThemeFields)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, []string{"name", "status", "update", "version"}, records[0].Fields)
	assert.Equal(t, "active", records[0].Get("status"))
}
