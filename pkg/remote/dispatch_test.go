package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"wpr/pkg/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoute(t *testing.T) {
	opts := DispatchOptions{SiteID: "12", ObjectID: "34", MetaKey: "color"}

	tests := []struct {
		action   Action
		endpoint string
		method   string
	}{
		{ActionList, "site/12/post", http.MethodGet},
		{ActionGet, "site/12/post/34", http.MethodGet},
		{ActionCreate, "site/12/post", http.MethodPost},
		{ActionUpdate, "site/12/post/34", http.MethodPost},
		{ActionDelete, "site/12/post/34", http.MethodDelete},
		{ActionMetaList, "site/12/post/34/meta", http.MethodGet},
		{ActionMetaGet, "site/12/post/34/meta/color", http.MethodGet},
		{ActionMetaAdd, "site/12/post/34/meta", http.MethodPost},
		{ActionMetaUpdate, "site/12/post/34/meta/color", http.MethodPost},
		{ActionMetaDelete, "site/12/post/34/meta/color", http.MethodDelete},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			endpoint, method, _, err := route(Posts, tt.action, opts)
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.method, method)
		})
	}

	t.Run("site id coerced", func(t *testing.T) {
		endpoint, _, _, err := route(Posts, ActionList, DispatchOptions{SiteID: "12abc"})
		require.NoError(t, err)
		assert.Equal(t, "site/12/post", endpoint)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, _, _, err := route(Posts, Action("explode"), opts)
		require.Error(t, err)
	})
}

type dispatchServer struct {
	method   string
	path     string
	body     map[string]any
	response string
	status   int
}

func (s *dispatchServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.method = r.Method
		s.path = r.URL.Path
		s.body = nil
		_ = json.NewDecoder(r.Body).Decode(&s.body)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if s.status != 0 {
			w.WriteHeader(s.status)
		}
		w.Write([]byte(s.response))
	})
}

func newDispatchClient(t *testing.T, s *dispatchServer) *api.Client {
	t.Helper()
	srv := httptest.NewServer(s.handler())
	t.Cleanup(srv.Close)
	return api.NewClient(api.ClientOptions{BaseURL: srv.URL, Credentials: api.Credentials{APIKey: "k"}})
}

func TestDispatchList(t *testing.T) {
	srv := &dispatchServer{response: `[
		{"ID": 2, "post_title": "Second"},
		{"ID": 1, "post_title": "First"}
	]`}
	client := newDispatchClient(t, srv)

	result, err := Dispatch(context.Background(), client, Posts, ActionList, DispatchOptions{
		SiteID: "5",
		Fields: []string{"ID", "title"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/site/5/post", srv.path)
	assert.Equal(t, KindRecords, result.Kind)
	require.Len(t, result.Records, 2)

	// Server order is preserved.
	assert.Equal(t, float64(2), result.Records[0].Get("ID"))
	assert.Equal(t, "Second", result.Records[0].Get("title"))
	assert.Equal(t, float64(1), result.Records[1].Get("ID"))
}

func TestDispatchListRejectsNonArray(t *testing.T) {
	srv := &dispatchServer{response: `{"ID": 1}`}
	client := newDispatchClient(t, srv)

	_, err := Dispatch(context.Background(), client, Posts, ActionList, DispatchOptions{SiteID: "5"})
	require.Error(t, err)
	assert.True(t, api.IsCode(err, api.CodeInvalidResponse))
}

func TestDispatchGet(t *testing.T) {
	srv := &dispatchServer{response: `{"ID": 9, "post_title": "Hello", "post_status": "publish"}`}
	client := newDispatchClient(t, srv)

	t.Run("projected record", func(t *testing.T) {
		result, err := Dispatch(context.Background(), client, Posts, ActionGet, DispatchOptions{
			SiteID:   "5",
			ObjectID: "9",
			Fields:   []string{"ID", "title"},
		})
		require.NoError(t, err)
		assert.Equal(t, "/site/5/post/9", srv.path)
		assert.Equal(t, KindRecord, result.Kind)
		assert.Equal(t, "Hello", result.Record.Get("title"))
	})

	t.Run("single field", func(t *testing.T) {
		result, err := Dispatch(context.Background(), client, Posts, ActionGet, DispatchOptions{
			SiteID:   "5",
			ObjectID: "9",
			Field:    "status",
		})
		require.NoError(t, err)
		assert.Equal(t, KindValue, result.Kind)
		assert.Equal(t, "publish", result.Value)
	})

	t.Run("unknown single field", func(t *testing.T) {
		_, err := Dispatch(context.Background(), client, Posts, ActionGet, DispatchOptions{
			SiteID:   "5",
			ObjectID: "9",
			Field:    "subtitle",
		})
		require.Error(t, err)
		assert.True(t, api.IsCode(err, api.CodeUnknownField))
		assert.Equal(t, "Invalid post field: subtitle.", err.Error())
	})
}

func TestDispatchCreate(t *testing.T) {
	srv := &dispatchServer{response: `{"ID": 101, "user_login": "carol", "user_pass": "generated"}`}
	client := newDispatchClient(t, srv)

	result, err := Dispatch(context.Background(), client, Users, ActionCreate, DispatchOptions{
		SiteID: "5",
		Body:   map[string]any{"user_login": "carol"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, srv.method)
	assert.Equal(t, map[string]any{"user_login": "carol"}, srv.body)
	assert.Equal(t, KindAck, result.Kind)
	assert.Equal(t, "101", result.Ack.ObjectID)
	assert.Equal(t, "Created user 101.", result.Ack.Message)

	// The raw response stays available for callers that need more than
	// the id, like the generated password.
	obj, ok := result.Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "generated", obj["user_pass"])
}

func TestDispatchWriteAcks(t *testing.T) {
	tests := []struct {
		action  Action
		body    map[string]any
		method  string
		path    string
		message string
	}{
		{ActionUpdate, map[string]any{"post_title": "New"}, http.MethodPost, "/site/5/post/9", "Updated post."},
		{ActionDelete, nil, http.MethodDelete, "/site/5/post/9", "Deleted post."},
		{ActionMetaAdd, map[string]any{"meta_key": "k", "meta_value": "v"}, http.MethodPost, "/site/5/post/9/meta", "Added post meta value."},
		{ActionMetaUpdate, map[string]any{"meta_value": "v"}, http.MethodPost, "/site/5/post/9/meta/k", "Updated post meta value."},
		{ActionMetaDelete, nil, http.MethodDelete, "/site/5/post/9/meta/k", "Deleted post meta value."},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			srv := &dispatchServer{response: `{}`}
			client := newDispatchClient(t, srv)

			result, err := Dispatch(context.Background(), client, Posts, tt.action, DispatchOptions{
				SiteID:   "5",
				ObjectID: "9",
				MetaKey:  "k",
				Body:     tt.body,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.method, srv.method)
			assert.Equal(t, tt.path, srv.path)
			assert.Equal(t, KindAck, result.Kind)
			assert.Equal(t, tt.message, result.Ack.Message)
		})
	}
}

// TestDispatchCreateThenGet drives a stateful double: the object
// returned by create is fetched back by its returned id and projected
// with every requested field populated.
func TestDispatchCreateThenGet(t *testing.T) {
	var stored map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("POST /site/5/post", func(w http.ResponseWriter, r *http.Request) {
		stored = map[string]any{"ID": float64(77)}
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		for k, v := range body {
			stored[k] = v
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(stored)
	})
	mux.HandleFunc("GET /site/5/post/77", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(stored)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(api.ClientOptions{BaseURL: srv.URL})
	ctx := context.Background()

	created, err := Dispatch(ctx, client, Posts, ActionCreate, DispatchOptions{
		SiteID: "5",
		Body:   map[string]any{"post_title": "Round Trip", "post_status": "draft"},
	})
	require.NoError(t, err)
	require.Equal(t, "77", created.Ack.ObjectID)

	fields := []string{"ID", "title", "status"}
	fetched, err := Dispatch(ctx, client, Posts, ActionGet, DispatchOptions{
		SiteID:   "5",
		ObjectID: created.Ack.ObjectID,
		Fields:   fields,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(77), fetched.Record.Get("ID"))
	assert.Equal(t, "Round Trip", fetched.Record.Get("title"))
	assert.Equal(t, "draft", fetched.Record.Get("status"))
}

func TestDispatchPropagatesAPIErrors(t *testing.T) {
	srv := &dispatchServer{status: http.StatusUnauthorized}
	client := newDispatchClient(t, srv)

	_, err := Dispatch(context.Background(), client, Posts, ActionList, DispatchOptions{SiteID: "5"})
	require.Error(t, err)
	assert.True(t, api.IsCode(err, api.CodeUnauthorized))
	assert.Equal(t, "Invalid account details.", err.Error())
}
