package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"wpr/pkg/remote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []remote.Record {
	return []remote.Record{
		{
			Fields: []string{"ID", "user_login", "roles"},
			Values: map[string]any{"ID": float64(1), "user_login": "alice", "roles": []any{"administrator"}},
		},
		{
			Fields: []string{"ID", "user_login", "roles"},
			Values: map[string]any{"ID": float64(2), "user_login": "bob", "roles": []any{"editor"}},
		},
	}
}

func TestFormatItemsTable(t *testing.T) {
	var buf bytes.Buffer
	err := FormatItems(&buf, FormatTable, sampleRecords(), []string{"ID", "user_login", "roles"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "user_login")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, `["editor"]`)
}

func TestFormatItemsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := FormatItems(&buf, FormatCSV, sampleRecords(), []string{"ID", "user_login"})
	require.NoError(t, err)

	assert.Equal(t, "ID,user_login\n1,alice\n2,bob\n", buf.String())
}

func TestFormatItemsJSON(t *testing.T) {
	var buf bytes.Buffer
	err := FormatItems(&buf, FormatJSON, sampleRecords(), []string{"ID", "user_login"})
	require.NoError(t, err)

	var items []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.Equal(t, "alice", items[0]["user_login"])
	assert.Equal(t, float64(2), items[1]["ID"])
}

func TestFormatItemsIDs(t *testing.T) {
	var buf bytes.Buffer
	err := FormatItems(&buf, FormatIDs, sampleRecords(), []string{"ID", "user_login"})
	require.NoError(t, err)

	assert.Equal(t, "1 2\n", buf.String())
}

func TestFormatItemsInvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	err := FormatItems(&buf, "yaml", nil, nil)
	require.Error(t, err)
	assert.Equal(t, "invalid format: yaml", err.Error())
}

func TestFormatItem(t *testing.T) {
	record := remote.Record{
		Fields: []string{"id", "url"},
		Values: map[string]any{"id": float64(3), "url": "https://example.com/hook"},
	}

	var buf bytes.Buffer
	require.NoError(t, FormatItem(&buf, FormatTable, record))
	assert.Contains(t, buf.String(), "Field")
	assert.Contains(t, buf.String(), "https://example.com/hook")

	buf.Reset()
	require.NoError(t, FormatItem(&buf, FormatJSON, record))
	var items []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0]["id"])
}

func TestFormatKeyValues(t *testing.T) {
	var buf bytes.Buffer
	err := FormatKeyValues(&buf, FormatTable, map[string]any{
		"zeta":  "last",
		"alpha": "first",
	})
	require.NoError(t, err)

	out := buf.String()
	// Keys come out sorted.
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("alpha")), bytes.Index(buf.Bytes(), []byte("zeta")))
	assert.Contains(t, out, "Key")
}
