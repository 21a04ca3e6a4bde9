package crud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	body, err := parseAssignments([]string{"post_title=Hello World", "post_status=draft", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"post_title":  "Hello World",
		"post_status": "draft",
		"note":        "a=b",
	}, body)
}

func TestParseAssignmentsRejectsMalformed(t *testing.T) {
	for _, arg := range []string{"no-separator", "=value"} {
		_, err := parseAssignments([]string{arg})
		assert.Error(t, err, "arg %q", arg)
	}
}
