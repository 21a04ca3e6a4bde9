package command

import (
	"context"
	"testing"

	"wpr/pkg/api"

	"github.com/stretchr/testify/assert"
)

func TestBaseURL(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		want       string
	}{
		{"default", "", api.DefaultBaseURL},
		{"custom root", "https://managed.example.com", "https://managed.example.com/api/json"},
		{"trailing slash trimmed", "https://managed.example.com/", "https://managed.example.com/api/json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseURL(tt.configured))
		})
	}
}

func TestFormatOptionsFieldList(t *testing.T) {
	opts := FormatOptions{Fields: "ID, user_login ,roles"}
	assert.Equal(t, []string{"ID", "user_login", "roles"}, opts.FieldList())
}

func TestWithCredentials(t *testing.T) {
	cli := &WprCli{}
	assert.NoError(t, cli.Apply(WithCredentials("key", "", "")))

	creds, err := cli.Credentials(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "key", creds.APIKey)
}
