package asciisanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/text/transform"
)

func TestSanitizer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean input untouched", `{"title": "Hello"}`, `{"title": "Hello"}`},
		{"control characters dropped", "{\"a\": \x00\"b\x07\"}", `{"a": "b"}`},
		{"whitespace controls kept", "line1\r\n\tline2", "line1\r\n\tline2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := transform.String(&Sanitizer{JSON: true}, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizerStreaming(t *testing.T) {
	in := strings.Repeat("abc\x01", 5000)
	reader := transform.NewReader(strings.NewReader(in), &Sanitizer{})
	var out strings.Builder
	buf := make([]byte, 512)
	for {
		n, err := reader.Read(buf)
		out.Write(buf[:n])
		if err != nil {
			break
		}
	}
	assert.Equal(t, strings.Repeat("abc", 5000), out.String())
}
