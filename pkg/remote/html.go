package remote

import (
	"strings"

	"golang.org/x/net/html"
)

// StripTags removes HTML markup from a string, keeping only text
// content. History entries and download progress descriptions sometimes
// arrive with embedded markup.
func StripTags(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}

	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(s))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}
