package api

import "encoding/base64"

// Credentials holds one of the two supported authentication modes.
// An API key takes precedence over a username/password pair.
type Credentials struct {
	APIKey   string
	User     string
	Password string
}

// IsZero reports whether no credential is configured at all.
func (c Credentials) IsZero() bool {
	return c.APIKey == "" && c.User == "" && c.Password == ""
}

// identity returns the value that gets base64-encoded into the Basic
// authorization header. API keys authenticate as "key:" with an empty
// password slot.
func (c Credentials) identity() string {
	if c.APIKey != "" {
		return c.APIKey + ":"
	}
	return c.User + ":" + c.Password
}

// BasicAuth returns the full Authorization header value, or an empty
// string when no credential is configured.
func (c Credentials) BasicAuth() string {
	if c.IsZero() {
		return ""
	}
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.identity()))
}
