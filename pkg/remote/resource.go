// Package remote implements the WP Remote protocol core: the generic
// CRUD dispatcher, field projection, the plugin/theme action
// dispatcher, and the backup download state machine. Command packages
// stay thin wrappers over this package.
package remote

import "strconv"

// Resource describes one remote object family the CRUD dispatcher can
// act on. Descriptors are static; the remote API objects they map to
// inconsistently prefix field names, which is what the projection
// fallback in fields.go exists for.
type Resource struct {
	// Type is the path segment and the field-name prefix ("post",
	// "user", "comment").
	Type string

	// DefaultFields is the ordered field list used when the caller
	// doesn't pass --fields.
	DefaultFields []string

	// IDField names the identifier field on response objects.
	IDField string
}

var (
	Posts = Resource{
		Type:          "post",
		DefaultFields: []string{"ID", "post_title", "post_name", "post_date", "post_status"},
		IDField:       "ID",
	}

	Comments = Resource{
		Type: "comment",
		DefaultFields: []string{
			"comment_ID", "comment_post_ID", "comment_date",
			"comment_approved", "comment_author", "comment_author_email",
		},
		IDField: "comment_ID",
	}

	Users = Resource{
		Type: "user",
		DefaultFields: []string{
			"ID", "user_login", "display_name", "user_email",
			"user_registered", "roles",
		},
		IDField: "ID",
	}
)

// CoerceID reproduces the loose integer coercion the remote API
// tolerates for site ids: the leading numeric prefix of the string, or
// 0 when there is none. Callers should validate ids before this layer
// to avoid silent truncation.
func CoerceID(id string) int {
	end := 0
	for end < len(id) && id[end] >= '0' && id[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(id[:end])
	if err != nil {
		return 0
	}
	return n
}
