package remote

import (
	"fmt"

	"wpr/pkg/api"
)

// Record is one projected response object: an ordered field list plus
// the resolved values. Order matters for table and csv rendering.
type Record struct {
	Fields []string
	Values map[string]any
}

// Get returns the value for a field, or nil when absent.
func (r Record) Get(field string) any {
	return r.Values[field]
}

// ResolveField looks a requested field up on a response object, trying
// the bare name first and the type-qualified name second. The fallback
// exists because remote API objects inconsistently prefix field names
// (a user object may carry "user_email" where the caller asked for
// "email").
func ResolveField(obj map[string]any, objType, field string) (any, bool) {
	for _, key := range []string{field, objType + "_" + field} {
		if value, ok := obj[key]; ok {
			return value, true
		}
	}
	return nil, false
}

// ResolveFieldStrict resolves a single caller-requested field and
// reports an unknown-field error when neither the bare nor the
// qualified key exists.
func ResolveFieldStrict(obj map[string]any, objType, field string) (any, error) {
	value, ok := ResolveField(obj, objType, field)
	if !ok {
		return nil, api.NewError(api.CodeUnknownField, fmt.Sprintf("Invalid %s field: %s.", objType, field))
	}
	return value, nil
}

// ProjectFields shapes a response object into a Record over the given
// field list. Fields that resolve on neither key render as nil; that is
// only an error for single-field gets, not for list projection.
func ProjectFields(obj map[string]any, objType string, fields []string) Record {
	values := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := ResolveField(obj, objType, field); ok {
			values[field] = value
		}
	}
	return Record{Fields: fields, Values: values}
}
