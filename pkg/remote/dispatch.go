package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"wpr/pkg/api"
)

// Action is one of the operations the CRUD dispatcher supports.
type Action string

const (
	ActionList   Action = "list"
	ActionGet    Action = "get"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"

	ActionMetaList   Action = "meta-list"
	ActionMetaGet    Action = "meta-get"
	ActionMetaAdd    Action = "meta-add"
	ActionMetaUpdate Action = "meta-update"
	ActionMetaDelete Action = "meta-delete"
)

// DispatchOptions carries the per-call inputs of a CRUD dispatch.
type DispatchOptions struct {
	SiteID   string
	ObjectID string
	MetaKey  string

	// Fields overrides the resource's default field list.
	Fields []string

	// Field requests a single scalar field on get.
	Field string

	// Body is the request payload for create/update and meta writes.
	Body map[string]any
}

// ResultKind tags which member of Result holds the outcome.
type ResultKind int

const (
	KindRecords ResultKind = iota // list: projected rows in server order
	KindRecord                    // get: one projected object
	KindValue                     // single-field get, meta values
	KindAck                       // create/update/delete acknowledgment
)

// Ack is a minimal success result carrying resource identity.
type Ack struct {
	Resource string
	ObjectID string
	Message  string
}

// Result is the displayable outcome of a dispatch.
type Result struct {
	Kind    ResultKind
	Records []Record
	Record  Record
	Value   any
	Ack     Ack
}

// Dispatch computes the endpoint and method for the action, sends the
// request through the API client, and shapes the response. Any engine
// error aborts immediately and is returned verbatim; there is no retry
// and no partial result.
func Dispatch(ctx context.Context, client *api.Client, res Resource, action Action, opts DispatchOptions) (Result, error) {
	endpoint, method, body, err := route(res, action, opts)
	if err != nil {
		return Result{}, err
	}

	value, err := client.Do(ctx, method, endpoint, body)
	if err != nil {
		return Result{}, err
	}

	return shape(res, action, opts, value)
}

// route maps an action onto its endpoint path, HTTP method, and body.
func route(res Resource, action Action, opts DispatchOptions) (string, string, map[string]any, error) {
	base := fmt.Sprintf("site/%d/%s", CoerceID(opts.SiteID), res.Type)
	item := base + "/" + opts.ObjectID
	meta := item + "/meta"
	metaKey := meta + "/" + opts.MetaKey

	switch action {
	case ActionList:
		return base, http.MethodGet, nil, nil
	case ActionGet:
		return item, http.MethodGet, nil, nil
	case ActionCreate:
		return base, http.MethodPost, opts.Body, nil
	case ActionUpdate:
		return item, http.MethodPost, opts.Body, nil
	case ActionDelete:
		return item, http.MethodDelete, nil, nil
	case ActionMetaList:
		return meta, http.MethodGet, nil, nil
	case ActionMetaGet:
		return metaKey, http.MethodGet, nil, nil
	case ActionMetaAdd:
		return meta, http.MethodPost, opts.Body, nil
	case ActionMetaUpdate:
		return metaKey, http.MethodPost, opts.Body, nil
	case ActionMetaDelete:
		return metaKey, http.MethodDelete, nil, nil
	default:
		return "", "", nil, api.NewError(api.CodeAPIError, fmt.Sprintf("unsupported action: %s", action))
	}
}

func shape(res Resource, action Action, opts DispatchOptions, value any) (Result, error) {
	fields := opts.Fields
	if len(fields) == 0 {
		fields = res.DefaultFields
	}

	switch action {
	case ActionList:
		items, ok := value.([]any)
		if !ok {
			return Result{}, api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
		}
		records := make([]Record, 0, len(items))
		for _, item := range items {
			obj, ok := item.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, ProjectFields(obj, res.Type, fields))
		}
		return Result{Kind: KindRecords, Records: records}, nil

	case ActionGet:
		obj, ok := value.(map[string]any)
		if !ok {
			return Result{}, api.NewError(api.CodeInvalidResponse, "the server didn't return a valid JSON response")
		}
		if opts.Field != "" {
			single, err := ResolveFieldStrict(obj, res.Type, opts.Field)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: KindValue, Value: single}, nil
		}
		return Result{Kind: KindRecord, Record: ProjectFields(obj, res.Type, fields)}, nil

	case ActionCreate:
		ack := Ack{Resource: res.Type}
		if obj, ok := value.(map[string]any); ok {
			if id, ok := ResolveField(obj, res.Type, res.IDField); ok {
				ack.ObjectID = FormatValue(id)
			}
		}
		if ack.ObjectID != "" {
			ack.Message = fmt.Sprintf("Created %s %s.", res.Type, ack.ObjectID)
		} else {
			ack.Message = fmt.Sprintf("Created %s.", res.Type)
		}
		return Result{Kind: KindAck, Ack: ack, Value: value}, nil

	case ActionUpdate:
		return ackResult(res, opts.ObjectID, "Updated %s."), nil
	case ActionDelete:
		return ackResult(res, opts.ObjectID, "Deleted %s."), nil

	case ActionMetaList, ActionMetaGet:
		return Result{Kind: KindValue, Value: value}, nil

	case ActionMetaAdd:
		return ackResult(res, opts.ObjectID, "Added %s meta value."), nil
	case ActionMetaUpdate:
		return ackResult(res, opts.ObjectID, "Updated %s meta value."), nil
	case ActionMetaDelete:
		return ackResult(res, opts.ObjectID, "Deleted %s meta value."), nil

	default:
		return Result{}, api.NewError(api.CodeAPIError, fmt.Sprintf("unsupported action: %s", action))
	}
}

func ackResult(res Resource, objectID, format string) Result {
	return Result{
		Kind: KindAck,
		Ack: Ack{
			Resource: res.Type,
			ObjectID: objectID,
			Message:  fmt.Sprintf(format, res.Type),
		},
	}
}

// FormatValue renders a decoded JSON scalar the way it reads on the
// wire. JSON numbers decode as float64, so integral ids need the
// trailing ".0" dropped.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
