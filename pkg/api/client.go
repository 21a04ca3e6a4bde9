package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client sends authenticated requests to the WP Remote JSON API and
// normalizes every response into a decoded value or a typed *Error.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient builds a Client from the given options.
func NewClient(opts ClientOptions) *Client {
	opts = resolveOptions(opts)
	return &Client{
		http:    NewHTTPClient(opts),
		baseURL: opts.BaseURL,
	}
}

// JoinURL concatenates the API base URL and an endpoint path with
// exactly one slash between them, whatever slashes either side carries.
func JoinURL(base, endpoint string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(endpoint, "/")
}

// Do issues one request and classifies the outcome. The body map is
// serialized as JSON when non-empty. The returned value is the decoded
// JSON response, or nil for an empty 2xx body. Classification is total:
// every status code resolves to a value or to one *Error.
func (c *Client) Do(ctx context.Context, method, endpoint string, body map[string]any) (any, error) {
	var reader io.Reader
	if len(body) > 0 {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, NewError(CodeInvalidResponse, err.Error())
		}
		reader = bytes.NewReader(raw)
	}

	url := JoinURL(c.baseURL, endpoint)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, NewError(CodeTransportFailure, err.Error())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewError(CodeTransportFailure, err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Code: CodeTransportFailure, Message: err.Error(), StatusCode: resp.StatusCode}
	}

	return classify(resp.StatusCode, raw)
}

// Get issues a GET request to the endpoint.
func (c *Client) Get(ctx context.Context, endpoint string) (any, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

// Post issues a POST request to the endpoint with the given body.
func (c *Client) Post(ctx context.Context, endpoint string, body map[string]any) (any, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

// Delete issues a DELETE request to the endpoint.
func (c *Client) Delete(ctx context.Context, endpoint string) (any, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}

func classify(status int, raw []byte) (any, error) {
	switch {
	case status >= 200 && status < 300:
		return classifySuccess(status, raw)
	case status == http.StatusUnauthorized:
		return nil, &Error{Code: CodeUnauthorized, Message: "Invalid account details.", StatusCode: status}
	case status == http.StatusNotFound:
		return nil, &Error{Code: CodeNotFound, Message: "Not found.", StatusCode: status}
	default:
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return nil, &Error{
			Code:       CodeAPIError,
			Message:    fmt.Sprintf("HTTP %d: %s", status, msg),
			StatusCode: status,
		}
	}
}

func classifySuccess(status int, raw []byte) (any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, &Error{
			Code:       CodeInvalidResponse,
			Message:    "the server didn't return a valid JSON response",
			StatusCode: status,
		}
	}

	// A 2xx body can still carry an error envelope.
	if obj, ok := value.(map[string]any); ok {
		if s, _ := obj["status"].(string); s == "error" {
			code, _ := obj["error_code"].(string)
			message, _ := obj["error_message"].(string)
			return nil, &Error{Code: code, Message: message, StatusCode: status}
		}
	}

	return value, nil
}
