// Package netx sends JSON requests over net/http and hands back the raw
// response for the caller to interpret.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Request describes a single JSON call. A nil Body sends no payload.
type Request struct {
	Method string
	URL    string
	Body   any
	Header http.Header
}

// Response is the status and fully read body of a completed call.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the body into v. An empty body leaves v untouched.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.Body)) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Message returns the "message" field of a JSON body, or "".
func (r *Response) Message() string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return ""
	}
	return m.Message
}

// DoJSON marshals req.Body, sends the request with JSON headers and reads
// the whole response. Only transport-level failures are returned as errors;
// non-2xx statuses come back in Response.
func DoJSON(ctx context.Context, c *http.Client, req Request) (*Response, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: b}, nil
}
