package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Request describes an outgoing API call independently of *http.Request,
// so it can be rebuilt for a replay after the credential was refreshed.
type Request struct {
	Header http.Header
	Query  url.Values
	Method string
	// Path относительно base URL, например "/my-business/update/"
	Path string
	Body []byte
	// Attempt 0 для первой отправки, 1 для повтора после refresh
	Attempt int
}

// NewRequest создает описание запроса
func NewRequest(method, path string, body []byte) *Request {
	return &Request{
		Method: method,
		Path:   path,
		Body:   body,
		Header: make(http.Header),
	}
}

// retry returns a copy with the attempt counter incremented
func (r *Request) retry() *Request {
	next := *r
	next.Header = r.Header.Clone()
	next.Query = cloneValues(r.Query)
	next.Attempt = r.Attempt + 1
	return &next
}

// build собирает *http.Request. Тело пересоздаётся при каждом вызове.
func (r *Request) build(ctx context.Context, baseURL string) (*http.Request, error) {
	target := baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if r.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
