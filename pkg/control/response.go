package control

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the decoded result of one control API call. Its payload shape is
// operation specific; the dispatcher never validates it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v any) error {
	if r == nil || len(r.Body) == 0 {
		return fmt.Errorf("decode response: empty body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Text returns the body as a string.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Body)
}

// Data returns the parsed JSON value when the body is JSON, the raw text otherwise,
// and nil for an empty body.
func (r *Response) Data() any {
	if r == nil || len(r.Body) == 0 {
		return nil
	}
	var v any
	if json.Valid(r.Body) {
		if err := json.Unmarshal(r.Body, &v); err == nil {
			return v
		}
	}
	return string(r.Body)
}
