package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-validation/framework/validation"
)

const maxMemory = 32 << 20 // 32 MB

// StrategyParam is the query parameter that selects the validation
// strategy. It is never part of the request data.
const StrategyParam = "strategy"

// ErrEmptyBody is returned when a JSON request carries no body.
var ErrEmptyBody = errors.New("http: empty request body")

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw  *http.Request
	body []byte
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes a JSON body into v.
func (req *Request) Bind(v any) error {
	body, err := req.readBody()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(body, v)
}

// Data returns the request input as a map, ready for validation.
//
// JSON bodies keep their structure; numbers decode as json.Number so the
// integer rule can tell 25 from 25.5. The query string is not merged into
// JSON data. Form and multipart bodies become strings, or []string for
// repeated keys, and query parameters fill keys the body does not set.
// StrategyParam is never included.
func (req *Request) Data() (map[string]any, error) {
	data := make(map[string]any)

	if req.isJSONBody() {
		body, err := req.readBody()
		if err != nil {
			return nil, err
		}
		if len(bytes.TrimSpace(body)) > 0 {
			dec := json.NewDecoder(bytes.NewReader(body))
			dec.UseNumber()
			if err := dec.Decode(&data); err != nil {
				return nil, fmt.Errorf("http: decode json body: %w", err)
			}
		}
		return data, nil
	}

	if err := req.parseForm(); err != nil {
		return nil, err
	}
	mergeValues(data, req.raw.PostForm)
	if req.raw.MultipartForm != nil {
		mergeValues(data, req.raw.MultipartForm.Value)
	}
	mergeValues(data, req.raw.URL.Query())
	return data, nil
}

// Validate runs v against the request data, like Laravel's $request->validate().
//
//	res, err := req.Validate(v, validation.Rules{"email": "required|email"}, nil)
func (req *Request) Validate(v *validation.Validator, rules validation.Rules, messages validation.Messages) (*validation.Result, error) {
	data, err := req.Data()
	if err != nil {
		return nil, err
	}
	return v.Validate(data, rules, messages)
}

func (req *Request) readBody() ([]byte, error) {
	if req.body != nil || req.raw.Body == nil {
		return req.body, nil
	}
	defer req.raw.Body.Close()

	body, err := io.ReadAll(req.raw.Body)
	if err != nil {
		return nil, fmt.Errorf("http: read body: %w", err)
	}
	req.body = body
	return body, nil
}

func (req *Request) parseForm() error {
	if strings.Contains(req.ContentType(), "multipart/form-data") {
		return req.raw.ParseMultipartForm(maxMemory)
	}
	return req.raw.ParseForm()
}

// mergeValues copies url-style values into data without overwriting.
func mergeValues(data map[string]any, values map[string][]string) {
	for k, vals := range values {
		if _, ok := data[k]; ok || len(vals) == 0 || k == StrategyParam {
			continue
		}
		if len(vals) == 1 {
			data[k] = vals[0]
		} else {
			data[k] = append([]string(nil), vals...)
		}
	}
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") || req.isJSONBody()
}

func (req *Request) isJSONBody() bool {
	return strings.Contains(req.ContentType(), "application/json")
}
