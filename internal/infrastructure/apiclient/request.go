package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// HeaderRequestID carries the correlation id of the page request that caused the call.
const HeaderRequestID = "X-Request-ID"

// Request describes one API call. It is never mutated once issued; every
// attempt builds a fresh *http.Request from it.
type Request struct {
	// Op names the catalog operation in logs and metrics.
	Op     string
	Method string
	// Path is relative to the API origin with segments already escaped.
	Path  string
	Query url.Values
	// Body is sent as JSON when non-nil.
	Body any
	// File turns the request into a multipart upload. Body is ignored.
	File *MultipartFile

	// skipRefresh exempts the call from the refresh-and-retry cycle.
	skipRefresh bool
}

// MultipartFile is a single file part of a multipart/form-data upload.
type MultipartFile struct {
	Field       string
	Filename    string
	ContentType string
	Content     []byte
}

type requestIDKey struct{}

// WithRequestID stores id for the X-Request-ID header of calls made with ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target, err := url.Parse(c.baseURL.String() + req.Path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", req.Path, err)
	}
	if len(req.Query) > 0 {
		target.RawQuery = req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.File != nil:
		buf, ct, err := encodeMultipart(req.File)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set(HeaderRequestID, requestID(ctx))
	return httpReq, nil
}

func encodeMultipart(f *MultipartFile) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.Filename))
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("multipart part: %w", err)
	}
	if _, err := part.Write(f.Content); err != nil {
		return nil, "", fmt.Errorf("multipart write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("multipart close: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// segment escapes a single path segment.
func segment(s string) string {
	return url.PathEscape(s)
}

// params builds query strings, dropping unset values.
type params url.Values

func (p params) str(key, v string) params {
	if v != "" {
		url.Values(p).Set(key, v)
	}
	return p
}

func (p params) num(key string, v int) params {
	if v > 0 {
		url.Values(p).Set(key, strconv.Itoa(v))
	}
	return p
}

func (p params) flag(key string, v bool) params {
	if v {
		url.Values(p).Set(key, "true")
	}
	return p
}

func (p params) values() url.Values {
	if len(p) == 0 {
		return nil
	}
	return url.Values(p)
}
